// SPDX-License-Identifier: MIT

package api_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodatabr/geodatabr/internal/api"
	"github.com/geodatabr/geodatabr/internal/dataset"
	"github.com/geodatabr/geodatabr/internal/testutil"
)

func newTestServer(t *testing.T, opts ...api.Option) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api.NewServer(testutil.FixtureDataset(), opts...).Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	res, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	return res, body
}

func decodeList[T any](t *testing.T, body []byte) []T {
	t.Helper()
	var out []T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestHealthz(t *testing.T) {
	res, body := get(t, newTestServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var health map[string]any
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(2016), health["year"])
}

func TestListStates(t *testing.T) {
	res, body := get(t, newTestServer(t), "/api/v1/estados")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	states := decodeList[dataset.State](t, body)
	require.Len(t, states, 2)
	assert.Equal(t, dataset.State{ID: 11, Name: "Rondônia"}, states[0])
}

func TestStateByID(t *testing.T) {
	srv := newTestServer(t)

	res, body := get(t, srv, "/api/v1/estados/35")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var st dataset.State
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, "São Paulo", st.Name)

	res, body = get(t, srv, "/api/v1/estados/99")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"not_found"}`, string(body))

	res, _ = get(t, srv, "/api/v1/estados/abc")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestParentFilters(t *testing.T) {
	srv := newTestServer(t)

	res, body := get(t, srv, "/api/v1/mesorregioes?uf=35")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	mesos := decodeList[dataset.Mesoregion](t, body)
	require.Len(t, mesos, 1)
	assert.Equal(t, int64(3515), mesos[0].ID)

	res, body = get(t, srv, "/api/v1/municipios?microrregiao=35061")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	muns := decodeList[dataset.Municipality](t, body)
	require.Len(t, muns, 2)
	for _, m := range muns {
		assert.Equal(t, int64(35061), m.MicroregionID)
	}

	res, body = get(t, srv, "/api/v1/distritos?municipio=3550308")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	dists := decodeList[dataset.District](t, body)
	require.Len(t, dists, 1)

	res, body = get(t, srv, "/api/v1/subdistritos?distrito=355030801")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	subs := decodeList[dataset.Subdistrict](t, body)
	require.Len(t, subs, 2)

	// Filter with no matches returns an empty list, not null.
	res, body = get(t, srv, "/api/v1/mesorregioes?uf=99")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "[]", string(bytes.TrimSpace(body)))

	res, _ = get(t, srv, "/api/v1/mesorregioes?uf=abc")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestStats(t *testing.T) {
	res, body := get(t, newTestServer(t), "/api/v1/stats")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var counts dataset.Counts
	require.NoError(t, json.Unmarshal(body, &counts))
	assert.Equal(t, testutil.FixtureCounts(), counts)
}

func TestExportJSON(t *testing.T) {
	res, body := get(t, newTestServer(t), "/api/v1/export/json")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), `filename="dtb_2016.json"`)

	var doc dataset.Document
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Len(t, doc.Municipalities, 3)
}

func TestExportCSVBundlesZip(t *testing.T) {
	res, body := get(t, newTestServer(t), "/api/v1/export/csv")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/zip", res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), `filename="dtb_2016_csv.zip"`)

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Len(t, zr.File, 6)
}

func TestExportUnknownFormat(t *testing.T) {
	res, body := get(t, newTestServer(t), "/api/v1/export/tar")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"unknown_format"}`, string(body))
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, api.WithRateLimit(3))

	for i := 0; i < 3; i++ {
		res, _ := get(t, srv, "/healthz")
		require.Equal(t, http.StatusOK, res.StatusCode)
	}
	res, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.JSONEq(t, `{"error":"rate_limit_exceeded"}`, string(body))
}

func TestRequestIDHeader(t *testing.T) {
	res, _ := get(t, newTestServer(t), "/healthz")
	assert.NotEmpty(t, res.Header.Get("X-Request-Id"))
}
