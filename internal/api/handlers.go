// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/geodatabr/geodatabr/internal/dataset"
	"github.com/geodatabr/geodatabr/internal/export"
	xlog "github.com/geodatabr/geodatabr/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// queryID parses an optional numeric query parameter. The second result is
// false when the parameter is absent.
func queryID(r *http.Request, name string) (int64, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %q", name, v)
	}
	return id, true, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"year":           s.ds.Year,
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.Counts())
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.States)
}

func (s *Server) handleStateByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	st, ok := s.states[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleMesoregions(w http.ResponseWriter, r *http.Request) {
	uf, hasUF, err := queryID(r, "uf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	out := make([]dataset.Mesoregion, 0, len(s.ds.Mesoregions))
	for _, m := range s.ds.Mesoregions {
		if hasUF && m.StateID != uf {
			continue
		}
		out = append(out, m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMicroregions(w http.ResponseWriter, r *http.Request) {
	meso, hasMeso, err := queryID(r, "mesorregiao")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	uf, hasUF, err := queryID(r, "uf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	out := make([]dataset.Microregion, 0, len(s.ds.Microregions))
	for _, m := range s.ds.Microregions {
		if hasMeso && m.MesoregionID != meso {
			continue
		}
		if hasUF && m.StateID != uf {
			continue
		}
		out = append(out, m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMunicipalities(w http.ResponseWriter, r *http.Request) {
	micro, hasMicro, err := queryID(r, "microrregiao")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	uf, hasUF, err := queryID(r, "uf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	out := make([]dataset.Municipality, 0, 64)
	for _, m := range s.ds.Municipalities {
		if hasMicro && m.MicroregionID != micro {
			continue
		}
		if hasUF && m.StateID != uf {
			continue
		}
		out = append(out, m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMunicipalityByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	m, ok := s.municipalities[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	mun, hasMun, err := queryID(r, "municipio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	uf, hasUF, err := queryID(r, "uf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	out := make([]dataset.District, 0, 64)
	for _, d := range s.ds.Districts {
		if hasMun && d.MunicipalityID != mun {
			continue
		}
		if hasUF && d.StateID != uf {
			continue
		}
		out = append(out, d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSubdistricts(w http.ResponseWriter, r *http.Request) {
	dist, hasDist, err := queryID(r, "distrito")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	mun, hasMun, err := queryID(r, "municipio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter")
		return
	}
	out := make([]dataset.Subdistrict, 0, 64)
	for _, sd := range s.ds.Subdistricts {
		if hasDist && sd.DistrictID != dist {
			continue
		}
		if hasMun && sd.MunicipalityID != mun {
			continue
		}
		out = append(out, sd)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleExport encodes the dataset on demand. Multi-file formats are
// bundled into a single zip response.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	exporter, err := export.Lookup(format)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_format")
		return
	}

	files, err := exporter.Export(s.ds, export.Options{Minify: s.minify})
	if err != nil {
		xlog.FromContext(r.Context()).Error().
			Err(err).
			Str("event", "export.error").
			Str("format", format).
			Msg("on-demand export failed")
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	contentType := exporter.ContentType()
	var payload export.File
	switch len(files) {
	case 0:
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	case 1:
		payload = files[0]
	default:
		bundle, err := export.ZipBundle(s.ds.Name()+"_"+format, files)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export_failed")
			return
		}
		payload = bundle
		contentType = "application/zip"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+payload.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(payload.Data)))
	_, _ = w.Write(payload.Data)
}
