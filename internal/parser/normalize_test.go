// SPDX-License-Identifier: MIT

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"UF", "uf"},
		{"Nome_UF", "nome uf"},
		{"Mesorregião Geográfica", "mesorregiao geografica"},
		{"Código  de Distrito   Completo", "codigo de distrito completo"},
		{"  Nome_Município ", "nome municipio"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeHeader(tc.in), "input %q", tc.in)
	}
}
