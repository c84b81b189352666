package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery_Padroes(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.True(t, f.WithPagination)
	assert.Empty(t, f.Filter)
	assert.Empty(t, f.Sort)
}

func TestParseFilterFromQuery_LimiteETetoDePagina(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "9999")
	values.Set("page", "3")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, (3-1)*MaxLimit, f.Offset)
}

func TestParseFilterFromQuery_FiltroOrdenacaoEBusca(t *testing.T) {
	values := url.Values{}
	values.Set("filter[status]", "VENCIDO")
	values.Set("filter[sector_id]", "4")
	values.Set("sort[due_date]", "ASC")
	values.Set("sort[code]", "sideways") // direção inválida cai fora
	values.Set("search", "paquímetro")
	values.Set("withPagination", "false")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "VENCIDO", f.Filter["status"])
	assert.Equal(t, "4", f.Filter["sector_id"])
	assert.Equal(t, "asc", f.Sort["due_date"])
	assert.NotContains(t, f.Sort, "code")
	assert.Equal(t, "paquímetro", f.Search)
	assert.False(t, f.WithPagination)
}

func TestParseFilterFromQuery_ValoresInvalidosIgnorados(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "abc")
	values.Set("page", "-2")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
}
