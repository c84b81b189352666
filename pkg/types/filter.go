package types

// Filter representa os parâmetros de listagem vindos da query string.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// Exemplo: /api/equipamentos?search=paquimetro&sort[code]=asc&filter[status]=VENCIDO&limit=20&page=1
