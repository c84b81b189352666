package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
)

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

// ParseFilterFromQuery interpreta a convenção de query string usada em toda a
// API: search=..., sort[campo]=asc|desc, filter[campo]=v1,v2, limit, page,
// offset e withPagination.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	if values.Get("withPagination") == "false" {
		filterReq.WithPagination = false
	} else {
		filterReq.WithPagination = true
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			if existing, ok := filterReq.Filter[field]; ok {
				filterReq.Filter[field] = fmt.Sprintf("%v,%s", existing, vals[0])
			} else {
				filterReq.Filter[field] = vals[0]
			}
		}
	}

	return filterReq
}
