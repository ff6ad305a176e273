package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
)

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseSort reads ?sort=key&dir=asc|desc. A missing key means no sort;
// any dir other than desc is ascending.
func parseSort(r *http.Request) datatable.SortState {
	key := strings.TrimSpace(r.URL.Query().Get("sort"))
	if key == "" {
		return datatable.SortState{}
	}
	return datatable.SortState{
		Key:       key,
		Direction: datatable.ParseDirection(r.URL.Query().Get("dir")),
	}
}

// parseTableQuery reads ?page=&per_page=&sort=&dir=&search=. A zero
// PageSize lets the service apply its default.
func parseTableQuery(r *http.Request) core.TableQuery {
	return core.TableQuery{
		Page:     parseIntParam(r, "page", 1),
		PageSize: parseIntParam(r, "per_page", 0),
		Sort:     parseSort(r),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}
}
