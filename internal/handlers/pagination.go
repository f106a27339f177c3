package handlers

import (
	"errors"
	"strconv"
)

var errInvalidPagination = errors.New("page and limit must be positive integers")

func parsePaginationParams(pageStr, limitStr string) (int, int, error) {
	page := 1
	limit := 20

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}

	return page, limit, nil
}

// paginate slices an already loaded snapshot.
func paginate[T any](items []T, page, limit int) []T {
	if page-1 > len(items)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
