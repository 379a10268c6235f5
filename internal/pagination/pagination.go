// Package pagination translates page/size query parameters into a skip/limit
// window. Missing or malformed values fall back to safe defaults, values that
// are present but out of range are rejected.
package pagination

import (
	"errors"
	"net/url"
	"strconv"
)

var ErrOutOfRange = errors.New("page or size out of range")

type Window struct {
	Page int // 1-indexed
	Size int
}

// ParseWindow reads "page" and "size" from query values. Absent or
// non-numeric parameters default to page 1 and defaultSize; a parameter that
// parses to a value below 1, or a size above maxSize, yields ErrOutOfRange.
func ParseWindow(values url.Values, defaultSize, maxSize int) (Window, error) {
	page, err := parseParam(values.Get("page"), 1)
	if err != nil {
		return Window{}, err
	}
	size, err := parseParam(values.Get("size"), defaultSize)
	if err != nil {
		return Window{}, err
	}
	if size > maxSize {
		return Window{}, ErrOutOfRange
	}
	return Window{Page: page, Size: size}, nil
}

func parseParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, nil
	}
	if n < 1 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (w Window) Skip() int {
	return (w.Page - 1) * w.Size
}

func (w Window) Limit() int {
	return w.Size
}
