package widget

import (
	"net/url"
	"strconv"
)

// BuildQuery merges the current filter values, the requested page and
// caller-supplied extra parameters into a canonical query string. Extra
// parameters win on key collision; empty values are dropped. Encoding is
// sorted by key, so identical inputs always produce identical output.
func BuildQuery(filters map[string]string, page int, extra func() map[string]string) string {
	values := url.Values{}
	for key, value := range filters {
		if key == "" || value == "" {
			continue
		}
		values.Set(key, value)
	}
	if extra != nil {
		for key, value := range extra() {
			if key == "" || value == "" {
				continue
			}
			values.Set(key, value)
		}
	}
	values.Set("page", strconv.Itoa(page))
	return values.Encode()
}
