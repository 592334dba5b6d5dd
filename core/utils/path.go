package utils

import "net/url"

// UnescapePath decodes a percent-encoded path segment such as a sheet name in
// a route parameter. Invalid encodings are returned unchanged.
func UnescapePath(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
