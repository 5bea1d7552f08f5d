package utils

import (
	"net/url"
	"strings"
)

// JoinURL appends an app-relative path such as "/api/items/?q=lamp" to base,
// keeping any path prefix base is mounted under.
func JoinURL(base *url.URL, path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if ref.IsAbs() {
		return ref, nil
	}

	target := *base
	target.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	target.RawPath = ""
	target.RawQuery = ref.RawQuery
	target.Fragment = ref.Fragment
	return &target, nil
}
