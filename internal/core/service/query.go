package service

import (
	"net/url"
	"strconv"
)

// withQuery appends params to endpoint. url.Values.Encode sorts by key, so
// the same params always produce the same endpoint.
func withQuery(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

func setIfNotEmpty(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func setIfPositive(params url.Values, key string, value int) {
	if value > 0 {
		params.Set(key, strconv.Itoa(value))
	}
}

// pathID escapes a single path segment.
func pathID(id string) string {
	return url.PathEscape(id)
}
