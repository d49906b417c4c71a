package cache

import (
	"net/url"
	"strings"
)

// keyPrefix namespaces all cache entries written by this application.
const keyPrefix = "taskdeck"

// Key builds a cache key from an endpoint name and every input that
// affects its result, including the calling user's identity. Parts are
// escaped before joining so a part containing the separator cannot
// collide with a different tuple: two requests share a cache slot only
// if every part matches exactly.
func Key(endpoint string, parts ...string) string {
	b := strings.Builder{}
	b.WriteString(keyPrefix)
	b.WriteByte(':')
	b.WriteString(endpoint)
	for _, part := range parts {
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(part))
	}
	return b.String()
}
