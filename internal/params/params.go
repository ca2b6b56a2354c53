// Package params extracts campaign-tracking query parameters (gclid and any
// utm_* key) from inbound requests and re-serializes them onto outbound
// redirect URLs and template contexts. All functions are pure.
package params

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Param is one preserved key/value pair.
type Param struct {
	Key   string
	Value string
}

// FromRequest returns the preserved parameters of the request query string.
func FromRequest(r *http.Request) []Param {
	return Preserved(r.URL.RawQuery)
}

// Preserved parses a raw query string and returns the pairs whose key equals
// "gclid" or starts with "utm_", in order of first appearance. When a key
// repeats, the first value wins. Pairs that fail to unescape are skipped.
func Preserved(rawQuery string) []Param {
	var out []Param
	seen := make(map[string]bool)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		if k != "gclid" && !strings.HasPrefix(k, "utm_") {
			continue
		}
		if seen[k] {
			continue
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		seen[k] = true
		out = append(out, Param{Key: k, Value: v})
	}

	return out
}

// Map returns the preserved parameters as a plain map for template contexts.
func Map(ps []Param) map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Key] = p.Value
	}

	return m
}

// Encode serializes the pairs as a URL-encoded query string, keeping their
// relative order.
func Encode(ps []Param) string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}

	return b.String()
}

// BuildURL returns base when no parameters apply, otherwise base?query with
// the preserved pairs URL-encoded. Extra pairs take precedence over
// same-named preserved ones; extras with new keys are appended in sorted
// order so output is deterministic.
func BuildURL(base string, ps []Param, extra map[string]string) string {
	merged := make([]Param, 0, len(ps)+len(extra))
	used := make(map[string]bool, len(extra))
	for _, p := range ps {
		if v, ok := extra[p.Key]; ok {
			p.Value = v
			used[p.Key] = true
		}
		merged = append(merged, p)
	}
	rest := make([]string, 0, len(extra))
	for k := range extra {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		merged = append(merged, Param{Key: k, Value: extra[k]})
	}

	if len(merged) == 0 {
		return base
	}

	return base + "?" + Encode(merged)
}
