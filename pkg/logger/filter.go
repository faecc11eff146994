package logger

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Filtered replaces the value of every redacted key.
const Filtered = "[FILTERED]"

// AlwaysFilteredHeaders are redacted from header dumps regardless of the
// configured patterns.
var AlwaysFilteredHeaders = []string{"authorization", "cookie", "set-cookie", "x-api-key", "x-auth-token"}

const (
	maxStringLen = 1000
	maxListLen   = 10
	maxMapKeys   = 20
)

// Filter redacts values whose keys match a configured pattern. A key matches
// when, ignoring case, it equals a pattern, contains it, or matches a pattern
// with '*' wildcards. Filter is immutable and safe for concurrent use.
type Filter struct {
	patterns  []string
	wildcards []*regexp.Regexp
	headers   *Filter
}

// NewFilter builds a Filter from the given patterns.
func NewFilter(patterns []string) *Filter {
	f := newFilter(patterns)
	f.headers = newFilter(append(append([]string(nil), patterns...), AlwaysFilteredHeaders...))
	return f
}

func newFilter(patterns []string) *Filter {
	f := &Filter{}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		f.patterns = append(f.patterns, p)
		if strings.Contains(p, "*") {
			expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(p), `\*`, ".*") + "$"
			f.wildcards = append(f.wildcards, regexp.MustCompile(expr))
		}
	}
	return f
}

// Match reports whether key must be redacted.
func (f *Filter) Match(key string) bool {
	k := strings.ToLower(key)
	for _, p := range f.patterns {
		if k == p || strings.Contains(k, p) {
			return true
		}
	}
	for _, re := range f.wildcards {
		if re.MatchString(k) {
			return true
		}
	}
	return false
}

// Data walks maps and slices and returns a copy with matching keys redacted.
// Scalars are returned unchanged.
func (f *Filter) Data(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if f.Match(k) {
				out[k] = Filtered
				continue
			}
			out[k] = f.Data(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = f.Data(val)
		}
		return out
	default:
		return v
	}
}

// Headers flattens h and redacts sensitive entries, including the headers in
// AlwaysFilteredHeaders.
func (f *Filter) Headers(h http.Header) map[string]any {
	out := make(map[string]any, len(h))
	for k, vals := range h {
		if f.headers.Match(k) {
			out[k] = Filtered
			continue
		}
		out[k] = strings.Join(vals, ", ")
	}
	return out
}

// Query flattens q and redacts sensitive parameters.
func (f *Filter) Query(q url.Values) map[string]any {
	out := make(map[string]any, len(q))
	for k, vals := range q {
		if f.Match(k) {
			out[k] = Filtered
			continue
		}
		if len(vals) == 1 {
			out[k] = vals[0]
		} else {
			out[k] = vals
		}
	}
	return out
}

// SanitizeURL redacts sensitive query parameter values in raw while keeping
// the parameter order.
func (f *Filter) SanitizeURL(raw string) string {
	base, query, ok := strings.Cut(raw, "?")
	if !ok || query == "" {
		return base
	}
	parts := strings.Split(query, "&")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, _, hasValue := strings.Cut(part, "=")
		if f.Match(key) {
			part = key + "=" + Filtered
		} else if !hasValue {
			part = key
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return base
	}
	return base + "?" + strings.Join(kept, "&")
}

// Truncate bounds long strings, lists and maps so a single request cannot
// flood the log. Strings are cut on a rune boundary and nested values are
// bounded too. Maps keep their first keys in sorted order.
func Truncate(v any) any {
	switch t := v.(type) {
	case string:
		return truncateString(t)
	case []any:
		n := min(len(t), maxListLen)
		out := make([]any, 0, n+1)
		for _, item := range t[:n] {
			out = append(out, Truncate(item))
		}
		if len(t) > maxListLen {
			out = append(out, fmt.Sprintf("... [TRUNCATED - %d total items]", len(t)))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, min(len(keys), maxMapKeys)+1)
		for _, k := range keys[:min(len(keys), maxMapKeys)] {
			out[k] = Truncate(t[k])
		}
		if len(t) > maxMapKeys {
			out["..."] = fmt.Sprintf("[TRUNCATED - %d total keys]", len(t))
		}
		return out
	}
	return v
}

func truncateString(s string) string {
	total := utf8.RuneCountInString(s)
	if total <= maxStringLen {
		return s
	}
	cut, n := 0, 0
	for i := range s {
		if n == maxStringLen {
			cut = i
			break
		}
		n++
	}
	return s[:cut] + fmt.Sprintf("... [TRUNCATED - %d total chars]", total)
}
