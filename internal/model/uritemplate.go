package model

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}:]+)(?::[^{}]*)?\}`)

// URITemplate is a request path with {placeholder} segments, e.g. "/users/{id}".
// The zero value is the missing template.
type URITemplate struct {
	raw string
}

// NewURITemplate normalizes path into a template: a single leading slash,
// no duplicate or trailing slashes. An empty path is the root "/".
func NewURITemplate(path string) URITemplate {
	path = strings.TrimSpace(path)
	parts := strings.Split(path, "/")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return URITemplate{raw: "/" + strings.Join(kept, "/")}
}

// JoinURITemplate joins a controller base path and a method path.
func JoinURITemplate(base, path string) URITemplate {
	return NewURITemplate(base + "/" + path)
}

// IsZero reports whether t is the missing template.
func (t URITemplate) IsZero() bool { return t.raw == "" }

func (t URITemplate) String() string { return t.raw }

// Placeholders returns the placeholder names in order of appearance.
// A regex constraint such as {id:\d+} is reported as "id".
func (t URITemplate) Placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(t.raw, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// HasPlaceholder reports whether name is a placeholder of t.
func (t URITemplate) HasPlaceholder(name string) bool {
	for _, p := range t.Placeholders() {
		if p == name {
			return true
		}
	}
	return false
}
