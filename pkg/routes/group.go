package routes

import "net/http"

// Group nests routes and child groups under a shared path prefix.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// Route binds one method and pattern, relative to its group, to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Entry is a route resolved to its full pattern.
type Entry struct {
	Method      string           `json:"method"`
	Pattern     string           `json:"pattern"`
	Description string           `json:"description,omitempty"`
	Handler     http.HandlerFunc `json:"-"`
}

// Flatten resolves g and its children to entries below parent. Each entry
// carries the description of the innermost group that has one.
func (g Group) Flatten(parent string) []Entry {
	return g.flatten(parent, "")
}

func (g Group) flatten(parent, inherited string) []Entry {
	prefix := parent + g.Prefix
	desc := inherited
	if g.Description != "" {
		desc = g.Description
	}

	entries := make([]Entry, 0, len(g.Routes))
	for _, r := range g.Routes {
		entries = append(entries, Entry{
			Method:      r.Method,
			Pattern:     prefix + r.Pattern,
			Description: desc,
			Handler:     r.Handler,
		})
	}
	for _, child := range g.Children {
		entries = append(entries, child.flatten(prefix, desc)...)
	}
	return entries
}
