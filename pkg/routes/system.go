// Package routes defines the route table types shared by HTTP surfaces.
package routes

import "net/http"

// System collects routes and builds the multiplexer serving them.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	// Entries lists every registered route in registration order.
	Entries() []Entry
	Build() http.Handler
}
