package interfaces

import (
	"context"
	"net/http"
)

// Server is the HTTP surface the app wires routes into.
type Server interface {
	AddRoute(route string, handler func(w http.ResponseWriter, r *http.Request)) error
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
