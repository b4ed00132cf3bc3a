package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// dispatches each message to the handler registered for its path.
type Router struct {
	routes map[string]peerfund.Handler
}

var _ peerfund.Registry = (*Router)(nil)
var _ peerfund.Handler = (*Router)(nil)

// NewRouter returns a new empty router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]peerfund.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered or the path is invalid.
func (r *Router) Handle(path string, h peerfund.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. Never returns nil.
func (r *Router) handler(m peerfund.Msg) peerfund.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return r.handler(msg).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return r.handler(msg).Deliver(ctx, db, tx)
}

// noSuchPathHandler is returned for any unknown path.
type noSuchPathHandler struct {
	path string
}

func (h noSuchPathHandler) Check(peerfund.Context, peerfund.KVStore, peerfund.Tx) (*peerfund.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(peerfund.Context, peerfund.KVStore, peerfund.Tx) (*peerfund.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
