// Package httpapi is the public JSON API of LoveLetters, mounted under /api.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/loveletters/internal/logging"
	"github.com/gorilla/mux"
)

// NewRouter wires every /api route. metricsHandler, when not nil, is served
// on /metrics outside the CORS and access-log layers.
func NewRouter(us UserService, ms MessageService, logger logging.Logger, corsOrigins []string, metricsHandler http.Handler) http.Handler {
	h := &handler{users: us, messages: ms, logger: logger.With("module", "http")}

	root := mux.NewRouter()
	if metricsHandler != nil {
		root.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	// /api routes stay on root: a subrouter with middleware reports a wrong
	// method as 404.
	api := func(path string, next http.HandlerFunc) *mux.Route {
		return root.Handle("/api"+path, h.accessLog(next))
	}

	api("/", h.health).Methods(http.MethodGet)

	api("/auth/register", h.register).Methods(http.MethodPost)
	api("/auth/login", h.login).Methods(http.MethodPost)
	api("/auth/me", h.authenticated(h.me)).Methods(http.MethodGet)

	api("/users", h.authenticated(h.listUsers)).Methods(http.MethodGet)

	api("/messages", h.authenticated(h.sendMessage)).Methods(http.MethodPost)
	// folder routes before /messages/{id}
	api("/messages/inbox", h.authenticated(h.listMessages(ms.Inbox))).Methods(http.MethodGet)
	api("/messages/sent", h.authenticated(h.listMessages(ms.Sent))).Methods(http.MethodGet)
	api("/messages/drafts", h.authenticated(h.listMessages(ms.Drafts))).Methods(http.MethodGet)
	api("/messages/{id}", h.authenticated(h.getMessage)).Methods(http.MethodGet)
	api("/messages/{id}", h.authenticated(h.deleteMessage)).Methods(http.MethodDelete)
	api("/messages/{id}/unlock", h.authenticated(h.unlockMessage)).Methods(http.MethodPost)
	api("/messages/{id}/read", h.authenticated(h.markRead)).Methods(http.MethodPost)

	root.NotFoundHandler = detailHandler(http.StatusNotFound)
	root.MethodNotAllowedHandler = detailHandler(http.StatusMethodNotAllowed)

	return cors(corsOrigins, root)
}

// detailHandler answers unrouted requests with the same {"detail": ...} body
// as every other API error.
func detailHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, errorResponse{Detail: http.StatusText(status)})
	})
}
