package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/store"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

// maxBodyBytes caps POST bodies; a user record is tiny.
const maxBodyBytes = 1 << 20

// Gateway exposes a UserStore over REST.
type Gateway struct {
	router *mux.Router
	store  store.UserStore
	server *http.Server
}

// NewGateway builds the router for s.  allowedOrigins feeds the CORS
// policy; nil allows all origins.
func NewGateway(addr string, s store.UserStore, allowedOrigins []string) *Gateway {
	g := &Gateway{
		router: mux.NewRouter(),
		store:  s,
	}
	g.setupRoutes()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	g.server = &http.Server{
		Addr:              addr,
		Handler:           c.Handler(g.router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return g
}

// Handler returns the full handler chain including CORS.
func (g *Gateway) Handler() http.Handler {
	return g.server.Handler
}

// ListenAndServe blocks until the server stops.  A graceful Shutdown is
// not reported as an error.
func (g *Gateway) ListenAndServe() error {
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

func (g *Gateway) setupRoutes() {
	g.router.HandleFunc("/healthz", g.handleHealth).Methods(http.MethodGet)

	api := g.router.PathPrefix("/api/v1").Subrouter()
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("", g.handleListUsers).Methods(http.MethodGet)
	users.HandleFunc("", g.handleAddUser).Methods(http.MethodPost)
	users.HandleFunc("/{id}", g.handleGetUser).Methods(http.MethodGet)
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userRequest mirrors user.User but keeps the role as free text so an
// invalid role is reported as a 400 instead of a decode error.
type userRequest struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (g *Gateway) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ID == nil {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := g.store.AddUser(r.Context(), user.User{
		ID:    *req.ID,
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	})
	if err != nil {
		log.Printf("add user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "add user failed")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// handleListUsers serves GET /users, optionally filtered by ?role=.
func (g *Gateway) handleListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		users []user.User
		err   error
	)
	if q := r.URL.Query(); q.Has("role") {
		raw := q.Get("role")
		role, perr := user.ParseRole(raw)
		if perr != nil || strings.TrimSpace(raw) == "" {
			writeError(w, http.StatusBadRequest, "role must be one of admin, user, guest")
			return
		}
		users, err = g.store.ListUsersByRole(r.Context(), role)
	} else {
		users, err = g.store.ListUsers(r.Context())
	}
	if err != nil {
		log.Printf("list users failed: %v", err)
		writeError(w, http.StatusInternalServerError, "list users failed")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (g *Gateway) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	u, ok, err := g.store.GetUser(r.Context(), id)
	if err != nil {
		log.Printf("get user %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "get user failed")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
