package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"bookstore/internal/app"
	"bookstore/internal/ratelimit"
	"bookstore/internal/util"
)

const sessionCookieName = "bookstore_session"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	TrustedProxies *util.TrustedProxies
	// CartLimiter rate-limits cart mutations per session when set.
	CartLimiter *ratelimit.FixedWindowLimiter
}

// Server exposes the catalog and cart HTTP endpoints.
type Server struct {
	app         *app.App
	trusted     *util.TrustedProxies
	cartLimiter *ratelimit.FixedWindowLimiter
	mux         *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:         cfg.App,
		trusted:     cfg.TrustedProxies,
		cartLimiter: cfg.CartLimiter,
		mux:         http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("bookstore", s.trusted, util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// catalog
	s.mux.HandleFunc("/api/books", s.handleListBooks)
	s.mux.HandleFunc("/api/books/", s.handleBookByID)
	s.mux.HandleFunc("/api/categories", s.handleCategories)

	// cart
	s.mux.Handle("/api/cart", s.withSession(s.handleGetCart))
	s.mux.Handle("/api/cart/add/", s.withSession(s.limited(s.handleAddToCart)))
	s.mux.Handle("/api/cart/update/", s.withSession(s.limited(s.handleUpdateCartItem)))
	s.mux.Handle("/api/cart/remove/", s.withSession(s.limited(s.handleRemoveFromCart)))
	s.mux.Handle("/api/cart/clear", s.withSession(s.limited(s.handleClearCart)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionHandler func(http.ResponseWriter, *http.Request, string)

// withSession resolves the visitor's session cookie, minting one when
// absent, and passes the session ID on.
func (s *Server) withSession(next sessionHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil && cookie.Value != "" {
			next(w, r, cookie.Value)
			return
		}
		sessionID := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		next(w, r, sessionID)
	})
}

// limited applies the per-session cart mutation rate limit when configured.
func (s *Server) limited(next sessionHandler) sessionHandler {
	return func(w http.ResponseWriter, r *http.Request, sessionID string) {
		if s.cartLimiter != nil && !s.cartLimiter.Allow(sessionID) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r, sessionID)
	}
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	page := queryInt(r, "pageNumber", 1)
	pageSize := queryInt(r, "pageSize", app.DefaultPageSize)
	sortColumn := queryDefault(r, "sortColumn", "Title")
	sortDirection := queryDefault(r, "sortDirection", "asc")
	category := r.URL.Query().Get("category")

	listing, err := s.app.ListBooks(r.Context(), page, pageSize, sortColumn, sortDirection, category)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) handleBookByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, ok := pathID(w, r.URL.Path, "/api/books/")
	if !ok {
		return
	}
	book, err := s.app.GetBook(r.Context(), id)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	categories, err := s.app.Categories(r.Context())
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	cart, err := s.app.GetCart(r.Context(), sessionID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	bookID, ok := pathID(w, r.URL.Path, "/api/cart/add/")
	if !ok {
		return
	}
	quantity := queryInt(r, "quantity", 1)
	cart, err := s.app.AddToCart(r.Context(), sessionID, bookID, quantity)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	bookID, ok := pathID(w, r.URL.Path, "/api/cart/update/")
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}
	cart, err := s.app.UpdateCartItem(r.Context(), sessionID, bookID, quantity)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	bookID, ok := pathID(w, r.URL.Path, "/api/cart/remove/")
	if !ok {
		return
	}
	cart, err := s.app.RemoveFromCart(r.Context(), sessionID, bookID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	cart, err := s.app.ClearCart(r.Context(), sessionID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrBookNotFound) {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	util.LoggerFromContext(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// pathID extracts the trailing integer ID after prefix, writing the error
// response itself when the path is unusable.
func pathID(w http.ResponseWriter, path, prefix string) (int, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func queryDefault(r *http.Request, name, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
