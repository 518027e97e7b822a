package adminserver

import (
	"net/http"

	"github.com/soltiHQ/gridstore/internal/transport/adminserver/middleware"
)

// newRouter builds the admin HTTP surface: read routes are open, mutating
// routes (PUT/DELETE/POST) require a valid bearer token.
func (s *AdminServer) newRouter() http.Handler {
	mux := http.NewServeMux()

	auth := middleware.Auth(s.cfg.verifier)

	mux.HandleFunc("GET /v1/stats", s.handleStats)
	mux.HandleFunc("POST /v1/login", s.handleLogin)

	mux.HandleFunc("GET /v1/{entity}/records/{id}", s.handleGetRecord)
	mux.HandleFunc("GET /v1/{entity}/records", s.handleGetRecords)
	mux.HandleFunc("GET /v1/{entity}/by/{field}/{value}", s.handleGetBy)
	mux.HandleFunc("GET /v1/{entity}/page", s.handlePage)
	mux.HandleFunc("GET /v1/{entity}/uniques/{field}", s.handleUniques)
	mux.HandleFunc("GET /v1/{entity}/views", s.handleListViews)
	mux.HandleFunc("GET /v1/{entity}/views/{fingerprint}", s.handleGetView)

	mux.Handle("PUT /v1/{entity}/records", auth(http.HandlerFunc(s.handlePutRecord)))
	mux.Handle("DELETE /v1/{entity}/records/{id}", auth(http.HandlerFunc(s.handleDropRecord)))
	mux.Handle("POST /v1/{entity}/views", auth(http.HandlerFunc(s.handleCreateView)))
	mux.Handle("DELETE /v1/{entity}/views/{fingerprint}", auth(http.HandlerFunc(s.handleDestroyView)))

	var handler http.Handler = mux
	handler = middleware.CORS(s.cfg.corsAllowOrigins)(handler)
	handler = middleware.Recovery(s.logger)(handler)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
