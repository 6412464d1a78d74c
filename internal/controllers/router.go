package controllers

import "net/http"

// RegisterRoutes wires the HTTP routes for this controller.
func (c *TickerController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ticker", c.RequireAuth(c.handleGetStatus))
	mux.HandleFunc("POST /api/ticker/stop", c.RequireAuth(c.handleStop))
	mux.HandleFunc("POST /api/ticker/start", c.RequireAuth(c.handleStart))
	mux.HandleFunc("GET /api/runs", c.RequireAuth(c.handleGetRuns))
}
