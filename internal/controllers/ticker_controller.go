package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RealZimboGuy/epochtick/internal/domain"
	"github.com/RealZimboGuy/epochtick/internal/engine"
	"github.com/RealZimboGuy/epochtick/internal/util"
)

const defaultRunsLimit = 20

type TickerController struct {
	AuthController
	Ticker engine.TickerControl
}

func NewTickerController(ticker engine.TickerControl, apiKeyHash string) *TickerController {
	return &TickerController{
		Ticker:         ticker,
		AuthController: AuthController{ApiKeyHash: apiKeyHash},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *TickerController) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	util.WriteJSONResponse(w, http.StatusOK, c.Ticker.Status())
}

func (c *TickerController) handleStop(w http.ResponseWriter, r *http.Request) {
	slog.Info("Stop requested", "caller", callerFrom(r))
	c.Ticker.Stop()
	util.WriteJSONResponse(w, http.StatusOK, c.Ticker.Status())
}

func (c *TickerController) handleStart(w http.ResponseWriter, r *http.Request) {
	slog.Info("Start requested", "caller", callerFrom(r))
	err := c.Ticker.Restart()
	switch {
	case err == nil:
		util.WriteJSONResponse(w, http.StatusOK, c.Ticker.Status())
	case errors.Is(err, engine.ErrAlreadyRunning):
		util.WriteJSONResponse(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, engine.ErrNoHandles):
		util.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		slog.Error("Failed to start epoch ticker", "error", err)
		util.WriteJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func (c *TickerController) handleGetRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			util.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := c.Ticker.ListRuns(limit)
	if err != nil {
		slog.Error("Failed to list epoch runs", "error", err)
		util.WriteJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "failed to list runs"})
		return
	}
	if runs == nil {
		runs = []*domain.EpochRun{}
	}
	util.WriteJSONResponse(w, http.StatusOK, runs)
}
