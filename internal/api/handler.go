package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"SignalScope/internal/logger"
	"SignalScope/internal/recorder"
	"SignalScope/internal/service"
)

func errorBody(msg string) gin.H {
	return gin.H{"status": "error", "message": msg}
}

// GetAnalysis handles GET /analysis?symbol=AAPL&timeframe=6mo.
func (s *Server) GetAnalysis(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, errorBody("symbol is required"))
		return
	}
	timeframe := c.DefaultQuery("timeframe", s.opts.DefaultTimeframe)

	report, err := s.analyzer.Analyze(c.Request.Context(), symbol, timeframe)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case service.IsClientError(err):
			status = http.StatusBadRequest
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		logger.Ctx(c.Request.Context()).Warn("analysis failed",
			zap.String("symbol", symbol), zap.String("timeframe", timeframe), zap.Error(err))
		c.JSON(status, errorBody(err.Error()))
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetHistory handles GET /history?symbol=AAPL&limit=20.
func (s *Server) GetHistory(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, errorBody("symbol is required"))
		return
	}
	limit := DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > recorder.MaxHistory {
			c.JSON(http.StatusBadRequest, errorBody("limit must be between 1 and "+strconv.Itoa(recorder.MaxHistory)))
			return
		}
		limit = n
	}

	runs, err := s.recorder.History(c.Request.Context(), symbol, limit)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("history lookup failed", zap.String("symbol", symbol), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("history lookup failed"))
		return
	}
	if runs == nil {
		runs = []recorder.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"symbol": strings.ToUpper(symbol), "runs": runs})
}

// Health handles GET /health, running every configured dependency check.
func (s *Server) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for name, check := range s.opts.Checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}
	state := "healthy"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks, "time": time.Now().UTC()})
}
