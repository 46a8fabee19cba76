package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResultsHandler struct {
	log *zap.Logger
}

func NewResultsHandler(log *zap.Logger) *ResultsHandler {
	return &ResultsHandler{log: log}
}

// Save stores a completed session summary. Identity follows the same rule
// as ingestion: the session wins, anonymous is fine.
func (h *ResultsHandler) Save(c *gin.Context) {
	var result models.SessionResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if result.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed result", "field": "sessionId"})
		return
	}

	session := sessions.Default(c)
	if userID, ok := session.Get("userID").(uint); ok {
		result.UserID = &userID
	}

	if err := repository.SaveResult(c.Request.Context(), &result); err != nil {
		h.log.Error("Failed to store session result",
			zap.String("sessionID", result.SessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store result"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sessionId": result.SessionID})
}

// List returns the caller's recent session summaries.
func (h *ResultsHandler) List(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get("userID").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	results, err := repository.GetRecentResults(c.Request.Context(), userID, 20)
	if err != nil {
		h.log.Error("Failed to list session results", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Chart renders the per-session WPM time series as a line chart, with
// error-marker samples surfaced as a third series.
func (h *ResultsHandler) Chart(c *gin.Context) {
	sessionID := c.Param("sessionID")

	result, err := repository.GetResultBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
			return
		}
		h.log.Error("Failed to load session result", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load result"})
		return
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Typing speed over time",
			Subtitle: fmt.Sprintf("Session %s", result.SessionID),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "WPM"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "elapsed (s)"}),
	)

	xAxis := make([]string, 0, len(result.Samples))
	rawSeries := make([]opts.LineData, 0, len(result.Samples))
	netSeries := make([]opts.LineData, 0, len(result.Samples))
	errSeries := make([]opts.LineData, 0, len(result.Samples))
	for _, sample := range result.Samples {
		xAxis = append(xAxis, fmt.Sprintf("%.0f", sample.ElapsedSeconds))
		rawSeries = append(rawSeries, opts.LineData{Value: sample.RawWPM})
		netSeries = append(netSeries, opts.LineData{Value: sample.NetWPM})
		if sample.ErrorMarker {
			errSeries = append(errSeries, opts.LineData{Value: sample.Errors})
		} else {
			errSeries = append(errSeries, opts.LineData{Value: nil})
		}
	}

	line.SetXAxis(xAxis).
		AddSeries("Raw WPM", rawSeries).
		AddSeries("Net WPM", netSeries).
		AddSeries("Errors", errSeries)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render session chart", zap.String("sessionID", sessionID), zap.Error(err))
	}
}
