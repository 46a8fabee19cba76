package handlers

import (
	"net/http"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/aggregate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AggregateHandler struct {
	log    *zap.Logger
	runner *aggregate.Runner
}

func NewAggregateHandler(log *zap.Logger, runner *aggregate.Runner) *AggregateHandler {
	return &AggregateHandler{log: log, runner: runner}
}

// Trigger runs one aggregation pass. Token authentication happens in the
// router middleware; this endpoint is meant for external schedulers and
// needs no interactive input.
func (h *AggregateHandler) Trigger(c *gin.Context) {
	processed, err := h.runner.Run(c.Request.Context())
	if err != nil {
		h.log.Error("Triggered aggregation run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aggregation run failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": processed})
}
