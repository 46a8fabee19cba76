package handlers

import (
	"errors"
	"net/http"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	log *zap.Logger
}

func NewProfileHandler(log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{log: log}
}

// Show returns the caller's weakness profile, or 404 when no aggregation
// run has produced one yet. Absence is normal; consumers fall back to
// generic behavior.
func (h *ProfileHandler) Show(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get("userID").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	profile, err := repository.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No profile yet"})
			return
		}
		h.log.Error("Failed to load weakness profile", zap.Uint("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
