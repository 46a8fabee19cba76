package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/content"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/repository"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxWordRequest = 500

type WordsHandler struct {
	log       *zap.Logger
	generator *content.Generator
	cache     *services.Cache
}

func NewWordsHandler(log *zap.Logger, generator *content.Generator, cache *services.Cache) *WordsHandler {
	return &WordsHandler{log: log, generator: generator, cache: cache}
}

// Generate serves word sequences for new sessions and lookahead refills.
// Logged-in callers with a weakness profile get adaptively biased words;
// everyone else gets the generic pool. The response always holds exactly
// the requested count.
func (h *WordsHandler) Generate(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
		return
	}
	// The response always holds exactly count words, so an oversized
	// request is rejected rather than silently shortened.
	if count > maxWordRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count too large"})
		return
	}
	difficulty := c.DefaultQuery("difficulty", "medium")

	var profile *models.WeaknessProfile
	session := sessions.Default(c)
	if userID, ok := session.Get("userID").(uint); ok {
		profile = h.loadProfile(c, userID)
	}

	words := h.generator.Generate(count, difficulty, profile)
	c.JSON(http.StatusOK, gin.H{"words": words})
}

// loadProfile reads through the TTL cache. A missing profile is a normal
// state and is cached too, so anonymous-heavy traffic doesn't hammer the
// profile table.
func (h *WordsHandler) loadProfile(c *gin.Context, userID uint) *models.WeaknessProfile {
	cacheKey := services.ProfileCacheKey(userID)
	if cached, ok := h.cache.Get(cacheKey); ok {
		profile, _ := cached.(*models.WeaknessProfile)
		return profile
	}

	profile, err := repository.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.log.Error("Failed to load weakness profile", zap.Uint("userID", userID), zap.Error(err))
			return nil
		}
		profile = nil
	}
	h.cache.Set(cacheKey, profile, services.ProfileTTL)
	return profile
}
