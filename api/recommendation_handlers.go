package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rehabengine/app"
	"rehabengine/internal"
)

// RecommendationHandler serves program recommendations.
type RecommendationHandler struct {
	recommendation *app.RecommendationService
	logger         *internal.Logger
}

// NewRecommendationHandler creates the recommendation handler.
func NewRecommendationHandler(recommendation *app.RecommendationService, logger *internal.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendation: recommendation, logger: logger}
}

// HandleRecommend ranks rehabilitation programs for one inmate and need group.
func (h *RecommendationHandler) HandleRecommend() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req app.RecommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		result, err := h.recommendation.Recommend(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
