package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rehabengine/app"
	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
	"rehabengine/internal"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// InmateHandler serves inmate and assessment lookups across the current
// snapshot and persisted runs.
type InmateHandler struct {
	generation *app.GenerationService
	logger     *internal.Logger
}

// NewInmateHandler creates the inmate handler.
func NewInmateHandler(generation *app.GenerationService, logger *internal.Logger) *InmateHandler {
	return &InmateHandler{generation: generation, logger: logger}
}

// HandleGetInmate returns one inmate's profile.
func (h *InmateHandler) HandleGetInmate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseInmateID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		profile, err := h.generation.LookupProfile(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// HandleGetAssessment returns one inmate's early-release assessment.
func (h *InmateHandler) HandleGetAssessment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseInmateID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		assessment, err := h.generation.LookupAssessment(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, assessment)
	}
}

// HandleListAssessments lists assessments with a given recommendation,
// highest eligibility score first.
func (h *InmateHandler) HandleListAssessments() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := inmate.ParseReleaseRecommendation(c.DefaultQuery("recommendation", string(inmate.ReleaseEligible)))
		if err != nil {
			respondError(c, err)
			return
		}
		limit := pageLimit(c)

		assessments, err := h.generation.ListAssessments(c.Request.Context(), rec, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"recommendation": rec,
			"count":          len(assessments),
			"assessments":    assessments,
		})
	}
}

// HandleRunProfiles pages through the persisted profiles of one run.
func (h *InmateHandler) HandleRunProfiles() gin.HandlerFunc {
	return func(c *gin.Context) {
		runID := core.RunID(c.Param("run_id"))
		limit := pageLimit(c)
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		profiles, total, err := h.generation.RunProfiles(c.Request.Context(), runID, limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"run_id":   runID,
			"total":    total,
			"offset":   offset,
			"profiles": profiles,
		})
	}
}

func pageLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 || limit > maxPageLimit {
		return defaultPageLimit
	}
	return limit
}
