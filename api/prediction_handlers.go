package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rehabengine/app"
	"rehabengine/domain/core"
	"rehabengine/domain/feature"
	"rehabengine/internal"
)

// PredictionHandler serves the four scoring endpoints and model status.
type PredictionHandler struct {
	assessment *app.AssessmentService
	logger     *internal.Logger
}

// NewPredictionHandler creates the prediction handler.
func NewPredictionHandler(assessment *app.AssessmentService, logger *internal.Logger) *PredictionHandler {
	return &PredictionHandler{assessment: assessment, logger: logger}
}

// HandleEligibility scores a caller-supplied feature payload. Unknown keys
// are ignored; the feature spec decides what is required.
func (h *PredictionHandler) HandleEligibility() gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]string
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		pred, err := h.assessment.ScoreRow(c.Request.Context(), feature.TaskEligibility, feature.Row(payload))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pred)
	}
}

// HandleInmateTask scores an inmate from the current dataset for one task.
// The inmate is identified by the inmate_id query parameter or body field.
func (h *PredictionHandler) HandleInmateTask(taskName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, err := feature.ParseTask(taskName)
		if err != nil {
			respondError(c, err)
			return
		}

		rawID := c.Query("inmate_id")
		if rawID == "" {
			var body struct {
				InmateID string `json:"inmate_id"`
			}
			if err := c.ShouldBindJSON(&body); err == nil {
				rawID = body.InmateID
			}
		}
		id, err := core.ParseInmateID(rawID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pred, err := h.assessment.ScoreInmate(c.Request.Context(), task, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pred)
	}
}

// HandleModelStatus reports the active scoring strategy per task.
func (h *PredictionHandler) HandleModelStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tasks": h.assessment.ModelStatus()})
	}
}
