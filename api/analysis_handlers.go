package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rehabengine/internal/nlp"
)

// AnalysisHandler serves counseling-note text analysis.
type AnalysisHandler struct {
	analyzer *nlp.Analyzer
}

// NewAnalysisHandler creates the analysis handler.
func NewAnalysisHandler(analyzer *nlp.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

// HandleAnalyzeNote runs sentiment, key points, and summary over note text.
func (h *AnalysisHandler) HandleAnalyzeNote() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}

		c.JSON(http.StatusOK, h.analyzer.Analyze(req.Text))
	}
}
