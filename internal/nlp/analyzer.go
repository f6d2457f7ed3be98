// Package nlp performs keyword analysis over counseling note text: sentiment
// classification, key-point extraction, and a truncating summary.
package nlp

import (
	"fmt"
	"strings"

	"rehabengine/domain/inmate"
)

const summaryMaxLength = 150

var (
	positiveWords = []string{"progress", "good", "cooperative", "improving", "positive"}
	negativeWords = []string{"aggressive", "resistance", "declined", "poor", "negative"}
)

// keyPointRule maps trigger keywords to the extracted observation.
type keyPointRule struct {
	triggers []string
	point    string
}

var keyPointRules = []keyPointRule{
	{triggers: []string{"cooperative"}, point: "Inmate showing cooperation"},
	{triggers: []string{"stress", "anxiety"}, point: "Signs of stress or anxiety"},
	{triggers: []string{"progress"}, point: "Progress noted in rehabilitation"},
	{triggers: []string{"aggressive", "violent"}, point: "Behavioral concerns noted"},
	{triggers: []string{"medication", "therapy"}, point: "Treatment compliance mentioned"},
}

// Analysis is the result of analyzing one note text.
type Analysis struct {
	Summary   string           `json:"summary"`
	Sentiment inmate.Sentiment `json:"sentiment"`
	KeyPoints []string         `json:"key_points"`
}

// Analyzer classifies note text. Stateless and safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer creates an analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs sentiment, key-point extraction, and summarization on text.
func (a *Analyzer) Analyze(text string) Analysis {
	lower := strings.ToLower(text)
	return Analysis{
		Summary:   summarize(text),
		Sentiment: classifySentiment(lower),
		KeyPoints: extractKeyPoints(lower),
	}
}

// classifySentiment checks positive keywords first, so mixed text leans
// positive the way the original classifier did.
func classifySentiment(lower string) inmate.Sentiment {
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return inmate.SentimentPositive
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return inmate.SentimentNegative
		}
	}
	return inmate.SentimentNeutral
}

func extractKeyPoints(lower string) []string {
	var points []string
	for _, rule := range keyPointRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				points = append(points, rule.point)
				break
			}
		}
	}
	if len(points) == 0 {
		points = []string{"General counseling session conducted"}
	}
	return points
}

// summarize truncates on a rune boundary so multi-byte text stays valid UTF-8.
func summarize(text string) string {
	runes := []rune(text)
	if len(runes) > summaryMaxLength {
		return fmt.Sprintf("Session summary: %s...", string(runes[:summaryMaxLength]))
	}
	return text
}
