package nlp

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"rehabengine/domain/inmate"
)

func TestSentimentClassification(t *testing.T) {
	a := NewAnalyzer()

	res := a.Analyze("Inmate shows excellent progress. Engaged positively in session.")
	assert.Equal(t, inmate.SentimentPositive, res.Sentiment)

	res = a.Analyze("Inmate aggressive during group. Refused to participate.")
	assert.Equal(t, inmate.SentimentNegative, res.Sentiment)

	res = a.Analyze("Routine check-in. Nothing unusual to report.")
	assert.Equal(t, inmate.SentimentNeutral, res.Sentiment)
}

func TestMixedTextLeansPositive(t *testing.T) {
	a := NewAnalyzer()

	res := a.Analyze("Good progress this week although occasionally aggressive in group.")
	assert.Equal(t, inmate.SentimentPositive, res.Sentiment)
}

func TestKeyPointExtraction(t *testing.T) {
	a := NewAnalyzer()

	res := a.Analyze("Very cooperative. Discussed medication adherence. Some anxiety about release.")
	assert.Contains(t, res.KeyPoints, "Inmate showing cooperation")
	assert.Contains(t, res.KeyPoints, "Treatment compliance mentioned")
	assert.Contains(t, res.KeyPoints, "Signs of stress or anxiety")
}

func TestKeyPointsDefaultWhenNoTriggers(t *testing.T) {
	a := NewAnalyzer()

	res := a.Analyze("Discussed the weather.")
	assert.Equal(t, []string{"General counseling session conducted"}, res.KeyPoints)
}

func TestSummaryTruncation(t *testing.T) {
	a := NewAnalyzer()

	short := "Brief session."
	assert.Equal(t, short, a.Analyze(short).Summary)

	long := strings.Repeat("Inmate discussed rehabilitation goals. ", 10)
	res := a.Analyze(long)
	assert.True(t, strings.HasPrefix(res.Summary, "Session summary: "))
	assert.True(t, strings.HasSuffix(res.Summary, "..."))
	assert.LessOrEqual(t, len(res.Summary), len("Session summary: ")+150+3)
}

func TestSummaryTruncatesOnRuneBoundary(t *testing.T) {
	a := NewAnalyzer()

	long := strings.Repeat("Gespräch über Bewährungsauflagen und Führungszeugnis. ", 10)
	res := a.Analyze(long)
	assert.True(t, utf8.ValidString(res.Summary))

	trimmed := strings.TrimSuffix(strings.TrimPrefix(res.Summary, "Session summary: "), "...")
	assert.Equal(t, 150, utf8.RuneCountInString(trimmed))
}
