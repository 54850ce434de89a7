package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func floatPtr(v float64) *float64 { return &v }

func TestHeuristicAnalyzer(t *testing.T) {
	analyzer := NewHeuristicAnalyzer(nil)

	t.Run("high satisfaction without negative comments", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{NumericValue: floatPtr(5)},
			{NumericValue: floatPtr(4)},
			{Value: "great service"},
		}
		analysis := analyzer.Analyze(responses)

		assert.Len(t, analysis.Strengths, 3)
		assert.Empty(t, analysis.Improvements)
		assert.Equal(t, []string{"Keep up the current quality standard."}, analysis.ActionPlan)
	})

	t.Run("low satisfaction with negative comments gets placeholder strength", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{NumericValue: floatPtr(2)},
			{Value: "muito ruim"},
			{Value: "demora demais"},
		}
		analysis := analyzer.Analyze(responses)

		assert.Equal(t, []string{"Still collecting data to identify strengths."}, analysis.Strengths)
		assert.Len(t, analysis.Improvements, 2)
		assert.Len(t, analysis.ActionPlan, 2)
	})

	t.Run("keyword matching is case insensitive", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{NumericValue: floatPtr(5)},
			{Value: "RUIM"},
		}
		analysis := analyzer.Analyze(responses)
		assert.Len(t, analysis.Improvements, 1)
	})

	t.Run("no ratings counts as low satisfaction", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{Value: "some comment"},
		}
		analysis := analyzer.Analyze(responses)
		assert.Contains(t, analysis.Improvements[0], "satisfaction is low")
	})

	t.Run("deterministic for the same sample", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{NumericValue: floatPtr(3)},
			{Value: "ruim"},
		}
		assert.Equal(t, analyzer.Analyze(responses), analyzer.Analyze(responses))
	})

	t.Run("custom keywords replace the defaults", func(t *testing.T) {
		custom := NewHeuristicAnalyzer([]string{"terrible"})
		responses := []surveyTypes.Response{
			{NumericValue: floatPtr(5)},
			{Value: "ruim but not matched"},
			{Value: "terrible experience"},
		}
		analysis := custom.Analyze(responses)
		assert.Contains(t, analysis.Improvements[0], "1 comments")
	})
}

func TestEmptySampleAnalysis(t *testing.T) {
	analysis := EmptySampleAnalysis()
	assert.NotEmpty(t, analysis.Strengths)
	assert.NotEmpty(t, analysis.Improvements)
	assert.NotEmpty(t, analysis.ActionPlan)
}
