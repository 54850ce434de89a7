package stats

import (
	"testing"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func floatPtr(v float64) *float64 { return &v }

func TestAggregateQuestion(t *testing.T) {
	t.Run("rating distribution and average", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{Value: "5"},
			{Value: "3"},
			{Value: "5"},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_RATING, responses)

		if agg.Total != 3 {
			t.Errorf("unexpected total: %d", agg.Total)
		}
		if agg.Distribution["5"] != 2 || agg.Distribution["3"] != 1 {
			t.Errorf("unexpected distribution: %v", agg.Distribution)
		}
		if agg.Average == nil || *agg.Average != 4.3 {
			t.Errorf("unexpected average: %v", agg.Average)
		}
	})

	t.Run("rating from numeric values", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{NumericValue: floatPtr(4)},
			{NumericValue: floatPtr(2)},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_RATING, responses)
		if agg.Average == nil || *agg.Average != 3 {
			t.Errorf("unexpected average: %v", agg.Average)
		}
		if agg.Distribution["4"] != 1 || agg.Distribution["2"] != 1 {
			t.Errorf("unexpected distribution: %v", agg.Distribution)
		}
	})

	t.Run("malformed rating values stay in the distribution", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{Value: "5"},
			{Value: "not a number"},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_RATING, responses)
		if agg.Total != 2 {
			t.Errorf("unexpected total: %d", agg.Total)
		}
		if agg.Distribution["not a number"] != 1 {
			t.Errorf("unexpected distribution: %v", agg.Distribution)
		}
		if agg.Average == nil || *agg.Average != 5 {
			t.Errorf("unexpected average: %v", agg.Average)
		}
	})

	t.Run("fractional numeric values are discarded from the average", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{NumericValue: floatPtr(4.7)},
			{NumericValue: floatPtr(3)},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_RATING, responses)
		if agg.Average == nil || *agg.Average != 3 {
			t.Errorf("unexpected average: %v", agg.Average)
		}
		if agg.Distribution["4.7"] != 1 {
			t.Errorf("unexpected distribution: %v", agg.Distribution)
		}
	})

	t.Run("no parsable rating values", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{Value: "bad"},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_RATING, responses)
		if agg.Average != nil {
			t.Errorf("average should be absent, got: %v", *agg.Average)
		}
	})

	t.Run("no average for non rating questions", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{Value: "5"},
			{Value: "3"},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_TEXT, responses)
		if agg.Average != nil {
			t.Errorf("average should be absent, got: %v", *agg.Average)
		}
	})

	t.Run("missing values grouped under placeholder", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{},
			{Value: "yes"},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_YES_NO, responses)
		if agg.Distribution[MISSING_VALUE_KEY] != 1 {
			t.Errorf("unexpected distribution: %v", agg.Distribution)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_RATING, nil)
		if agg.Total != 0 || len(agg.Distribution) != 0 || agg.Average != nil {
			t.Errorf("unexpected aggregate: %+v", agg)
		}
	})
}

func TestSortedEntries(t *testing.T) {
	t.Run("sorted by descending count", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{Value: "no"},
			{Value: "yes"},
			{Value: "yes"},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_YES_NO, responses)
		entries := agg.SortedEntries()

		if len(entries) != 2 {
			t.Fatalf("unexpected entry count: %d", len(entries))
		}
		if entries[0].Response != "yes" || entries[0].Count != 2 || entries[0].Percentage != 67 {
			t.Errorf("unexpected first entry: %+v", entries[0])
		}
		if entries[1].Response != "no" || entries[1].Count != 1 || entries[1].Percentage != 33 {
			t.Errorf("unexpected second entry: %+v", entries[1])
		}
	})

	t.Run("ties keep observation order", func(t *testing.T) {
		responses := []surveyTypes.Response{
			{Value: "b"},
			{Value: "a"},
		}
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_TEXT, responses)
		entries := agg.SortedEntries()
		if entries[0].Response != "b" || entries[1].Response != "a" {
			t.Errorf("unexpected order: %+v", entries)
		}
	})

	t.Run("empty aggregate", func(t *testing.T) {
		agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_TEXT, nil)
		if len(agg.SortedEntries()) != 0 {
			t.Error("should be empty")
		}
	})
}
