package stats

import (
	"math"
	"sort"
	"strconv"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

// Display key used when an answer carries neither a value nor a numeric value.
const MISSING_VALUE_KEY = "N/A"

type QuestionAggregate struct {
	Total        int
	Distribution map[string]int
	// Average of the parsable rating values, rounded to one decimal place.
	// Nil for non-rating questions or when no value could be parsed.
	Average *float64

	// distribution keys in the order they were first observed
	keys []string
}

type DistributionEntry struct {
	Response   string `json:"response"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// AggregateQuestion reduces the raw answers of one question into a value
// distribution. Malformed values are dropped from the numeric aggregation
// but still counted in the distribution under their raw key. It never fails.
func AggregateQuestion(questionType string, responses []surveyTypes.Response) QuestionAggregate {
	agg := QuestionAggregate{
		Total:        len(responses),
		Distribution: map[string]int{},
	}

	ratingSum := 0
	ratingCount := 0

	for _, r := range responses {
		key := displayKey(r)
		if _, ok := agg.Distribution[key]; !ok {
			agg.keys = append(agg.keys, key)
		}
		agg.Distribution[key]++

		if questionType == surveyTypes.QUESTION_TYPE_RATING {
			if v, ok := ratingValue(r); ok {
				ratingSum += v
				ratingCount++
			}
		}
	}

	if ratingCount > 0 {
		avg := math.Round(float64(ratingSum)/float64(ratingCount)*10) / 10
		agg.Average = &avg
	}
	return agg
}

// SortedEntries returns the distribution as a list sorted by descending
// count. Ties keep the order the answers were observed in.
func (agg QuestionAggregate) SortedEntries() []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(agg.keys))
	for _, key := range agg.keys {
		count := agg.Distribution[key]
		percentage := 0
		if agg.Total > 0 {
			percentage = int(math.Round(float64(count) / float64(agg.Total) * 100))
		}
		entries = append(entries, DistributionEntry{
			Response:   key,
			Count:      count,
			Percentage: percentage,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

func displayKey(r surveyTypes.Response) string {
	if r.Value != "" {
		return r.Value
	}
	if r.NumericValue != nil {
		return strconv.FormatFloat(*r.NumericValue, 'f', -1, 64)
	}
	return MISSING_VALUE_KEY
}

// ratingValue extracts the integer rating of one answer. Fractional numeric
// values are as unparsable as non-numeric text, both are discarded.
func ratingValue(r surveyTypes.Response) (int, bool) {
	if r.NumericValue != nil {
		v := *r.NumericValue
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	}
	v, err := strconv.Atoi(r.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}
