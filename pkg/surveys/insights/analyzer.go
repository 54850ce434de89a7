package insights

import (
	"fmt"
	"strings"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

const (
	// Upper bound on how many answers one analysis looks at.
	DEFAULT_SAMPLE_SIZE = 50

	satisfactionThreshold = 4.0
)

// Negative-sentiment substrings matched against free-text answers. The
// vocabulary is locale specific (the deployments this serves are
// Portuguese), override it through the service config for other locales.
var DefaultNegativeKeywords = []string{"ruim", "demora", "não"}

type Analysis struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	ActionPlan   []string `json:"action_plan"`
}

// Analyzer produces a qualitative summary from a bounded answer sample.
// The default implementation is a fixed-rule heuristic, the interface keeps
// it swappable for an external inference service without changing callers.
type Analyzer interface {
	Analyze(responses []surveyTypes.Response) Analysis
}

type HeuristicAnalyzer struct {
	NegativeKeywords []string
}

func NewHeuristicAnalyzer(negativeKeywords []string) *HeuristicAnalyzer {
	if len(negativeKeywords) == 0 {
		negativeKeywords = DefaultNegativeKeywords
	}
	return &HeuristicAnalyzer{
		NegativeKeywords: negativeKeywords,
	}
}

// EmptySampleAnalysis is returned when there are no answers to analyze yet.
func EmptySampleAnalysis() Analysis {
	return Analysis{
		Strengths:    []string{"Not enough data yet."},
		Improvements: []string{"Wait for more responses."},
		ActionPlan:   []string{"Promote the questionnaire."},
	}
}

// Analyze is deterministic given the same answer sample: it averages the
// numeric values, counts keyword hits in the free-text answers and branches
// on fixed thresholds.
func (a *HeuristicAnalyzer) Analyze(responses []surveyTypes.Response) Analysis {
	var totalScore float64
	ratingCount := 0
	negativeComments := 0

	for _, r := range responses {
		if r.NumericValue != nil {
			totalScore += *r.NumericValue
			ratingCount++
		}
		if r.Value != "" && a.containsNegativeKeyword(r.Value) {
			negativeComments++
		}
	}

	var average float64
	if ratingCount > 0 {
		average = totalScore / float64(ratingCount)
	}

	analysis := Analysis{
		Strengths:    []string{},
		Improvements: []string{},
		ActionPlan:   []string{},
	}

	if average >= satisfactionThreshold {
		analysis.Strengths = append(analysis.Strengths, "High overall user satisfaction (average above 4.0).")
		analysis.Strengths = append(analysis.Strengths, "The service is being rated well.")
		analysis.ActionPlan = append(analysis.ActionPlan, "Keep up the current quality standard.")
	} else {
		analysis.Improvements = append(analysis.Improvements, "Overall satisfaction is low (average below 4.0).")
		analysis.ActionPlan = append(analysis.ActionPlan, "Investigate the reasons behind the low ratings.")
	}

	if negativeComments > 0 {
		analysis.Improvements = append(analysis.Improvements, fmt.Sprintf("%d comments with negative wording were detected.", negativeComments))
		analysis.ActionPlan = append(analysis.ActionPlan, "Read through the free-text comments carefully.")
	} else {
		analysis.Strengths = append(analysis.Strengths, "Few or no negative comments detected.")
	}

	if len(analysis.Strengths) == 0 {
		analysis.Strengths = append(analysis.Strengths, "Still collecting data to identify strengths.")
	}

	return analysis
}

func (a *HeuristicAnalyzer) containsNegativeKeyword(value string) bool {
	lowered := strings.ToLower(value)
	for _, keyword := range a.NegativeKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
