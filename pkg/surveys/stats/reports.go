package stats

import (
	"math"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

type QuestionStat struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	Type         string `json:"type"`
	Responses    int64  `json:"responses"`
}

type QuestionnaireStatistics struct {
	QuestionnaireID             string         `json:"questionnaireId"`
	Title                       string         `json:"title"`
	TotalQuestions              int            `json:"totalQuestions"`
	TotalResponses              int64          `json:"totalResponses"`
	AverageResponsesPerQuestion int64          `json:"averageResponsesPerQuestion"`
	CompletionRate              int64          `json:"completionRate"`
	QuestionStats               []QuestionStat `json:"questionStats"`
}

type QuestionStatistics struct {
	QuestionID     string              `json:"questionId"`
	TotalResponses int                 `json:"totalResponses"`
	Statistics     []DistributionEntry `json:"statistics"`
	Average        *float64            `json:"average,omitempty"`
}

type DashboardTotals struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalQuestionnaires int64 `json:"totalQuestionnaires"`
	TotalResponses      int64 `json:"totalResponses"`
}

type QuestionnaireResponseCount struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	QuestionsCount int    `json:"questionsCount"`
	ResponsesCount int64  `json:"responsesCount"`
}

type PlatformStatistics struct {
	TotalUsers          int64                        `json:"totalUsers"`
	TotalQuestionnaires int64                        `json:"totalQuestionnaires"`
	TotalResponses      int64                        `json:"totalResponses"`
	QuestionnaireStats  []QuestionnaireResponseCount `json:"questionnaireStats"`
}

// BuildQuestionnaireStatistics combines a questionnaire's embedded question
// list with the per-question answer counts into the questionnaire report.
// The completionRate is a response-count-per-question ratio, kept from the
// original data shape, not a fraction of completed sessions.
func BuildQuestionnaireStatistics(questionnaire surveyTypes.Questionnaire, responseCounts map[string]int64) QuestionnaireStatistics {
	questionStats := make([]QuestionStat, 0, len(questionnaire.Questions))
	var totalResponses int64
	for _, question := range questionnaire.Questions {
		count := responseCounts[question.ID]
		totalResponses += count
		questionStats = append(questionStats, QuestionStat{
			QuestionID:   question.ID,
			QuestionText: question.Text,
			Type:         question.Type,
			Responses:    count,
		})
	}

	statistics := QuestionnaireStatistics{
		QuestionnaireID: questionnaire.ID.Hex(),
		Title:           questionnaire.Title,
		TotalQuestions:  len(questionnaire.Questions),
		TotalResponses:  totalResponses,
		QuestionStats:   questionStats,
	}

	if n := len(questionnaire.Questions); n > 0 {
		statistics.AverageResponsesPerQuestion = roundRatio(totalResponses, int64(n), 1)
		statistics.CompletionRate = roundRatio(totalResponses, int64(n), 100)
	}
	return statistics
}

// BuildQuestionStatistics turns an aggregate into the per-question report,
// with the distribution sorted by descending count.
func BuildQuestionStatistics(questionID string, agg QuestionAggregate) QuestionStatistics {
	return QuestionStatistics{
		QuestionID:     questionID,
		TotalResponses: agg.Total,
		Statistics:     agg.SortedEntries(),
		Average:        agg.Average,
	}
}

// ResolveDashboardTotals assembles the dashboard card totals from the raw
// counts. Any collection failure collapses to all-zero totals, the dashboard
// renders placeholders instead of an error page. When no response sessions
// exist yet the raw answer count stands in for the response total
// (deployments that predate response sessions only have raw answers).
func ResolveDashboardTotals(totalUsers int64, totalQuestionnaires int64, sessionCount int64, responseCount int64, err error) DashboardTotals {
	if err != nil {
		return DashboardTotals{}
	}

	totalResponses := sessionCount
	if totalResponses == 0 {
		totalResponses = responseCount
	}
	return DashboardTotals{
		TotalUsers:          totalUsers,
		TotalQuestionnaires: totalQuestionnaires,
		TotalResponses:      totalResponses,
	}
}

func roundRatio(numerator int64, denominator int64, scale int64) int64 {
	return int64(math.Round(float64(numerator*scale) / float64(denominator)))
}
