package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func TestBuildQuestionnaireStatistics(t *testing.T) {
	questionnaire := surveyTypes.Questionnaire{
		ID:    primitive.NewObjectID(),
		Title: "Service satisfaction",
		Questions: []surveyTypes.Question{
			{ID: "q1", Text: "How was the service?", Type: surveyTypes.QUESTION_TYPE_RATING},
			{ID: "q2", Text: "Would you recommend us?", Type: surveyTypes.QUESTION_TYPE_YES_NO},
			{ID: "q3", Text: "Any comments?", Type: surveyTypes.QUESTION_TYPE_TEXT},
		},
	}

	t.Run("with responses", func(t *testing.T) {
		counts := map[string]int64{"q1": 5, "q2": 4, "q3": 1}
		statistics := BuildQuestionnaireStatistics(questionnaire, counts)

		assert.Equal(t, questionnaire.ID.Hex(), statistics.QuestionnaireID)
		assert.Equal(t, "Service satisfaction", statistics.Title)
		assert.Equal(t, 3, statistics.TotalQuestions)
		assert.Equal(t, int64(10), statistics.TotalResponses)
		// round(10/3) and round(100*10/3)
		assert.Equal(t, int64(3), statistics.AverageResponsesPerQuestion)
		assert.Equal(t, int64(333), statistics.CompletionRate)
		assert.Len(t, statistics.QuestionStats, 3)
		assert.Equal(t, int64(5), statistics.QuestionStats[0].Responses)
		assert.Equal(t, "q1", statistics.QuestionStats[0].QuestionID)
	})

	t.Run("questions without answers count as zero", func(t *testing.T) {
		statistics := BuildQuestionnaireStatistics(questionnaire, map[string]int64{"q1": 2})
		assert.Equal(t, int64(2), statistics.TotalResponses)
		assert.Equal(t, int64(1), statistics.AverageResponsesPerQuestion)
		assert.Equal(t, int64(67), statistics.CompletionRate)
	})

	t.Run("without questions", func(t *testing.T) {
		empty := surveyTypes.Questionnaire{ID: primitive.NewObjectID(), Title: "Empty"}
		statistics := BuildQuestionnaireStatistics(empty, nil)
		assert.Equal(t, 0, statistics.TotalQuestions)
		assert.Equal(t, int64(0), statistics.TotalResponses)
		assert.Equal(t, int64(0), statistics.AverageResponsesPerQuestion)
		assert.Equal(t, int64(0), statistics.CompletionRate)
		assert.Empty(t, statistics.QuestionStats)
	})
}

func TestResolveDashboardTotals(t *testing.T) {
	testCases := []struct {
		name                string
		totalUsers          int64
		totalQuestionnaires int64
		sessionCount        int64
		responseCount       int64
		err                 error
		want                DashboardTotals
	}{
		{
			name:                "sessions present",
			totalUsers:          12,
			totalQuestionnaires: 3,
			sessionCount:        40,
			responseCount:       0,
			want:                DashboardTotals{TotalUsers: 12, TotalQuestionnaires: 3, TotalResponses: 40},
		},
		{
			name:                "no sessions falls back to raw answer count",
			totalUsers:          12,
			totalQuestionnaires: 3,
			sessionCount:        0,
			responseCount:       87,
			want:                DashboardTotals{TotalUsers: 12, TotalQuestionnaires: 3, TotalResponses: 87},
		},
		{
			name: "empty store",
			want: DashboardTotals{},
		},
		{
			name:                "store failure collapses to zeros",
			totalUsers:          12,
			totalQuestionnaires: 3,
			sessionCount:        40,
			err:                 errors.New("connection reset"),
			want:                DashboardTotals{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDashboardTotals(tc.totalUsers, tc.totalQuestionnaires, tc.sessionCount, tc.responseCount, tc.err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildQuestionStatistics(t *testing.T) {
	responses := []surveyTypes.Response{
		{Value: "5"},
		{Value: "5"},
		{Value: "4"},
	}
	agg := AggregateQuestion(surveyTypes.QUESTION_TYPE_RATING, responses)
	statistics := BuildQuestionStatistics("q1", agg)

	assert.Equal(t, "q1", statistics.QuestionID)
	assert.Equal(t, 3, statistics.TotalResponses)
	assert.Len(t, statistics.Statistics, 2)
	assert.Equal(t, "5", statistics.Statistics[0].Response)
	assert.Equal(t, 2, statistics.Statistics[0].Count)
	if assert.NotNil(t, statistics.Average) {
		assert.Equal(t, 4.7, *statistics.Average)
	}
}
