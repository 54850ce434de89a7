package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/vivamais/vivamais-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/vivamais/vivamais-backend/pkg/db/survey"
	"github.com/vivamais/vivamais-backend/pkg/surveys/stats"
)

func (h *HttpEndpoints) AddStatisticsAPI(rg *gin.RouterGroup) {
	statistics := rg.Group("")
	statistics.Use(mw.GetAndValidateSurveyUserJWT(h.tokenSignKey))

	statistics.GET("/questions/:questionID/statistics", h.getQuestionStatistics)
	statistics.GET("/statistics", h.getPlatformStatistics)
	statistics.GET("/dashboard-data", h.getDashboardData)
}

// registered inside the questionnaires group, see AddQuestionnairesAPI
func (h *HttpEndpoints) getQuestionnaireStatistics(c *gin.Context) {
	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(c.Param("questionnaireID"))
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing statistics"})
		return
	}

	responseCounts := make(map[string]int64, len(questionnaire.Questions))
	for _, question := range questionnaire.Questions {
		count, err := h.surveyDBConn.CountResponsesByQuestionID(question.ID)
		if err != nil {
			slog.Error("failed to count responses", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing statistics"})
			return
		}
		responseCounts[question.ID] = count
	}

	c.JSON(http.StatusOK, stats.BuildQuestionnaireStatistics(questionnaire, responseCounts))
}

func (h *HttpEndpoints) getQuestionStatistics(c *gin.Context) {
	questionID := c.Param("questionID")

	responses, err := h.surveyDBConn.GetResponsesByQuestionID(questionID)
	if err != nil {
		slog.Error("failed to fetch responses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing statistics"})
		return
	}

	aggregate := stats.AggregateQuestion(h.lookupQuestionType(questionID), responses)
	c.JSON(http.StatusOK, stats.BuildQuestionStatistics(questionID, aggregate))
}

// lookupQuestionType resolves the owning question's type by scanning the
// questionnaires, the question id alone does not carry it. Returns an empty
// string when the question is not embedded anywhere (legacy data), which
// skips the average computation.
func (h *HttpEndpoints) lookupQuestionType(questionID string) string {
	questionnaires, err := h.surveyDBConn.GetAllQuestionnaires()
	if err != nil {
		slog.Warn("could not resolve question type", slog.String("error", err.Error()))
		return ""
	}
	for _, questionnaire := range questionnaires {
		for _, question := range questionnaire.Questions {
			if question.ID == questionID {
				return question.Type
			}
		}
	}
	return ""
}

func (h *HttpEndpoints) getPlatformStatistics(c *gin.Context) {
	totalUsers, err := h.surveyDBConn.CountUsers()
	if err != nil {
		slog.Error("failed to count users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing statistics"})
		return
	}
	totalResponses, err := h.surveyDBConn.CountResponses()
	if err != nil {
		slog.Error("failed to count responses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing statistics"})
		return
	}
	questionnaires, err := h.surveyDBConn.GetActiveQuestionnaires()
	if err != nil {
		slog.Error("failed to fetch questionnaires", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing statistics"})
		return
	}

	questionnaireStats := make([]stats.QuestionnaireResponseCount, 0, len(questionnaires))
	for _, questionnaire := range questionnaires {
		questionIDs := make([]string, 0, len(questionnaire.Questions))
		for _, question := range questionnaire.Questions {
			questionIDs = append(questionIDs, question.ID)
		}
		responsesCount, err := h.surveyDBConn.CountResponsesByQuestionIDs(questionIDs)
		if err != nil {
			slog.Error("failed to count responses", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing statistics"})
			return
		}
		questionnaireStats = append(questionnaireStats, stats.QuestionnaireResponseCount{
			ID:             questionnaire.ID.Hex(),
			Title:          questionnaire.Title,
			QuestionsCount: len(questionnaire.Questions),
			ResponsesCount: responsesCount,
		})
	}

	c.JSON(http.StatusOK, stats.PlatformStatistics{
		TotalUsers:          totalUsers,
		TotalQuestionnaires: int64(len(questionnaires)),
		TotalResponses:      totalResponses,
		QuestionnaireStats:  questionnaireStats,
	})
}

// getDashboardData never propagates store failures, it answers all-zero
// totals instead (see stats.ResolveDashboardTotals).
func (h *HttpEndpoints) getDashboardData(c *gin.Context) {
	totalUsers, totalQuestionnaires, sessionCount, responseCount, err := h.collectDashboardCounts()
	if err != nil {
		slog.Error("failed to collect dashboard counts", slog.String("error", err.Error()))
	}
	c.JSON(http.StatusOK, stats.ResolveDashboardTotals(totalUsers, totalQuestionnaires, sessionCount, responseCount, err))
}

func (h *HttpEndpoints) collectDashboardCounts() (totalUsers int64, totalQuestionnaires int64, sessionCount int64, responseCount int64, err error) {
	totalUsers, err = h.surveyDBConn.CountUsers()
	if err != nil {
		return
	}
	totalQuestionnaires, err = h.surveyDBConn.CountActiveQuestionnaires()
	if err != nil {
		return
	}
	sessionCount, err = h.surveyDBConn.CountResponseSessions()
	if err != nil {
		return
	}
	if sessionCount == 0 {
		responseCount, err = h.surveyDBConn.CountResponses()
	}
	return
}
