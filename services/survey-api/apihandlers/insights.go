package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	mw "github.com/vivamais/vivamais-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/vivamais/vivamais-backend/pkg/db/survey"
	"github.com/vivamais/vivamais-backend/pkg/surveys/insights"
	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func (h *HttpEndpoints) AddInsightsAPI(rg *gin.RouterGroup) {
	insightsGroup := rg.Group("")
	insightsGroup.Use(mw.GetAndValidateSurveyUserJWT(h.tokenSignKey))

	insightsGroup.POST("/generate-insights", mw.RequirePayload(), h.generateInsights)
}

type generateInsightsReq struct {
	QuestionnaireID string `json:"questionnaireId"`
}

func (h *HttpEndpoints) generateInsights(c *gin.Context) {
	var req generateInsightsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if req.QuestionnaireID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionnaireId is required"})
		return
	}

	sample, err := h.collectInsightsSample(req.QuestionnaireID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to collect answer sample", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating insights"})
		return
	}

	analysis := insights.EmptySampleAnalysis()
	if len(sample) > 0 {
		analysis = h.insightsAnalyzer.Analyze(sample)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": analysis,
	})
}

// collectInsightsSample loads the newest answers for the questionnaire's
// questions, capped at the configured sample size.
func (h *HttpEndpoints) collectInsightsSample(questionnaireID string) ([]surveyTypes.Response, error) {
	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(questionnaireID)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]string, 0, len(questionnaire.Questions))
	for _, question := range questionnaire.Questions {
		questionIDs = append(questionIDs, question.ID)
	}
	if len(questionIDs) == 0 {
		// questionnaires that predate embedded questions: sample store-wide
		return h.surveyDBConn.GetLatestResponses(h.insightsSampleSize)
	}

	responses, err := h.surveyDBConn.GetResponsesByQuestionIDs(questionIDs)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(responses, func(i int, j int) bool {
		return responses[i].CreatedAt.After(responses[j].CreatedAt)
	})
	if int64(len(responses)) > h.insightsSampleSize {
		responses = responses[:h.insightsSampleSize]
	}
	return responses, nil
}
