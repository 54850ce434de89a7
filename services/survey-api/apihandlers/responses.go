package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mw "github.com/vivamais/vivamais-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/vivamais/vivamais-backend/pkg/db/survey"
	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func (h *HttpEndpoints) AddResponsesAPI(rg *gin.RouterGroup) {
	responses := rg.Group("/responses")
	responses.Use(mw.GetAndValidateSurveyUserJWT(h.tokenSignKey))

	responses.POST("/session", mw.RequirePayload(), h.startResponseSession)
	responses.POST("", mw.RequirePayload(), h.submitResponse)
	responses.PUT("/session/:sessionID/complete", h.completeResponseSession)
}

type startSessionReq struct {
	QuestionnaireID string `json:"questionnaire_id"`
	RespondentName  string `json:"respondent_name"`
	RespondentAge   *int   `json:"respondent_age"`
	// optional, defaults to the calling user
	UserID string `json:"user_id"`
}

type submitResponseReq struct {
	QuestionID   string      `json:"question_id"`
	Value        interface{} `json:"value"`
	NumericValue *float64    `json:"numeric_value"`
	SessionID    string      `json:"session_id"`
}

func (h *HttpEndpoints) startResponseSession(c *gin.Context) {
	claims := h.validatedTokenFromCtx(c)

	var req startSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if req.QuestionnaireID == "" || strings.TrimSpace(req.RespondentName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionnaire_id and respondent_name are required"})
		return
	}

	sessionUserID, ok := sessionOwnerID(claims, req.UserID)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	if _, err := h.surveyDBConn.GetQuestionnaireByID(req.QuestionnaireID); err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error starting session"})
		return
	}

	answered, err := h.surveyDBConn.HasSessionForUserAndQuestionnaire(sessionUserID, req.QuestionnaireID)
	if err != nil {
		slog.Error("failed to check existing session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error starting session"})
		return
	}
	if answered {
		c.JSON(http.StatusConflict, gin.H{"error": "questionnaire already answered"})
		return
	}

	session := surveyTypes.ResponseSession{
		QuestionnaireID: req.QuestionnaireID,
		RespondentName:  strings.TrimSpace(req.RespondentName),
		RespondentAge:   req.RespondentAge,
		UserID:          sessionUserID,
	}
	sessionID, err := h.surveyDBConn.CreateResponseSession(session)
	if err != nil {
		slog.Error("failed to create response session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error starting session"})
		return
	}

	slog.Info("response session started",
		slog.String("sessionID", sessionID),
		slog.String("questionnaireID", req.QuestionnaireID),
		slog.String("userID", sessionUserID),
	)
	c.JSON(http.StatusCreated, gin.H{"session_id": sessionID})
}

func (h *HttpEndpoints) submitResponse(c *gin.Context) {
	claims := h.validatedTokenFromCtx(c)

	var req submitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	value := valueToStr(req.Value)
	if req.QuestionID == "" || value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question_id and value are required"})
		return
	}

	response := surveyTypes.Response{
		QuestionID:   req.QuestionID,
		UserID:       claims.ID,
		Value:        value,
		NumericValue: req.NumericValue,
		SessionID:    req.SessionID,
	}
	id, err := h.surveyDBConn.CreateResponse(response)
	if err != nil {
		slog.Error("failed to store response", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error storing response"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpEndpoints) completeResponseSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	if err := h.surveyDBConn.MarkSessionCompleted(sessionID); err != nil {
		if errors.Is(err, surveyDB.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		slog.Error("failed to complete session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error completing session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session completed"})
}
