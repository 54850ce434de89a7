package apihandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vivamais/vivamais-backend/pkg/apihelpers"
	mw "github.com/vivamais/vivamais-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/vivamais/vivamais-backend/pkg/db/survey"
	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
	"github.com/vivamais/vivamais-backend/pkg/utils"
)

func (h *HttpEndpoints) AddQuestionnairesAPI(rg *gin.RouterGroup) {
	questionnaires := rg.Group("/questionnaires")
	questionnaires.Use(mw.GetAndValidateSurveyUserJWT(h.tokenSignKey))

	questionnaires.GET("", h.getActiveQuestionnaires)
	questionnaires.GET("/available", h.getAvailableQuestionnaires)
	questionnaires.POST("", mw.RequirePayload(), mw.IsAdminUser(), h.createQuestionnaire)
	questionnaires.GET("/:questionnaireID", h.getQuestionnaire)
	questionnaires.PUT("/:questionnaireID", mw.RequirePayload(), mw.IsAdminUser(), h.updateQuestionnaire)
	questionnaires.DELETE("/:questionnaireID", mw.IsAdminUser(), h.deleteQuestionnaire)

	questionnaires.GET("/:questionnaireID/questions", h.getQuestions)
	questionnaires.POST("/:questionnaireID/questions", mw.RequirePayload(), mw.IsAdminUser(), h.addQuestion)
	questionnaires.PUT("/:questionnaireID/questions/:questionID", mw.RequirePayload(), mw.IsAdminUser(), h.updateQuestion)
	questionnaires.DELETE("/:questionnaireID/questions/:questionID", mw.IsAdminUser(), h.deleteQuestion)

	questionnaires.GET("/:questionnaireID/responses", mw.IsAdminUser(), h.getQuestionnaireResponses)
	questionnaires.GET("/:questionnaireID/statistics", h.getQuestionnaireStatistics)
}

type questionReq struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	Options    []string `json:"options"`
	Order      *int     `json:"order"`
	IsRequired *bool    `json:"is_required"`
}

type createQuestionnaireReq struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []questionReq `json:"questions"`
}

type updateQuestionnaireReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateQuestionReq struct {
	Text       *string   `json:"text"`
	Type       *string   `json:"type"`
	Options    *[]string `json:"options"`
	Order      *int      `json:"order"`
	IsRequired *bool     `json:"is_required"`
}

var validQuestionTypes = []string{
	surveyTypes.QUESTION_TYPE_RATING,
	surveyTypes.QUESTION_TYPE_YES_NO,
	surveyTypes.QUESTION_TYPE_MULTIPLE_CHOICE,
	surveyTypes.QUESTION_TYPE_TEXT,
}

// nextQuestionID picks an embedded question id of the form q<n> that is not
// taken yet, also after questions were removed from the middle of the list.
func nextQuestionID(questions []surveyTypes.Question) string {
	maxN := 0
	for _, question := range questions {
		suffix, found := strings.CutPrefix(question.ID, "q")
		if !found {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return fmt.Sprintf("q%d", maxN+1)
}

func questionFromReq(req questionReq, index int) (surveyTypes.Question, error) {
	if strings.TrimSpace(req.Text) == "" {
		return surveyTypes.Question{}, errors.New("question text is required")
	}
	if !utils.ContainsString(validQuestionTypes, req.Type) {
		return surveyTypes.Question{}, fmt.Errorf("invalid question type: %s", req.Type)
	}

	question := surveyTypes.Question{
		ID:         req.ID,
		Text:       strings.TrimSpace(req.Text),
		Type:       req.Type,
		Options:    req.Options,
		Order:      index + 1,
		IsRequired: true,
	}
	if question.ID == "" {
		question.ID = fmt.Sprintf("q%d", index+1)
	}
	if req.Order != nil {
		question.Order = *req.Order
	}
	if req.IsRequired != nil {
		question.IsRequired = *req.IsRequired
	}
	return question, nil
}

func (h *HttpEndpoints) getActiveQuestionnaires(c *gin.Context) {
	questionnaires, err := h.surveyDBConn.GetActiveQuestionnaires()
	if err != nil {
		slog.Error("failed to fetch questionnaires", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching questionnaires"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questionnaires": questionnaires})
}

// getAvailableQuestionnaires returns the active questionnaires the user has
// not started a response session for yet.
func (h *HttpEndpoints) getAvailableQuestionnaires(c *gin.Context) {
	claims := h.validatedTokenFromCtx(c)

	userID := c.DefaultQuery("userId", "")
	if userID == "" && claims != nil {
		userID = claims.ID
	}
	if userID != "" && !canAccessUserData(claims, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	questionnaires, err := h.surveyDBConn.GetActiveQuestionnaires()
	if err != nil {
		slog.Error("failed to fetch questionnaires", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching questionnaires"})
		return
	}

	answeredIDs := []string{}
	if userID != "" {
		answeredIDs, err = h.surveyDBConn.GetAnsweredQuestionnaireIDs(userID)
		if err != nil {
			slog.Error("failed to fetch answered questionnaires", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching questionnaires"})
			return
		}
	}

	available := make([]surveyTypes.Questionnaire, 0, len(questionnaires))
	for _, questionnaire := range questionnaires {
		if len(questionnaire.Questions) == 0 {
			continue
		}
		if utils.ContainsString(answeredIDs, questionnaire.ID.Hex()) {
			continue
		}
		available = append(available, questionnaire)
	}
	c.JSON(http.StatusOK, gin.H{"questionnaires": available})
}

func (h *HttpEndpoints) createQuestionnaire(c *gin.Context) {
	claims := h.validatedTokenFromCtx(c)

	var req createQuestionnaireReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	questions := make([]surveyTypes.Question, 0, len(req.Questions))
	for i, questionReq := range req.Questions {
		question, err := questionFromReq(questionReq, i)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		questions = append(questions, question)
	}

	questionnaire := surveyTypes.Questionnaire{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CreatedBy:   claims.ID,
		IsActive:    true,
		Questions:   questions,
	}
	id, err := h.surveyDBConn.CreateQuestionnaire(questionnaire)
	if err != nil {
		slog.Error("failed to create questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating questionnaire"})
		return
	}

	slog.Info("questionnaire created", slog.String("questionnaireID", id), slog.String("createdBy", claims.ID))
	c.JSON(http.StatusCreated, gin.H{
		"id":              id,
		"questions_count": len(questions),
	})
}

func (h *HttpEndpoints) getQuestionnaire(c *gin.Context) {
	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(c.Param("questionnaireID"))
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching questionnaire"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questionnaire": questionnaire})
}

func (h *HttpEndpoints) updateQuestionnaire(c *gin.Context) {
	questionnaireID := c.Param("questionnaireID")

	var req updateQuestionnaireReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	if err := h.surveyDBConn.UpdateQuestionnaireInfos(questionnaireID, strings.TrimSpace(req.Title), req.Description); err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to update questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating questionnaire"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "questionnaire updated"})
}

// deleteQuestionnaire only deactivates the questionnaire, so already
// collected answers keep their reference target.
func (h *HttpEndpoints) deleteQuestionnaire(c *gin.Context) {
	questionnaireID := c.Param("questionnaireID")

	if err := h.surveyDBConn.MarkQuestionnaireDeleted(questionnaireID); err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to delete questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting questionnaire"})
		return
	}

	slog.Info("questionnaire deactivated", slog.String("questionnaireID", questionnaireID))
	c.JSON(http.StatusOK, gin.H{"message": "questionnaire deleted"})
}

func (h *HttpEndpoints) getQuestions(c *gin.Context) {
	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(c.Param("questionnaireID"))
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching questions"})
		return
	}

	questions := questionnaire.Questions
	sort.SliceStable(questions, func(i int, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *HttpEndpoints) addQuestion(c *gin.Context) {
	questionnaireID := c.Param("questionnaireID")

	var req questionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(questionnaireID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error adding question"})
		return
	}

	question, err := questionFromReq(req, len(questionnaire.Questions))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		question.ID = nextQuestionID(questionnaire.Questions)
	}
	for _, existing := range questionnaire.Questions {
		if existing.ID == question.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question id already exists"})
			return
		}
	}

	questions := append(questionnaire.Questions, question)
	if err := h.surveyDBConn.ReplaceQuestions(questionnaireID, questions); err != nil {
		slog.Error("failed to save question", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error adding question"})
		return
	}

	slog.Info("question added",
		slog.String("questionnaireID", questionnaireID),
		slog.String("questionID", question.ID),
	)
	c.JSON(http.StatusCreated, gin.H{"question": question})
}

func (h *HttpEndpoints) updateQuestion(c *gin.Context) {
	questionnaireID := c.Param("questionnaireID")
	questionID := c.Param("questionID")

	var req updateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(questionnaireID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating question"})
		return
	}

	questionIndex := -1
	for i, question := range questionnaire.Questions {
		if question.ID == questionID {
			questionIndex = i
			break
		}
	}
	if questionIndex < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}

	question := questionnaire.Questions[questionIndex]
	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question text is required"})
			return
		}
		question.Text = strings.TrimSpace(*req.Text)
	}
	if req.Type != nil {
		if !utils.ContainsString(validQuestionTypes, *req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question type: " + *req.Type})
			return
		}
		question.Type = *req.Type
	}
	if req.Options != nil {
		question.Options = *req.Options
	}
	if req.Order != nil {
		question.Order = *req.Order
	}
	if req.IsRequired != nil {
		question.IsRequired = *req.IsRequired
	}
	questionnaire.Questions[questionIndex] = question

	if err := h.surveyDBConn.ReplaceQuestions(questionnaireID, questionnaire.Questions); err != nil {
		slog.Error("failed to save question", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating question"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question})
}

func (h *HttpEndpoints) deleteQuestion(c *gin.Context) {
	questionnaireID := c.Param("questionnaireID")
	questionID := c.Param("questionID")

	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(questionnaireID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting question"})
		return
	}

	questions := make([]surveyTypes.Question, 0, len(questionnaire.Questions))
	found := false
	for _, question := range questionnaire.Questions {
		if question.ID == questionID {
			found = true
			continue
		}
		questions = append(questions, question)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}

	if err := h.surveyDBConn.ReplaceQuestions(questionnaireID, questions); err != nil {
		slog.Error("failed to save questions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting question"})
		return
	}

	slog.Info("question removed",
		slog.String("questionnaireID", questionnaireID),
		slog.String("questionID", questionID),
	)
	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}

func (h *HttpEndpoints) getQuestionnaireResponses(c *gin.Context) {
	questionnaireID := c.Param("questionnaireID")

	pagination, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}

	questionnaire, err := h.surveyDBConn.GetQuestionnaireByID(questionnaireID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrQuestionnaireNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to fetch questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching responses"})
		return
	}

	questionIDs := make([]string, 0, len(questionnaire.Questions))
	for _, question := range questionnaire.Questions {
		questionIDs = append(questionIDs, question.ID)
	}

	responses, err := h.surveyDBConn.GetResponsesByQuestionIDs(questionIDs)
	if err != nil {
		slog.Error("failed to fetch responses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching responses"})
		return
	}

	// batched lookups return per-chunk order, re-sort newest first
	sort.SliceStable(responses, func(i int, j int) bool {
		return responses[i].CreatedAt.After(responses[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{
		"responses": apihelpers.Paginate(responses, pagination),
		"page":      pagination.Page,
		"limit":     pagination.Limit,
		"total":     len(responses),
	})
}
