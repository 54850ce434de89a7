package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/vivamais/vivamais-backend/pkg/apihelpers/middlewares"
)

func (h *HttpEndpoints) AddUserManagementAPI(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(mw.GetAndValidateSurveyUserJWT(h.tokenSignKey))

	users.GET("", mw.IsAdminUser(), h.getAllUsers)
	users.DELETE("/:userID", mw.IsAdminUser(), h.deleteUser)
	users.GET("/:userID/responses", h.getUserResponses)
	users.GET("/:userID/questionnaires/:questionnaireID/answered", h.getUserAnsweredQuestionnaire)
}

func (h *HttpEndpoints) getAllUsers(c *gin.Context) {
	users, err := h.surveyDBConn.GetUsers()
	if err != nil {
		slog.Error("failed to fetch users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching users"})
		return
	}

	userInfos := make([]userInfo, 0, len(users))
	for _, user := range users {
		userInfos = append(userInfos, userInfoFromUser(user))
	}
	c.JSON(http.StatusOK, gin.H{"users": userInfos})
}

func (h *HttpEndpoints) deleteUser(c *gin.Context) {
	claims := h.validatedTokenFromCtx(c)
	userID := c.Param("userID")

	if claims != nil && claims.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}

	if _, err := h.surveyDBConn.GetUserByID(userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("failed to fetch user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting user"})
		return
	}

	if err := h.surveyDBConn.DeleteUser(userID); err != nil {
		slog.Error("failed to delete user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting user"})
		return
	}

	slog.Info("user deleted", slog.String("userID", userID), slog.String("deletedBy", claims.ID))
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *HttpEndpoints) getUserResponses(c *gin.Context) {
	claims := h.validatedTokenFromCtx(c)
	userID := c.Param("userID")

	if !canAccessUserData(claims, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	responses, err := h.surveyDBConn.GetResponsesByUserID(userID)
	if err != nil {
		slog.Error("failed to fetch user responses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching responses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

func (h *HttpEndpoints) getUserAnsweredQuestionnaire(c *gin.Context) {
	claims := h.validatedTokenFromCtx(c)
	userID := c.Param("userID")
	questionnaireID := c.Param("questionnaireID")

	if !canAccessUserData(claims, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	answered, err := h.surveyDBConn.HasSessionForUserAndQuestionnaire(userID, questionnaireID)
	if err != nil {
		slog.Error("failed to check answered questionnaire", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error checking questionnaire"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answered": answered})
}
