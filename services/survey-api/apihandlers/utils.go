package apihandlers

import (
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/vivamais/vivamais-backend/pkg/jwt-handling"
)

func (h *HttpEndpoints) validatedTokenFromCtx(c *gin.Context) *jwthandling.SurveyUserClaims {
	token, ok := c.Get("validatedToken")
	if !ok {
		return nil
	}
	claims, ok := token.(*jwthandling.SurveyUserClaims)
	if !ok {
		slog.Error("unexpected token claims type in request context")
		return nil
	}
	return claims
}

// canAccessUserData allows admins to access any user's data and
// regular users to access only their own.
func canAccessUserData(claims *jwthandling.SurveyUserClaims, userID string) bool {
	if claims == nil {
		return false
	}
	return claims.IsAdmin() || claims.ID == userID
}

// sessionOwnerID resolves which user a new response session belongs to: the
// explicitly requested user when the caller may act for them, otherwise the
// caller themselves.
func sessionOwnerID(claims *jwthandling.SurveyUserClaims, requestedUserID string) (string, bool) {
	if requestedUserID == "" {
		if claims == nil {
			return "", false
		}
		return claims.ID, true
	}
	if !canAccessUserData(claims, requestedUserID) {
		return "", false
	}
	return requestedUserID, true
}

// valueToStr normalizes a free-form answer value to its string form.
// Non-string JSON values are stored as their JSON encoding.
func valueToStr(value interface{}) string {
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	b, err := json.Marshal(value)
	if err != nil {
		slog.Debug("could not encode answer value", slog.String("error", err.Error()))
		return ""
	}
	return string(b)
}
