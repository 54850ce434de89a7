package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/vivamais/vivamais-backend/pkg/jwt-handling"
)

func IsAdminUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			slog.Warn("IsAdminUser: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
			return
		}
		parsedToken := tokenValue.(*jwthandling.SurveyUserClaims)

		if !parsedToken.IsAdmin() {
			slog.Warn("IsAdminUser: non admin user tried to access admin endpoint", slog.String("userID", parsedToken.ID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized access to admin endpoint"})
			return
		}
	}
}
