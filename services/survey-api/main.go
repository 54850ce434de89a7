package main

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vivamais/vivamais-backend/pkg/surveys/insights"
	"github.com/vivamais/vivamais-backend/services/survey-api/apihandlers"
)

var conf SurveyApiConfig

func main() {
	runBootstrapTasks()

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.UserManagementConfig.SurveyUserJWTConfig.SignKey,
		conf.UserManagementConfig.SurveyUserJWTConfig.ExpiresIn,
		surveyDBService,
		insights.NewHeuristicAnalyzer(conf.InsightsConfig.NegativeKeywords),
		conf.InsightsConfig.SampleSize,
	)
	v1APIHandlers.AddAuthAPI(v1Root)
	v1APIHandlers.AddUserManagementAPI(v1Root)
	v1APIHandlers.AddQuestionnairesAPI(v1Root)
	v1APIHandlers.AddResponsesAPI(v1Root)
	v1APIHandlers.AddStatisticsAPI(v1Root)
	v1APIHandlers.AddInsightsAPI(v1Root)

	// Start the server
	slog.Info("Starting Survey API", slog.String("port", conf.GinConfig.Port))
	err := router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited Survey API", slog.String("error", err.Error()))
		return
	}
}
