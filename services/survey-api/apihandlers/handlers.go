package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	surveyDB "github.com/vivamais/vivamais-backend/pkg/db/survey"
	"github.com/vivamais/vivamais-backend/pkg/surveys/insights"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type HttpEndpoints struct {
	surveyDBConn       *surveyDB.SurveyDBService
	tokenSignKey       string
	tokenExpiresIn     time.Duration
	insightsAnalyzer   insights.Analyzer
	insightsSampleSize int64
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	surveyDBConn *surveyDB.SurveyDBService,
	insightsAnalyzer insights.Analyzer,
	insightsSampleSize int64,
) *HttpEndpoints {
	if insightsSampleSize < 1 {
		insightsSampleSize = insights.DEFAULT_SAMPLE_SIZE
	}
	return &HttpEndpoints{
		surveyDBConn:       surveyDBConn,
		tokenSignKey:       tokenSignKey,
		tokenExpiresIn:     tokenExpiresIn,
		insightsAnalyzer:   insightsAnalyzer,
		insightsSampleSize: insightsSampleSize,
	}
}
