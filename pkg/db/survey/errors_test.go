package survey

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestQuestionnaireFetchErr(t *testing.T) {
	t.Run("no documents maps to not found", func(t *testing.T) {
		err := questionnaireFetchErr(mongo.ErrNoDocuments)
		if !errors.Is(err, ErrQuestionnaireNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrapped no documents maps to not found", func(t *testing.T) {
		err := questionnaireFetchErr(fmt.Errorf("decode: %w", mongo.ErrNoDocuments))
		if !errors.Is(err, ErrQuestionnaireNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("store failures pass through", func(t *testing.T) {
		storeErr := errors.New("connection reset by peer")
		err := questionnaireFetchErr(storeErr)
		if errors.Is(err, ErrQuestionnaireNotFound) {
			t.Error("store failure must not look like a missing questionnaire")
		}
		if !errors.Is(err, storeErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMalformedIDsMapToNotFound(t *testing.T) {
	// malformed ids are rejected before any store round-trip
	dbService := &SurveyDBService{}

	t.Run("questionnaire lookup", func(t *testing.T) {
		_, err := dbService.GetQuestionnaireByID("not-a-hex-id")
		if !errors.Is(err, ErrQuestionnaireNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("session completion", func(t *testing.T) {
		err := dbService.MarkSessionCompleted("not-a-hex-id")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
