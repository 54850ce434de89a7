package jwthandling

import (
	"testing"
	"time"
)

func TestSurveyUserToken(t *testing.T) {
	secret := "test-sign-key"

	t.Run("generate and validate", func(t *testing.T) {
		token, err := GenerateNewSurveyUserToken(time.Minute, "u1", "admin", "admin", secret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, valid, err := ValidateSurveyUserToken(token, secret)
		if err != nil || !valid {
			t.Fatalf("token should be valid, err: %v", err)
		}
		if claims.ID != "u1" || claims.Username != "admin" || claims.Role != "admin" {
			t.Errorf("unexpected claims: %+v", claims)
		}
		if !claims.IsAdmin() {
			t.Error("should be admin")
		}
	})

	t.Run("with wrong key", func(t *testing.T) {
		token, err := GenerateNewSurveyUserToken(time.Minute, "u1", "someone", "user", secret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, valid, err := ValidateSurveyUserToken(token, "other-key")
		if err == nil || valid {
			t.Error("token should not validate with a different key")
		}
	})

	t.Run("with expired token", func(t *testing.T) {
		token, err := GenerateNewSurveyUserToken(-time.Minute, "u1", "someone", "user", secret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, valid, err := ValidateSurveyUserToken(token, secret)
		if err == nil || valid {
			t.Error("expired token should not validate")
		}
	})

	t.Run("non admin role", func(t *testing.T) {
		token, err := GenerateNewSurveyUserToken(time.Minute, "u2", "someone", "user", secret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, valid, err := ValidateSurveyUserToken(token, secret)
		if err != nil || !valid {
			t.Fatalf("token should be valid, err: %v", err)
		}
		if claims.IsAdmin() {
			t.Error("should not be admin")
		}
	})
}
