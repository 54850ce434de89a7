package utils

import (
	"testing"
)

func TestSanitizeEmail(t *testing.T) {
	t.Run("with different formats", func(t *testing.T) {
		email := SanitizeEmail("\nAdmin@VivaMais.COM")
		if email != "admin@vivamais.com" {
			t.Errorf("unexpected email: %s", email)
		}

		email = SanitizeEmail("  \n admin@vivamais.com \n\r")
		if email != "admin@vivamais.com" {
			t.Errorf("unexpected email: %s", email)
		}
	})
}

func TestCheckEmailFormat(t *testing.T) {
	t.Run("with invalid addresses", func(t *testing.T) {
		for _, email := range []string{"", "notanemail", "a@b", "a b@test.com"} {
			if CheckEmailFormat(email) {
				t.Errorf("should be false for %s", email)
			}
		}
	})

	t.Run("with valid addresses", func(t *testing.T) {
		for _, email := range []string{"admin@vivamais.com", "user.name+tag@example.co"} {
			if !CheckEmailFormat(email) {
				t.Errorf("should be true for %s", email)
			}
		}
	})
}

func TestCheckPasswordFormat(t *testing.T) {
	t.Run("with a too short password", func(t *testing.T) {
		if CheckPasswordFormat("12345") {
			t.Error("should be false")
		}
	})
	t.Run("with minimal length", func(t *testing.T) {
		if !CheckPasswordFormat("123456") {
			t.Error("should be true")
		}
	})
	t.Run("with a too long password", func(t *testing.T) {
		long := make([]byte, PASSWORD_MAX_LEN+1)
		for i := range long {
			long[i] = 'a'
		}
		if CheckPasswordFormat(string(long)) {
			t.Error("should be false")
		}
	})
}
