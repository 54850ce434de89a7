package pwhash

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces an argon2id encoded hash", func(t *testing.T) {
		hash, err := HashPassword("superSecret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(hash, "$argon2id$") {
			t.Errorf("unexpected hash format: %s", hash)
		}
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h1, err := HashPassword("superSecret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		h2, err := HashPassword("superSecret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h1 == h2 {
			t.Error("hashes should differ due to random salt")
		}
	})
}

func TestComparePasswordWithHash(t *testing.T) {
	hash, err := HashPassword("superSecret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("with correct password", func(t *testing.T) {
		match, err := ComparePasswordWithHash(hash, "superSecret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !match {
			t.Error("should match")
		}
	})

	t.Run("with wrong password", func(t *testing.T) {
		match, err := ComparePasswordWithHash(hash, "wrongPassword")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if match {
			t.Error("should not match")
		}
	})

	t.Run("with malformed hash", func(t *testing.T) {
		_, err := ComparePasswordWithHash("not-a-hash", "superSecret123")
		if err == nil {
			t.Error("should return an error")
		}
	})
}
