package utils

import "testing"

func TestContainsString(t *testing.T) {
	t.Run("existing item", func(t *testing.T) {
		if !ContainsString([]string{"a", "b", "c"}, "b") {
			t.Error("should be true")
		}
	})
	t.Run("missing item", func(t *testing.T) {
		if ContainsString([]string{"a", "b", "c"}, "d") {
			t.Error("should be false")
		}
	})
	t.Run("empty slice", func(t *testing.T) {
		if ContainsString([]string{}, "a") {
			t.Error("should be false")
		}
	})
}
