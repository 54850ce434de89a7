package apihandlers

import (
	"testing"

	jwthandling "github.com/vivamais/vivamais-backend/pkg/jwt-handling"
	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
	userTypes "github.com/vivamais/vivamais-backend/pkg/user-management/types"
)

func TestValueToStr(t *testing.T) {
	t.Run("string value is kept", func(t *testing.T) {
		if got := valueToStr("sim"); got != "sim" {
			t.Errorf("unexpected value: %s", got)
		}
	})

	t.Run("number becomes its JSON form", func(t *testing.T) {
		if got := valueToStr(float64(4)); got != "4" {
			t.Errorf("unexpected value: %s", got)
		}
	})

	t.Run("object becomes its JSON form", func(t *testing.T) {
		if got := valueToStr(map[string]interface{}{"selected": "b"}); got != `{"selected":"b"}` {
			t.Errorf("unexpected value: %s", got)
		}
	})

	t.Run("nil becomes empty string", func(t *testing.T) {
		if got := valueToStr(nil); got != "" {
			t.Errorf("unexpected value: %s", got)
		}
	})
}

func TestNextQuestionID(t *testing.T) {
	t.Run("empty list starts at q1", func(t *testing.T) {
		if got := nextQuestionID(nil); got != "q1" {
			t.Errorf("unexpected id: %s", got)
		}
	})

	t.Run("continues after highest id", func(t *testing.T) {
		questions := []surveyTypes.Question{
			{ID: "q1"}, {ID: "q3"},
		}
		if got := nextQuestionID(questions); got != "q4" {
			t.Errorf("unexpected id: %s", got)
		}
	})

	t.Run("ignores ids outside the scheme", func(t *testing.T) {
		questions := []surveyTypes.Question{
			{ID: "custom-id"}, {ID: "q2"},
		}
		if got := nextQuestionID(questions); got != "q3" {
			t.Errorf("unexpected id: %s", got)
		}
	})
}

func TestQuestionFromReq(t *testing.T) {
	t.Run("defaults for order, id and is_required", func(t *testing.T) {
		question, err := questionFromReq(questionReq{
			Text: "How do you rate the service?",
			Type: surveyTypes.QUESTION_TYPE_RATING,
		}, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if question.ID != "q3" {
			t.Errorf("unexpected id: %s", question.ID)
		}
		if question.Order != 3 {
			t.Errorf("unexpected order: %d", question.Order)
		}
		if !question.IsRequired {
			t.Error("expected question to default to required")
		}
	})

	t.Run("explicit is_required false is preserved", func(t *testing.T) {
		isRequired := false
		question, err := questionFromReq(questionReq{
			Text:       "Any comments?",
			Type:       surveyTypes.QUESTION_TYPE_TEXT,
			IsRequired: &isRequired,
		}, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if question.IsRequired {
			t.Error("expected question to be optional")
		}
	})

	t.Run("missing text is rejected", func(t *testing.T) {
		_, err := questionFromReq(questionReq{
			Type: surveyTypes.QUESTION_TYPE_TEXT,
		}, 0)
		if err == nil {
			t.Error("expected error for missing text")
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := questionFromReq(questionReq{
			Text: "How many stars?",
			Type: "stars",
		}, 0)
		if err == nil {
			t.Error("expected error for unknown type")
		}
	})
}

func TestSessionOwnerID(t *testing.T) {
	admin := &jwthandling.SurveyUserClaims{ID: "admin-1", Role: userTypes.USER_ROLE_ADMIN}
	user := &jwthandling.SurveyUserClaims{ID: "user-1", Role: userTypes.USER_ROLE_USER}

	t.Run("defaults to the calling user", func(t *testing.T) {
		owner, ok := sessionOwnerID(user, "")
		if !ok || owner != "user-1" {
			t.Errorf("unexpected owner: %s (ok=%v)", owner, ok)
		}
	})

	t.Run("explicit own id is allowed", func(t *testing.T) {
		owner, ok := sessionOwnerID(user, "user-1")
		if !ok || owner != "user-1" {
			t.Errorf("unexpected owner: %s (ok=%v)", owner, ok)
		}
	})

	t.Run("admin can start a session for another user", func(t *testing.T) {
		owner, ok := sessionOwnerID(admin, "user-2")
		if !ok || owner != "user-2" {
			t.Errorf("unexpected owner: %s (ok=%v)", owner, ok)
		}
	})

	t.Run("regular user cannot act for another user", func(t *testing.T) {
		if _, ok := sessionOwnerID(user, "user-2"); ok {
			t.Error("expected the request to be denied")
		}
	})

	t.Run("missing claims denied", func(t *testing.T) {
		if _, ok := sessionOwnerID(nil, ""); ok {
			t.Error("expected the request to be denied")
		}
	})
}

func TestCanAccessUserData(t *testing.T) {
	admin := &jwthandling.SurveyUserClaims{ID: "admin-1", Role: userTypes.USER_ROLE_ADMIN}
	user := &jwthandling.SurveyUserClaims{ID: "user-1", Role: userTypes.USER_ROLE_USER}

	if !canAccessUserData(admin, "user-1") {
		t.Error("admin should access any user's data")
	}
	if !canAccessUserData(user, "user-1") {
		t.Error("user should access their own data")
	}
	if canAccessUserData(user, "user-2") {
		t.Error("user should not access other users' data")
	}
	if canAccessUserData(nil, "user-1") {
		t.Error("missing claims should not grant access")
	}
}
