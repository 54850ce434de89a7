package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response is one answer to one question. Value is free-form, its
// interpretation depends on the parent question's type.
type Response struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionID   string             `bson:"question_id" json:"question_id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	Value        string             `bson:"value" json:"value"`
	NumericValue *float64           `bson:"numeric_value,omitempty" json:"numeric_value,omitempty"`
	SessionID    string             `bson:"session_id,omitempty" json:"session_id,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// ResponseSession represents one respondent's single attempt at one
// questionnaire. Its existence is what the "already answered" check probes.
type ResponseSession struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionnaireID string             `bson:"questionnaire_id" json:"questionnaire_id"`
	RespondentName  string             `bson:"respondent_name" json:"respondent_name"`
	RespondentAge   *int               `bson:"respondent_age,omitempty" json:"respondent_age,omitempty"`
	UserID          string             `bson:"user_id" json:"user_id"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt     *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
