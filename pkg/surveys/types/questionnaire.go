package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// question types
const (
	QUESTION_TYPE_RATING          = "rating"
	QUESTION_TYPE_YES_NO          = "yes_no"
	QUESTION_TYPE_MULTIPLE_CHOICE = "multiple_choice"
	QUESTION_TYPE_TEXT            = "text"
)

// Question is embedded inside its questionnaire document. The id is only
// unique within the owning questionnaire.
type Question struct {
	ID         string   `bson:"id" json:"id"`
	Text       string   `bson:"text" json:"text"`
	Type       string   `bson:"type" json:"type"`
	Options    []string `bson:"options,omitempty" json:"options,omitempty"`
	Order      int      `bson:"order" json:"order"`
	IsRequired bool     `bson:"is_required" json:"is_required"`
}

type Questionnaire struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CreatedBy   string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	Questions   []Question         `bson:"questions" json:"questions"`
}

// LegacyQuestion is the pre-migration shape, where questions lived in their
// own collection and referenced the questionnaire by id. Only the migration
// job reads this collection.
type LegacyQuestion struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionnaireID string             `bson:"questionnaire_id" json:"questionnaire_id"`
	Text            string             `bson:"text" json:"text"`
	Type            string             `bson:"type" json:"type"`
	Options         []string           `bson:"options,omitempty" json:"options,omitempty"`
	Order           int                `bson:"order" json:"order"`
	OrderIndex      int                `bson:"order_index,omitempty" json:"order_index,omitempty"`
	IsRequired      *bool              `bson:"is_required,omitempty" json:"is_required,omitempty"`
}
