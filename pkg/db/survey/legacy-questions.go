package survey

import (
	"go.mongodb.org/mongo-driver/bson"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

// The legacy questions collection holds the pre-migration normalized shape.
// Only the db-migration job reads it, the API serves embedded questions.

func (dbService *SurveyDBService) GetLegacyQuestionsForQuestionnaire(questionnaireID string) (questions []surveyTypes.LegacyQuestion, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionLegacyQuestions().Find(ctx, bson.M{"questionnaire_id": questionnaireID})
	if err != nil {
		return questions, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questions)
	return questions, err
}

func (dbService *SurveyDBService) CountLegacyQuestions() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionLegacyQuestions().CountDocuments(ctx, bson.M{})
}
