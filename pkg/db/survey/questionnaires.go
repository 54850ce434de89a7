package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

var ErrQuestionnaireNotFound = errors.New("questionnaire not found")

// questionnaireFetchErr keeps store failures distinguishable from a missing
// document: only a no-documents result maps to the not-found sentinel.
func questionnaireFetchErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrQuestionnaireNotFound
	}
	return err
}

// Active means is_active is not explicitly false, documents created before
// the field existed count as active.
func activeQuestionnairesFilter() bson.M {
	return bson.M{"is_active": bson.M{"$ne": false}}
}

func (dbService *SurveyDBService) CreateQuestionnaire(questionnaire surveyTypes.Questionnaire) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	questionnaire.CreatedAt = time.Now()
	questionnaire.UpdatedAt = questionnaire.CreatedAt

	ret, err := dbService.collectionQuestionnaires().InsertOne(ctx, questionnaire)
	if err != nil {
		return "", err
	}
	id, ok := ret.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return id.Hex(), nil
}

func (dbService *SurveyDBService) GetQuestionnaireByID(questionnaireID string) (questionnaire surveyTypes.Questionnaire, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionnaireID)
	if err != nil {
		return questionnaire, ErrQuestionnaireNotFound
	}

	err = dbService.collectionQuestionnaires().FindOne(ctx, bson.M{"_id": _id}).Decode(&questionnaire)
	if err != nil {
		return questionnaire, questionnaireFetchErr(err)
	}
	return questionnaire, nil
}

// GetActiveQuestionnaires returns the active questionnaires, newest first.
func (dbService *SurveyDBService) GetActiveQuestionnaires() (questionnaires []surveyTypes.Questionnaire, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := dbService.collectionQuestionnaires().Find(ctx, activeQuestionnairesFilter(), opts)
	if err != nil {
		return questionnaires, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questionnaires)
	return questionnaires, err
}

func (dbService *SurveyDBService) GetAllQuestionnaires() (questionnaires []surveyTypes.Questionnaire, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionQuestionnaires().Find(ctx, bson.M{})
	if err != nil {
		return questionnaires, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questionnaires)
	return questionnaires, err
}

func (dbService *SurveyDBService) UpdateQuestionnaireInfos(questionnaireID string, title string, description string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionnaireID)
	if err != nil {
		return ErrQuestionnaireNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"updated_at":  time.Now(),
	}}
	res, err := dbService.collectionQuestionnaires().UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return ErrQuestionnaireNotFound
	}
	return nil
}

// MarkQuestionnaireDeleted soft-deletes by clearing the active flag.
func (dbService *SurveyDBService) MarkQuestionnaireDeleted(questionnaireID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionnaireID)
	if err != nil {
		return ErrQuestionnaireNotFound
	}

	update := bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now(),
	}}
	res, err := dbService.collectionQuestionnaires().UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return ErrQuestionnaireNotFound
	}
	return nil
}

// ReplaceQuestions overwrites the embedded question array. This is a plain
// read-modify-write without a version check, concurrent editors on the same
// questionnaire can overwrite each other (last writer wins).
func (dbService *SurveyDBService) ReplaceQuestions(questionnaireID string, questions []surveyTypes.Question) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionnaireID)
	if err != nil {
		return ErrQuestionnaireNotFound
	}

	update := bson.M{"$set": bson.M{
		"questions":  questions,
		"updated_at": time.Now(),
	}}
	res, err := dbService.collectionQuestionnaires().UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return ErrQuestionnaireNotFound
	}
	return nil
}

func (dbService *SurveyDBService) CountActiveQuestionnaires() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionQuestionnaires().CountDocuments(ctx, activeQuestionnairesFilter())
}

func (dbService *SurveyDBService) CountQuestionnaires() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionQuestionnaires().CountDocuments(ctx, bson.M{})
}
