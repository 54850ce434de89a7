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

// One document is enough to answer an existence question.
const EXISTENCE_PROBE_LIMIT = 1

var ErrSessionNotFound = errors.New("session not found")

func (dbService *SurveyDBService) CreateIndexesForResponseSessionsCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionResponseSessions()
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "questionnaire_id", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "questionnaire_id", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *SurveyDBService) CreateResponseSession(session surveyTypes.ResponseSession) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	session.CreatedAt = time.Now()

	ret, err := dbService.collectionResponseSessions().InsertOne(ctx, session)
	if err != nil {
		return "", err
	}
	id, ok := ret.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return id.Hex(), nil
}

// HasSessionForUserAndQuestionnaire is the "already answered" probe: a
// limit-1 lookup on the (user, questionnaire) pair.
func (dbService *SurveyDBService) HasSessionForUserAndQuestionnaire(userID string, questionnaireID string) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"user_id":          userID,
		"questionnaire_id": questionnaireID,
	}
	opts := options.Count().SetLimit(EXISTENCE_PROBE_LIMIT)
	count, err := dbService.collectionResponseSessions().CountDocuments(ctx, filter, opts)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAnsweredQuestionnaireIDs lists the questionnaire ids the user already
// has a session for.
func (dbService *SurveyDBService) GetAnsweredQuestionnaireIDs(userID string) ([]string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionResponseSessions().Distinct(ctx, "questionnaire_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	questionnaireIDs := make([]string, 0, len(res))
	for _, r := range res {
		if id, ok := r.(string); ok {
			questionnaireIDs = append(questionnaireIDs, id)
		}
	}
	return questionnaireIDs, nil
}

func (dbService *SurveyDBService) MarkSessionCompleted(sessionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return ErrSessionNotFound
	}

	update := bson.M{"$set": bson.M{"completed_at": time.Now()}}
	res, err := dbService.collectionResponseSessions().UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return ErrSessionNotFound
	}
	return nil
}

func (dbService *SurveyDBService) CountResponseSessions() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponseSessions().CountDocuments(ctx, bson.M{})
}
