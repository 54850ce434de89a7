package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vivamais/vivamais-backend/pkg/surveys/stats"
	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func (dbService *SurveyDBService) CreateIndexesForResponsesCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionResponses()
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "question_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *SurveyDBService) CreateResponse(response surveyTypes.Response) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	response.CreatedAt = time.Now()

	ret, err := dbService.collectionResponses().InsertOne(ctx, response)
	if err != nil {
		return "", err
	}
	id, ok := ret.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return id.Hex(), nil
}

func (dbService *SurveyDBService) GetResponsesByQuestionID(questionID string) (responses []surveyTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionResponses().Find(ctx, bson.M{"question_id": questionID})
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

func (dbService *SurveyDBService) CountResponsesByQuestionID(questionID string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses().CountDocuments(ctx, bson.M{"question_id": questionID})
}

// GetResponsesByQuestionIDs resolves answers for a whole question id set.
// The id list is partitioned into chunks because of the in-clause value
// limit, one query per chunk, results concatenated. No ordering is
// guaranteed across chunks, callers re-sort when order matters.
func (dbService *SurveyDBService) GetResponsesByQuestionIDs(questionIDs []string) (responses []surveyTypes.Response, err error) {
	for _, chunk := range stats.ChunkIDs(questionIDs, stats.MAX_IN_CLAUSE_VALUES) {
		ctx, cancel := dbService.getContext()
		cursor, err := dbService.collectionResponses().Find(ctx, bson.M{"question_id": bson.M{"$in": chunk}})
		if err != nil {
			cancel()
			return responses, err
		}

		var chunkResponses []surveyTypes.Response
		err = cursor.All(ctx, &chunkResponses)
		cursor.Close(ctx)
		cancel()
		if err != nil {
			return responses, err
		}
		responses = append(responses, chunkResponses...)
	}
	return responses, nil
}

// CountResponsesByQuestionIDs is the counting variant of the chunked lookup.
func (dbService *SurveyDBService) CountResponsesByQuestionIDs(questionIDs []string) (int64, error) {
	var total int64
	for _, chunk := range stats.ChunkIDs(questionIDs, stats.MAX_IN_CLAUSE_VALUES) {
		ctx, cancel := dbService.getContext()
		count, err := dbService.collectionResponses().CountDocuments(ctx, bson.M{"question_id": bson.M{"$in": chunk}})
		cancel()
		if err != nil {
			return total, err
		}
		total += count
	}
	return total, nil
}

func (dbService *SurveyDBService) GetResponsesByUserID(userID string) (responses []surveyTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := dbService.collectionResponses().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

// GetLatestResponses returns a bounded sample for analysis, newest first.
func (dbService *SurveyDBService) GetLatestResponses(limit int64) (responses []surveyTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := dbService.collectionResponses().Find(ctx, bson.M{}, opts)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

func (dbService *SurveyDBService) CountResponses() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses().CountDocuments(ctx, bson.M{})
}
