package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/vivamais/vivamais-backend/pkg/user-management/types"
)

func (dbService *SurveyDBService) CreateIndexesForUsersCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionUsers()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *SurveyDBService) CreateUser(user userTypes.User) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	ret, err := dbService.collectionUsers().InsertOne(ctx, user)
	if err != nil {
		return "", err
	}
	id, ok := ret.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return id.Hex(), nil
}

func (dbService *SurveyDBService) GetUserByID(userID string) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return user, err
	}

	filter := bson.M{"_id": _id}
	err = dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *SurveyDBService) GetUserByUsername(username string) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"username": username}
	err = dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *SurveyDBService) GetUserByEmail(email string) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"email": email}
	err = dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *SurveyDBService) GetUsers() (users []userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionUsers().Find(ctx, bson.M{})
	if err != nil {
		return users, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &users)
	return users, err
}

func (dbService *SurveyDBService) DeleteUser(userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionUsers().DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return errors.New("user not found")
	}
	return nil
}

func (dbService *SurveyDBService) CountUsers() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionUsers().CountDocuments(ctx, bson.M{})
}
