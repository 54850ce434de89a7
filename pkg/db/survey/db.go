package survey

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vivamais/vivamais-backend/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_USERS             = "users"
	COLLECTION_NAME_QUESTIONNAIRES    = "questionnaires"
	COLLECTION_NAME_LEGACY_QUESTIONS  = "questions"
	COLLECTION_NAME_RESPONSES         = "responses"
	COLLECTION_NAME_RESPONSE_SESSIONS = "response_sessions"
)

type SurveyDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
}

func NewSurveyDBService(configs db.DBConfig) (*SurveyDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	surveyDBSc := &SurveyDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
	}

	if err := surveyDBSc.ensureIndexes(); err != nil {
		slog.Error("Error ensuring indexes for survey DB", slog.String("error", err.Error()))
	}

	return surveyDBSc, nil
}

func (dbService *SurveyDBService) getDBName() string {
	return dbService.DBNamePrefix + "vivamaisDB"
}

func (dbService *SurveyDBService) collectionUsers() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_USERS)
}

func (dbService *SurveyDBService) collectionQuestionnaires() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_QUESTIONNAIRES)
}

func (dbService *SurveyDBService) collectionLegacyQuestions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_LEGACY_QUESTIONS)
}

func (dbService *SurveyDBService) collectionResponses() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_RESPONSES)
}

func (dbService *SurveyDBService) collectionResponseSessions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_RESPONSE_SESSIONS)
}

func (dbService *SurveyDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *SurveyDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for survey DB")

	if err := dbService.CreateIndexesForUsersCollection(); err != nil {
		slog.Error("Error creating indexes for users", slog.String("error", err.Error()))
	}
	if err := dbService.CreateIndexesForResponsesCollection(); err != nil {
		slog.Error("Error creating indexes for responses", slog.String("error", err.Error()))
	}
	if err := dbService.CreateIndexesForResponseSessionsCollection(); err != nil {
		slog.Error("Error creating indexes for response sessions", slog.String("error", err.Error()))
	}
	return nil
}
