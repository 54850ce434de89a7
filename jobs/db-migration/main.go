package main

import (
	"log/slog"
	"sort"
	"time"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func main() {
	createIndexes()

	migrationTasks()
}

func createIndexes() {
	if !conf.TaskConfigs.CreateIndexes.SurveyDB {
		return
	}

	if err := surveyDBService.CreateIndexesForUsersCollection(); err != nil {
		slog.Error("Error creating indexes for users collection", slog.String("error", err.Error()))
	}
	if err := surveyDBService.CreateIndexesForResponsesCollection(); err != nil {
		slog.Error("Error creating indexes for responses collection", slog.String("error", err.Error()))
	}
	if err := surveyDBService.CreateIndexesForResponseSessionsCollection(); err != nil {
		slog.Error("Error creating indexes for response sessions collection", slog.String("error", err.Error()))
	}
}

func migrationTasks() {
	if conf.TaskConfigs.MigrationTasks.EmbedLegacyQuestions {
		start := time.Now()
		slog.Info("Embedding legacy questions into questionnaires")
		embedLegacyQuestions()
		slog.Info("Legacy questions embedded", slog.String("duration", time.Since(start).String()))
	}
}

// embedLegacyQuestions copies each questionnaire's rows from the standalone
// questions collection into the questionnaire's embedded questions array.
// Questionnaires without legacy rows are left untouched so the task can be
// re-run after a partial failure.
func embedLegacyQuestions() {
	legacyCount, err := surveyDBService.CountLegacyQuestions()
	if err != nil {
		slog.Error("Error counting legacy questions", slog.String("error", err.Error()))
		return
	}
	if legacyCount == 0 {
		slog.Info("No legacy questions found, nothing to migrate")
		return
	}
	slog.Info("Found legacy questions", slog.Int64("count", legacyCount))

	questionnaires, err := surveyDBService.GetAllQuestionnaires()
	if err != nil {
		slog.Error("Error fetching questionnaires", slog.String("error", err.Error()))
		return
	}

	migrated := 0
	for _, questionnaire := range questionnaires {
		legacyQuestions, err := surveyDBService.GetLegacyQuestionsForQuestionnaire(questionnaire.ID.Hex())
		if err != nil {
			slog.Error("Error fetching legacy questions",
				slog.String("questionnaireID", questionnaire.ID.Hex()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if len(legacyQuestions) == 0 {
			continue
		}

		questions := make([]surveyTypes.Question, 0, len(legacyQuestions))
		for _, legacy := range legacyQuestions {
			questions = append(questions, embeddedQuestionFromLegacy(legacy))
		}
		sort.SliceStable(questions, func(i int, j int) bool {
			return questions[i].Order < questions[j].Order
		})

		if err := surveyDBService.ReplaceQuestions(questionnaire.ID.Hex(), questions); err != nil {
			slog.Error("Error saving embedded questions",
				slog.String("questionnaireID", questionnaire.ID.Hex()),
				slog.String("error", err.Error()),
			)
			continue
		}
		migrated++
		slog.Info("Questionnaire migrated",
			slog.String("questionnaireID", questionnaire.ID.Hex()),
			slog.Int("questions", len(questions)),
		)
	}
	slog.Info("Migration finished", slog.Int("questionnaires", migrated))
}

func embeddedQuestionFromLegacy(legacy surveyTypes.LegacyQuestion) surveyTypes.Question {
	question := surveyTypes.Question{
		ID:         legacy.ID.Hex(),
		Text:       legacy.Text,
		Type:       legacy.Type,
		Options:    legacy.Options,
		Order:      legacy.Order,
		IsRequired: true,
	}
	if question.Order == 0 {
		question.Order = legacy.OrderIndex
	}
	if legacy.IsRequired != nil {
		question.IsRequired = *legacy.IsRequired
	}
	return question
}
