package main

import (
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vivamais/vivamais-backend/pkg/user-management/pwhash"
	userTypes "github.com/vivamais/vivamais-backend/pkg/user-management/types"

	surveyTypes "github.com/vivamais/vivamais-backend/pkg/surveys/types"
)

func runBootstrapTasks() {
	if conf.BootstrapConfig.CreateAdminUser {
		bootstrapAdminUser()
	}
	if conf.BootstrapConfig.SeedExampleQuestionnaires {
		seedExampleQuestionnaires()
	}
}

// bootstrapAdminUser creates the configured admin account if it does not
// exist yet, so a fresh deployment can be logged into.
func bootstrapAdminUser() {
	username := conf.BootstrapConfig.AdminUsername
	if username == "" || conf.BootstrapConfig.AdminPassword == "" {
		slog.Warn("admin bootstrap enabled but username or password missing, skipping")
		return
	}

	_, err := surveyDBService.GetUserByUsername(username)
	if err == nil {
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("failed to check for admin user", slog.String("error", err.Error()))
		return
	}

	passwordHash, err := pwhash.HashPassword(conf.BootstrapConfig.AdminPassword)
	if err != nil {
		slog.Error("failed to hash admin password", slog.String("error", err.Error()))
		return
	}

	id, err := surveyDBService.CreateUser(userTypes.User{
		Username:     username,
		FullName:     "Administrator",
		Email:        conf.BootstrapConfig.AdminEmail,
		PasswordHash: passwordHash,
		Role:         userTypes.USER_ROLE_ADMIN,
		IsActive:     true,
	})
	if err != nil {
		slog.Error("failed to create admin user", slog.String("error", err.Error()))
		return
	}
	slog.Info("admin user created", slog.String("userID", id), slog.String("username", username))
}

// seedExampleQuestionnaires inserts starter questionnaires on an empty
// database so the frontend has something to render right away.
func seedExampleQuestionnaires() {
	count, err := surveyDBService.CountQuestionnaires()
	if err != nil {
		slog.Error("failed to count questionnaires", slog.String("error", err.Error()))
		return
	}
	if count > 0 {
		return
	}

	for _, questionnaire := range exampleQuestionnaires() {
		id, err := surveyDBService.CreateQuestionnaire(questionnaire)
		if err != nil {
			slog.Error("failed to seed questionnaire", slog.String("error", err.Error()))
			return
		}
		slog.Info("seeded questionnaire", slog.String("questionnaireID", id), slog.String("title", questionnaire.Title))
	}
}

func exampleQuestionnaires() []surveyTypes.Questionnaire {
	return []surveyTypes.Questionnaire{
		{
			Title:       "Service satisfaction",
			Description: "How satisfied are you with the services offered?",
			IsActive:    true,
			Questions: []surveyTypes.Question{
				{
					ID:         "q1",
					Text:       "How do you rate the overall quality of the service?",
					Type:       surveyTypes.QUESTION_TYPE_RATING,
					Order:      1,
					IsRequired: true,
				},
				{
					ID:         "q2",
					Text:       "Would you recommend the service to others?",
					Type:       surveyTypes.QUESTION_TYPE_YES_NO,
					Order:      2,
					IsRequired: true,
				},
				{
					ID:         "q3",
					Text:       "What could be improved?",
					Type:       surveyTypes.QUESTION_TYPE_TEXT,
					Order:      3,
					IsRequired: false,
				},
			},
		},
		{
			Title:       "Activity preferences",
			Description: "Which activities would you like to see more of?",
			IsActive:    true,
			Questions: []surveyTypes.Question{
				{
					ID:         "q1",
					Text:       "Which activity do you enjoy the most?",
					Type:       surveyTypes.QUESTION_TYPE_MULTIPLE_CHOICE,
					Options:    []string{"Physical exercise", "Arts and crafts", "Music", "Social events"},
					Order:      1,
					IsRequired: true,
				},
				{
					ID:         "q2",
					Text:       "How often do you take part in activities?",
					Type:       surveyTypes.QUESTION_TYPE_MULTIPLE_CHOICE,
					Options:    []string{"Daily", "Weekly", "Monthly", "Rarely"},
					Order:      2,
					IsRequired: true,
				},
			},
		},
	}
}
