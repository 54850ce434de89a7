package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/vivamais/vivamais-backend/pkg/db"
	"github.com/vivamais/vivamais-backend/pkg/surveys/insights"
	"github.com/vivamais/vivamais-backend/pkg/user-management/pwhash"
	"github.com/vivamais/vivamais-backend/pkg/utils"

	surveyDB "github.com/vivamais/vivamais-backend/pkg/db/survey"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_DB_USERNAME       = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD       = "SURVEY_DB_PASSWORD"
	ENV_SURVEY_USER_JWT_SIGN_KEY = "SURVEY_USER_JWT_SIGN_KEY"
	ENV_ADMIN_BOOTSTRAP_PASSWORD = "ADMIN_BOOTSTRAP_PASSWORD"
)

type SurveyApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserManagementConfig struct {
		PWHashing struct {
			Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
			Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
			Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
		SurveyUserJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"survey_user_jwt_config" yaml:"survey_user_jwt_config"`
	} `json:"user_management_config" yaml:"user_management_config"`

	// DB configs
	DBConfigs struct {
		SurveyDB db.DBConfigYaml `json:"survey_db" yaml:"survey_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Insights module config
	InsightsConfig struct {
		SampleSize       int64    `json:"sample_size" yaml:"sample_size"`
		NegativeKeywords []string `json:"negative_keywords" yaml:"negative_keywords"`
	} `json:"insights_config" yaml:"insights_config"`

	// Initial data created on an empty database
	BootstrapConfig struct {
		CreateAdminUser           bool   `json:"create_admin_user" yaml:"create_admin_user"`
		AdminUsername             string `json:"admin_username" yaml:"admin_username"`
		AdminEmail                string `json:"admin_email" yaml:"admin_email"`
		AdminPassword             string `json:"admin_password" yaml:"admin_password"`
		SeedExampleQuestionnaires bool   `json:"seed_example_questionnaires" yaml:"seed_example_questionnaires"`
	} `json:"bootstrap_config" yaml:"bootstrap_config"`
}

var (
	surveyDBService *surveyDB.SurveyDBService
)

func init() {
	// Load .env file if present, before reading any env variables
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded")
	}

	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	checkJWTConfig()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// init argon2
	pwhash.InitArgonParams(
		conf.UserManagementConfig.PWHashing.Argon2Memory,
		conf.UserManagementConfig.PWHashing.Argon2Iterations,
		conf.UserManagementConfig.PWHashing.Argon2Parallelism,
	)

	if conf.InsightsConfig.SampleSize < 1 {
		conf.InsightsConfig.SampleSize = insights.DEFAULT_SAMPLE_SIZE
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_SURVEY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.SurveyDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_SURVEY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.SurveyDB.Password = dbPassword
	}

	if surveyUserJwtSignKey := os.Getenv(ENV_SURVEY_USER_JWT_SIGN_KEY); surveyUserJwtSignKey != "" {
		conf.UserManagementConfig.SurveyUserJWTConfig.SignKey = surveyUserJwtSignKey
	}

	if adminPassword := os.Getenv(ENV_ADMIN_BOOTSTRAP_PASSWORD); adminPassword != "" {
		conf.BootstrapConfig.AdminPassword = adminPassword
	}
}

func checkJWTConfig() {
	if conf.UserManagementConfig.SurveyUserJWTConfig.SignKey == "" {
		slog.Error("JWT sign key not set - configure SURVEY_USER_JWT_SIGN_KEY env variable.")
		panic("JWT sign key not set")
	}
	if conf.UserManagementConfig.SurveyUserJWTConfig.ExpiresIn == 0 {
		conf.UserManagementConfig.SurveyUserJWTConfig.ExpiresIn = 24 * time.Hour
	}
}

func initDBs() {
	var err error
	surveyDBService, err = surveyDB.NewSurveyDBService(db.DBConfigFromYamlObj(conf.DBConfigs.SurveyDB))
	if err != nil {
		slog.Error("Error connecting to Survey DB", slog.String("error", err.Error()))
		panic(err)
	}
}
