package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server        Server
	Database      Database
	GeminiApiKey  string
	StoreBackend  string // "database" or "file"
	QuestionStore string // directory for the file-backed question store
	UploadDir     string
	QuestionCount int
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("STORE_BACKEND", "database")
	viper.SetDefault("QUESTION_STORE_DIR", "data/questions")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("QUESTION_COUNT", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.StoreBackend = viper.GetString("STORE_BACKEND")
	config.QuestionStore = viper.GetString("QUESTION_STORE_DIR")
	config.UploadDir = viper.GetString("UPLOAD_DIR")
	config.QuestionCount = viper.GetInt("QUESTION_COUNT")

	log.Info().Str("port", config.Server.Port).Str("storeBackend", config.StoreBackend).Msg("Config loaded")
	return &config, nil
}
