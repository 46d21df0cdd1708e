package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Gemini    Gemini
	Placement Placement
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

// Gemini holds everything the AI grading adapter needs. Cost rates are USD
// per one million tokens; input and output are billed at different rates.
type Gemini struct {
	ApiKey               string
	Model                string
	Temperature          float64
	MaxOutputTokens      int
	TimeoutSeconds       int
	InputCostPerMillion  float64
	OutputCostPerMillion float64
}

// LevelThreshold maps a minimum composite percentage to a proficiency label.
type LevelThreshold struct {
	MinPercentage float64 `mapstructure:"min_percentage"`
	Label         string  `mapstructure:"label"`
}

type Placement struct {
	DefaultTimeLimitMinutes int
	Levels                  []LevelThreshold
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_TEMPERATURE", 0.2)
	viper.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 2048)
	viper.SetDefault("GEMINI_TIMEOUT_SECONDS", 45)
	viper.SetDefault("GEMINI_INPUT_COST_PER_MILLION", 0.075)
	viper.SetDefault("GEMINI_OUTPUT_COST_PER_MILLION", 0.30)
	viper.SetDefault("PLACEMENT_TIME_LIMIT_MINUTES", 60)

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

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")
	config.Gemini.Temperature = viper.GetFloat64("GEMINI_TEMPERATURE")
	config.Gemini.MaxOutputTokens = viper.GetInt("GEMINI_MAX_OUTPUT_TOKENS")
	config.Gemini.TimeoutSeconds = viper.GetInt("GEMINI_TIMEOUT_SECONDS")
	config.Gemini.InputCostPerMillion = viper.GetFloat64("GEMINI_INPUT_COST_PER_MILLION")
	config.Gemini.OutputCostPerMillion = viper.GetFloat64("GEMINI_OUTPUT_COST_PER_MILLION")

	config.Placement.DefaultTimeLimitMinutes = viper.GetInt("PLACEMENT_TIME_LIMIT_MINUTES")
	if err := viper.UnmarshalKey("placement_levels", &config.Placement.Levels); err != nil {
		log.Warn().Err(err).Msg("Could not parse placement_levels, using defaults")
	}
	if len(config.Placement.Levels) == 0 {
		config.Placement.Levels = DefaultLevels()
	}

	log.Info().Str("port", config.Server.Port).Str("gemini_model", config.Gemini.Model).Msg("Config loaded")
	return &config, nil
}

// DefaultLevels is the placement ladder used when no override is configured.
// Ordered by ascending MinPercentage; LevelService relies on that ordering.
func DefaultLevels() []LevelThreshold {
	return []LevelThreshold{
		{MinPercentage: 0, Label: "not-tested"},
		{MinPercentage: 20, Label: "elementary"},
		{MinPercentage: 40, Label: "pre-intermediate"},
		{MinPercentage: 60, Label: "intermediate"},
		{MinPercentage: 80, Label: "upper-intermediate"},
	}
}
