package appconfig

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Ruleset     string  `env:"POKERGYM_RULESET" env-default:"limit_holdem"`
	RulesetFile string  `env:"POKERGYM_RULESET_FILE"`
	PostgresDSN string  `env:"POKERGYM_POSTGRES_DSN"`
	Workers     int     `env:"POKERGYM_WORKERS" env-default:"8"`
	Hands       int64   `env:"POKERGYM_HANDS" env-default:"10000"`
	Seed        int64   `env:"POKERGYM_SEED" env-default:"42"`
	BufferHands int     `env:"POKERGYM_BUFFER_HANDS" env-default:"100000"`
	PruneRatio  float32 `env:"POKERGYM_PRUNE_RATIO" env-default:"0.05"`
	Debug       bool    `env:"POKERGYM_DEBUG" env-default:"false"`
}

// Load environment variables to AppConfig instance. A .env file in the
// working directory is applied first when present.
func LoadAppConfig() (*AppConfig, error) {
	_ = godotenv.Load()
	cfg := &AppConfig{}
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
