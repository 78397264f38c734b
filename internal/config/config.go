package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIKey   string
	OpenAIModel string
	DataDir     string
	DBPath      string
}

// Load reads configuration from the environment, with a best-effort .env
// load first. OpenAIKey may be empty; binaries that need it call
// MustOpenAIKey.
func Load() Config {
	_ = godotenv.Load()

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "descriptions.db"
	}
	return Config{
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: model,
		DataDir:     dataDir,
		DBPath:      dbPath,
	}
}

func (c Config) MustOpenAIKey() string {
	if c.OpenAIKey == "" {
		log.Fatalf("missing env OPENAI_API_KEY")
	}
	return c.OpenAIKey
}
