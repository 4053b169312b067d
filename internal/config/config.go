package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string

	// Gemini Configuration
	GeminiAPIKey string
	GeminiModel  string // "gemini-2.0-flash", "gemini-2.5-pro"

	// Optional full-text prompt template override (must contain one %s for the resume text)
	PromptPath string

	// Document sources
	DownloadDir string // where fetched resumes are written
	S3Bucket    string
	S3Prefix    string
	R2AccountID string // set for Cloudflare R2; empty means plain S3
	R2AccessKey string
	R2SecretKey string

	// Fixed delay between items of a batch, to respect backend rate limits
	Throttle time.Duration
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash" // default
	}

	downloadDir := os.Getenv("DOWNLOAD_DIR")
	if downloadDir == "" {
		downloadDir = "./resumes"
	}

	throttle := 5 * time.Second
	if v := os.Getenv("THROTTLE_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Warning: invalid THROTTLE_SECONDS %q, keeping default", v)
		} else {
			throttle = time.Duration(secs) * time.Second
		}
	}

	return &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  model,
		PromptPath:   os.Getenv("PROMPT_PATH"),
		DownloadDir:  downloadDir,
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Prefix:     os.Getenv("S3_PREFIX"),
		R2AccountID:  os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKey:  os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:  os.Getenv("R2_SECRET_KEY"),
		Throttle:     throttle,
	}
}
