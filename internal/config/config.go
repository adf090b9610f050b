package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Extractor ExtractorConfig
	JobSearch JobSearchConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LLMConfig struct {
	Provider       string
	OllamaURL      string
	OllamaModel    string
	GeminiAPIKey   string
	PromptMaxChars int
}

type ExtractorConfig struct {
	PDFCoAPIKey   string
	PDFCoURL      string
	TesseractPath string
	AntiwordPath  string
}

type JobSearchConfig struct {
	Enabled       bool
	RapidAPIKey   string
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
	Region        string
	ResultCap     int
}

type StorageConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		LLM: LLMConfig{
			Provider:       getEnv("LLM_PROVIDER", "ollama"),
			OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
			OllamaModel:    getEnv("OLLAMA_MODEL", "llama3:latest"),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			PromptMaxChars: getEnvAsInt("PROMPT_MAX_CHARS", 3000),
		},
		Extractor: ExtractorConfig{
			PDFCoAPIKey:   getEnv("PDF_CO_API_KEY", ""),
			PDFCoURL:      getEnv("PDF_CO_URL", "https://api.pdf.co"),
			TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
			AntiwordPath:  getEnv("ANTIWORD_PATH", "antiword"),
		},
		JobSearch: JobSearchConfig{
			Enabled:       getEnvAsBool("JOB_SEARCH_ENABLED", true),
			RapidAPIKey:   getEnv("RAPIDAPI_KEY", ""),
			AdzunaAppID:   getEnv("ADZUNA_APP_ID", ""),
			AdzunaAppKey:  getEnv("ADZUNA_APP_KEY", ""),
			AdzunaCountry: getEnv("ADZUNA_COUNTRY", "us"),
			Region:        getEnv("JOB_SEARCH_REGION", "USA"),
			ResultCap:     getEnvAsInt("JOB_RESULT_CAP", 5),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
