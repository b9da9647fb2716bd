package config

import "os"

// Values read once at startup. GoogleAPIKey is the hard requirement: main
// refuses to start without it. Everything else has a workable default.
var (
	GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	// "gemini" (default) or "openai"
	LLMProviderName = getEnv("LLM_PROVIDER", "gemini")

	AuthToken     = os.Getenv("AUTH_TOKEN")
	NoAuthBypass  = os.Getenv("AUTH_BYPASS") == "true"
	RedisPassword = os.Getenv("REDIS_PASSWORD")
)

// ReloadEnv re-reads the environment. Called from main after godotenv has
// loaded a .env file, since package init above runs before that.
func ReloadEnv() {
	GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	LLMProviderName = getEnv("LLM_PROVIDER", "gemini")
	AuthToken = os.Getenv("AUTH_TOKEN")
	NoAuthBypass = os.Getenv("AUTH_BYPASS") == "true"
	RedisPassword = os.Getenv("REDIS_PASSWORD")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// HasLLMCredential reports whether the configured provider has its key set.
// Checked at startup; a missing credential is fatal, not a per-call error.
func HasLLMCredential() bool {
	if LLMProviderName == "openai" {
		return OpenAIAPIKey != ""
	}
	return GoogleAPIKey != ""
}
