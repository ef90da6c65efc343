package ai

import (
	"fmt"
	"log"
)

// NewIntentClassifier picks a classifier backend by provider name.
// "auto" prefers Gemini when an API key is configured and falls back to
// Ollama otherwise.
func NewIntentClassifier(provider ProviderType, geminiAPIKey, ollamaURL, ollamaModel string) (IntentClassifier, error) {
	switch provider {
	case ProviderGemini:
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return NewGeminiService(geminiAPIKey), nil
	case ProviderOllama:
		return NewOllamaService(ollamaURL, ollamaModel), nil
	case ProviderAuto, "":
		if geminiAPIKey != "" {
			log.Println("[AI] Using Gemini for intent classification")
			return NewGeminiService(geminiAPIKey), nil
		}
		log.Println("[AI] No Gemini API key, falling back to Ollama")
		return NewOllamaService(ollamaURL, ollamaModel), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", provider)
	}
}
