package generator

import (
	"alcyxob/physio-app/internal/config"
	"fmt"
)

// ForMode builds the generators for a configured mode. fallback is nil unless the
// mode asks for the deterministic generator to back up the AI one.
func ForMode(mode string, ai config.AIConfig) (primary Generator, fallback Generator, err error) {
	aiConfig := AIConfig{
		APIKey:       ai.APIKey,
		BaseURL:      ai.BaseURL,
		Model:        ai.Model,
		Timeout:      ai.Timeout,
		MaxTokens:    ai.MaxTokens,
		Temperature:  ai.Temperature,
		SystemPrompt: ai.SystemPrompt,
	}

	switch mode {
	case config.GeneratorModeFallback, "":
		return NewFallbackGenerator(), nil, nil
	case config.GeneratorModeAI:
		return NewAIGenerator(aiConfig), nil, nil
	case config.GeneratorModeAIWithFallback:
		return NewAIGenerator(aiConfig), NewFallbackGenerator(), nil
	default:
		return nil, nil, fmt.Errorf("unknown generator mode %q", mode)
	}
}
