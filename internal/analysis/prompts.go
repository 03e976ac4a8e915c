package analysis

import (
	"codeexplainer/internal/models"
	"fmt"
)

const (
	explainSystemMessage  = "You are a helpful assistant that explains code."
	optimizeSystemMessage = "You are a helpful assistant that suggests code optimizations."
)

// ExplainPrompt builds the user prompt asking for a plain-language explanation.
func ExplainPrompt(code string, lang models.Language) string {
	return fmt.Sprintf("Explain the following %s code in simple terms:\n\n%s", lang, code)
}

// OptimizePrompt builds the user prompt asking for optimization suggestions.
func OptimizePrompt(code string, lang models.Language) string {
	return fmt.Sprintf("Suggest optimizations for the following %s code:\n\n%s", lang, code)
}
