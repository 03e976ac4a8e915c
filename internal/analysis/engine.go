package analysis

import (
	"codeexplainer/internal/llm"
	"codeexplainer/internal/models"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine runs the explanation and optimization requests for submitted code.
type Engine struct {
	client llm.Client
}

// NewEngine creates a new Engine.
func NewEngine(client llm.Client) *Engine {
	return &Engine{client: client}
}

// ExplainCode asks for a plain-language explanation of code.
func (e *Engine) ExplainCode(ctx context.Context, code string, lang models.Language) (string, error) {
	return e.client.Request(ctx, explainSystemMessage, ExplainPrompt(code, lang))
}

// SuggestOptimizations asks for optimization suggestions for code.
func (e *Engine) SuggestOptimizations(ctx context.Context, code string, lang models.Language) (string, error) {
	return e.client.Request(ctx, optimizeSystemMessage, OptimizePrompt(code, lang))
}

// Analyze validates req and, when it carries code, runs the explanation and then
// the optimization request. Both texts are returned exactly as received.
func (e *Engine) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	lang, err := req.Validate()
	if err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"language":   lang,
		"code_bytes": len(req.Code),
	})
	start := time.Now()

	log.Info("1. Requesting code explanation...")
	explanation, err := e.ExplainCode(ctx, req.Code, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to explain code: %w", err)
	}

	log.Info("2. Requesting optimization suggestions...")
	optimizations, err := e.SuggestOptimizations(ctx, req.Code, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest optimizations: %w", err)
	}

	log.WithField("elapsed", time.Since(start).String()).Info("Analysis complete")

	return &models.AnalyzeResponse{
		Language:      lang,
		Code:          req.Code,
		Explanation:   explanation,
		Optimizations: optimizations,
	}, nil
}
