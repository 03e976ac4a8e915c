package llm

import (
	"codeexplainer/config"
	"context"
	"fmt"
	"net/url"

	"github.com/JexSrs/go-ollama"
	"github.com/sirupsen/logrus"
)

// OllamaClient talks to a local Ollama host.
type OllamaClient struct {
	client *ollama.Ollama
	model  string
}

// NewOllamaClient creates a new client for Ollama.
func NewOllamaClient(cfg config.OllamaConfig) (*OllamaClient, error) {
	ollamaURL, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := ollama.New(*ollamaURL)

	logrus.Infof("Using Ollama client for host: %s", cfg.Host)
	logrus.Infof("Using Ollama model: %s", cfg.Model)

	return &OllamaClient{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Request sends the prompt through Generate. The library takes no context, so
// cancellation is only honoured before the call starts.
func (oc *OllamaClient) Request(ctx context.Context, systemMessage, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	logrus.Debugf("Sending prompt of %d characters to Ollama", len(userPrompt))

	res, err := oc.client.Generate(
		oc.client.Generate.WithModel(oc.model),
		oc.client.Generate.WithSystem(systemMessage),
		oc.client.Generate.WithPrompt(userPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate request failed: %w", err)
	}

	if !res.Done {
		return "", fmt.Errorf("ollama request did not complete (unexpected streaming behavior)")
	}
	if res.Response == "" {
		return "", ErrEmptyResponse
	}

	logrus.Debug("Response received from Ollama.")
	return res.Response, nil
}
