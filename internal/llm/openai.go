package llm

import (
	"codeexplainer/config"
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
)

// OpenAIClient sends chat completions to the OpenAI API, or to any server
// exposing the same protocol when a base URL is configured.
type OpenAIClient struct {
	chat  *openai.ChatModel
	model string
}

// NewOpenAIClient creates a chat model bound to cfg.Model.
func NewOpenAIClient(ctx context.Context, cfg config.OpenAIConfig) (*OpenAIClient, error) {
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}

	logrus.Infof("Using OpenAI model: %s", cfg.Model)
	if cfg.BaseURL != "" {
		logrus.Infof("Using OpenAI base URL: %s", cfg.BaseURL)
	}

	return &OpenAIClient{chat: chat, model: cfg.Model}, nil
}

// Request sends one system-role and one user-role message and returns the
// content of the first returned message as is.
func (c *OpenAIClient) Request(ctx context.Context, systemMessage, userPrompt string) (string, error) {
	logrus.Debugf("Sending prompt of %d characters to %s", len(userPrompt), c.model)

	out, err := c.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemMessage),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		// eino reports a reply without choices as a plain error.
		if strings.Contains(err.Error(), "empty choices") {
			return "", fmt.Errorf("openai chat completion failed: %w: %v", ErrEmptyResponse, err)
		}
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	return out.Content, nil
}
