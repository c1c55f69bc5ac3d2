package transform

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []wireMessage `json:"messages"`
}

func buildRequest(cfg Config, prompt string) wireRequest {
	return wireRequest{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Messages:    []wireMessage{{Role: "user", Content: prompt}},
	}
}

// openAIProtocol speaks the chat-completions envelope.
type openAIProtocol struct{}

func (openAIProtocol) endpoint(baseURL string) string {
	return baseURL + "/v1/chat/completions"
}

func (openAIProtocol) setHeaders(header http.Header, apiKey string) {
	header.Set("Authorization", "Bearer "+apiKey)
}

func (openAIProtocol) encodeBody(cfg Config, prompt string) ([]byte, error) {
	return json.Marshal(buildRequest(cfg, prompt))
}

func (openAIProtocol) extractText(body []byte) (string, error) {
	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Text string `json:"text"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("transform request: decode response: %w", err)
	}
	if decoded.Error != nil && strings.TrimSpace(decoded.Error.Message) != "" {
		return "", fmt.Errorf("transform request: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	for _, choice := range decoded.Choices {
		if choice.Message.Content != "" {
			return choice.Message.Content, nil
		}
		if choice.Text != "" {
			return choice.Text, nil
		}
	}
	return "", nil
}

// anthropicProtocol speaks the messages envelope.
type anthropicProtocol struct{}

func (anthropicProtocol) endpoint(baseURL string) string {
	return baseURL + "/v1/messages"
}

func (anthropicProtocol) setHeaders(header http.Header, apiKey string) {
	header.Set("x-api-key", apiKey)
	header.Set("anthropic-version", "2023-06-01")
}

func (anthropicProtocol) encodeBody(cfg Config, prompt string) ([]byte, error) {
	return json.Marshal(buildRequest(cfg, prompt))
}

func (anthropicProtocol) extractText(body []byte) (string, error) {
	var decoded struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Error *struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("transform request: decode response: %w", err)
	}
	if decoded.Error != nil && strings.TrimSpace(decoded.Error.Message) != "" {
		return "", fmt.Errorf("transform request: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	for _, block := range decoded.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}
	return "", nil
}
