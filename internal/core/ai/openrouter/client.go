package openrouter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"babounette/internal/infrastructure/config"
	"babounette/internal/pkg/common"
)

const baseURL = "https://openrouter.ai/api/v1"

// Message message échangé avec le modèle
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request corps de requête chat/completions
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// Response réponse complète du modèle
type Response struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// streamChunk fragment d'une réponse en flux
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Client client OpenRouter
type Client struct {
	client *resty.Client
	cfg    config.OpenRouterConfig
}

// NewClient crée le client OpenRouter
func NewClient(cfg config.OpenRouterConfig) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://babounette.app").
		SetHeader("X-Title", "Babounette")

	return &Client{
		client: client,
		cfg:    cfg,
	}
}

// Generate envoie la conversation et renvoie la réponse complète du modèle.
func (c *Client) Generate(ctx context.Context, messages []Message) (string, error) {
	req := Request{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.7,
	}

	common.LogAICall(req.Model, len(messages))

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		common.LogError("échec de l'appel au service IA", zap.Error(err), zap.String("model", req.Model))
		return "", common.ErrAIServiceError.WithMessage("le service IA est injoignable")
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("le service IA a renvoyé une erreur",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
		)
		return "", common.ErrAIServiceError.WithMessage(
			fmt.Sprintf("le service IA a renvoyé le statut %d", resp.StatusCode()))
	}

	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("réponse du service IA illisible: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", common.ErrAIServiceError.WithMessage("réponse vide du service IA")
	}

	content := result.Choices[0].Message.Content
	common.LogInfo("réponse IA reçue",
		zap.String("model", req.Model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return content, nil
}

// GenerateStream envoie la conversation en mode flux et transmet chaque
// fragment de texte à fn dès sa réception. Le flux suit le format SSE
// d'OpenRouter, terminé par la sentinelle [DONE].
func (c *Client) GenerateStream(ctx context.Context, messages []Message, fn func(chunk string) error) error {
	req := Request{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.7,
		Stream:      true,
	}

	common.LogAICall(req.Model, len(messages))

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetDoNotParseResponse(true).
		Post("/chat/completions")
	if err != nil {
		common.LogError("échec de l'appel au service IA", zap.Error(err), zap.String("model", req.Model))
		return common.ErrAIServiceError.WithMessage("le service IA est injoignable")
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		common.LogError("le service IA a renvoyé une erreur",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
		)
		return common.ErrAIServiceError.WithMessage(
			fmt.Sprintf("le service IA a renvoyé le statut %d", resp.StatusCode()))
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			common.LogWarn("fragment de flux IA illisible", zap.Error(err))
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			if err := fn(delta); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("flux du service IA interrompu: %w", err)
	}

	return nil
}

// Close libère les connexions du client
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
