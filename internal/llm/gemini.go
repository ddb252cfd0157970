/**
* Name: 			gemini.go
* Description: 		Gemini API 연결 (생성, 스트리밍, 임베딩)
* Workflow: 		Prompt -> genai Content 변환, 호출, 일시적 오류는 제한 횟수만큼 재시도
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"ConnexxBot_Backend/internal/config"
	"ConnexxBot_Backend/internal/models"
	"ConnexxBot_Backend/internal/prompt"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client      *genai.Client
	model       string
	embedModel  string
	temperature float32
	maxRetries  int
	backoff     time.Duration
}

type Option func(*genai.ClientConfig)

// 테스트용 엔드포인트 교체
func WithBaseURL(baseURL string) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = baseURL
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = hc
	}
}

func NewGeminiClient(ctx context.Context, cfg config.ModelConfig, opts ...Option) (*GeminiClient, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(clientConfig)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("NewGeminiClient(): failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       cfg.Name,
		embedModel:  cfg.EmbedModel,
		temperature: cfg.Temperature,
		maxRetries:  cfg.MaxRetries,
		backoff:     500 * time.Millisecond,
	}, nil
}

// 재시도 간격 (테스트에서 짧게)
func (g *GeminiClient) SetBackoff(d time.Duration) {
	g.backoff = d
}

func (g *GeminiClient) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	contents := toContents(p)
	generateConfig := g.generateConfig(p)

	var reply string
	err := g.withRetry(ctx, "Generate", func() error {
		res, err := g.client.Models.GenerateContent(ctx, g.model, contents, generateConfig)
		if err != nil {
			return err
		}
		text, ok := responseText(res)
		if !ok {
			return ErrEmptyResponse
		}
		reply = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

// 첫 청크 전의 일시적 오류는 재시도, 청크가 하나라도 전달된 뒤에는 재시도하지 않음
func (g *GeminiClient) Stream(ctx context.Context, p prompt.Prompt, onChunk func(chunk string) error) error {
	contents := toContents(p)
	generateConfig := g.generateConfig(p)

	received := false
	return g.withRetry(ctx, "Stream", func() error {
		for res, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, generateConfig) {
			if err != nil {
				if received {
					return &midStreamError{err: err}
				}
				return err
			}
			text, ok := responseText(res)
			if !ok || text == "" {
				continue
			}
			received = true
			if err := onChunk(text); err != nil {
				return &midStreamError{err: err}
			}
		}
		if !received {
			return ErrEmptyResponse
		}
		return nil
	})
}

// 부분 응답이 이미 전달된 뒤의 오류
type midStreamError struct {
	err error
}

func (e *midStreamError) Error() string { return e.err.Error() }

func (e *midStreamError) Unwrap() error { return e.err }

func (g *GeminiClient) Embed(ctx context.Context, texts []string, task EmbedTask) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	var vectors [][]float32
	err := g.withRetry(ctx, "Embed", func() error {
		res, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, &genai.EmbedContentConfig{
			TaskType: string(task),
		})
		if err != nil {
			return err
		}
		if len(res.Embeddings) != len(texts) {
			return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(res.Embeddings))
		}
		vectors = make([][]float32, len(res.Embeddings))
		for i, embedding := range res.Embeddings {
			vectors[i] = embedding.Values
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

func (g *GeminiClient) generateConfig(p prompt.Prompt) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(g.temperature),
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
	}
}

func (g *GeminiClient) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("GeminiClient.%s(): retry %d/%d after error: %v", op, attempt, g.maxRetries, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * g.backoff):
			}
		}
		err = fn()
		if err == nil || !isTransient(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("GeminiClient.%s(): %w", op, err)
	}
	return nil
}

// 429, 5xx, 네트워크 오류만 재시도 대상
func isTransient(err error) bool {
	var midStream *midStreamError
	if errors.As(err, &midStream) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Code >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func toContents(p prompt.Prompt) []*genai.Content {
	contents := make([]*genai.Content, 0, len(p.Turns)+1)
	for _, turn := range p.Turns {
		var role genai.Role = genai.RoleUser
		if turn.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(p.Input, genai.RoleUser))
	return contents
}

// "Inappropriate" 입력 등으로 후보가 비어 있으면 ok=false
func responseText(res *genai.GenerateContentResponse) (string, bool) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String(), true
}
