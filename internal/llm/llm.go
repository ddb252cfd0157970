package llm

import (
	"context"
	"errors"

	"ConnexxBot_Backend/internal/prompt"
)

var ErrEmptyResponse = errors.New("model returned no candidates")

// 원격 텍스트 생성 서비스
// 응답 텍스트는 가공 없이 그대로 반환 (캘린더 JSON 블록 포함 가능)
type Generator interface {
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
	Stream(ctx context.Context, p prompt.Prompt, onChunk func(chunk string) error) error
}

type EmbedTask string

const (
	TaskRetrievalDocument EmbedTask = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    EmbedTask = "RETRIEVAL_QUERY"
)

// 문서/질의 임베딩
type Embedder interface {
	Embed(ctx context.Context, texts []string, task EmbedTask) ([][]float32, error)
}
