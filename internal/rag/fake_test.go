package rag

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ConnexxBot_Backend/internal/llm"
	"ConnexxBot_Backend/internal/models"
)

var vocabulary = []string{"squat", "run", "swim", "stretch"}

// 어휘 등장 여부로 만든 결정적 임베딩
type keywordEmbedder struct {
	mu    sync.Mutex
	calls []llm.EmbedTask
	fail  error
}

func (e *keywordEmbedder) Embed(ctx context.Context, texts []string, task llm.EmbedTask) ([][]float32, error) {
	e.mu.Lock()
	e.calls = append(e.calls, task)
	e.mu.Unlock()
	if e.fail != nil {
		return nil, e.fail
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		v := make([]float32, len(vocabulary)+1)
		for j, word := range vocabulary {
			v[j] = float32(strings.Count(lower, word))
		}
		v[len(vocabulary)] = 0.1
		vectors[i] = v
	}
	return vectors, nil
}

type staticLoader struct {
	docs []models.Document
	err  error
}

func (l *staticLoader) Load(ctx context.Context) ([]models.Document, error) {
	return l.docs, l.err
}

var errBoom = errors.New("boom")
