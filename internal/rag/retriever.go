package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"ConnexxBot_Backend/internal/config"
	"ConnexxBot_Backend/internal/models"
)

// 채팅 코어가 사용하는 검색 계약: 질의 -> 순서 있는 텍스트 조각
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

type IndexRetriever struct {
	Index *Index
	K     int
}

func (r *IndexRetriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	docs, err := r.Index.Search(ctx, query, r.K)
	if err != nil {
		return nil, err
	}
	snippets := make([]string, len(docs))
	for i, doc := range docs {
		snippets[i] = doc.Content
	}
	return snippets, nil
}

// 로딩 -> 분할 -> 인덱스 적재, 프로세스 기동 시 한 번 실행
type Pipeline struct {
	Loaders  []Loader
	Splitter *RecursiveSplitter
	Index    *Index
}

// client 는 웹 소스 요청에 사용, 타임아웃이 있는 클라이언트를 넘길 것
func NewPipeline(cfg config.RAGConfig, index *Index, cache SourceCache, client *http.Client, loaders ...Loader) *Pipeline {
	if len(loaders) == 0 {
		for _, web := range cfg.Web {
			loaders = append(loaders, &WebLoader{URL: web.URL, Selector: web.Selector, Client: client, Cache: cache, MaxAge: cfg.CacheMaxAge()})
		}
		for _, p := range cfg.PDF {
			loaders = append(loaders, &PDFLoader{Path: p.Path, Cache: cache, MaxAge: cfg.CacheMaxAge()})
		}
	}
	return &Pipeline{
		Loaders:  loaders,
		Splitter: NewRecursiveSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		Index:    index,
	}
}

// 일부 소스 실패는 경고 후 진행, 전부 실패하면 오류
func (p *Pipeline) Run(ctx context.Context) error {
	var docs []models.Document
	var loadErrs []error
	for _, loader := range p.Loaders {
		loaded, err := loader.Load(ctx)
		if err != nil {
			log.Printf("[WARN] Pipeline.Run(): source load failed: %v", err)
			loadErrs = append(loadErrs, err)
			continue
		}
		docs = append(docs, loaded...)
	}
	if len(docs) == 0 {
		if len(loadErrs) == 0 {
			return errors.New("Pipeline.Run(): no sources configured")
		}
		return fmt.Errorf("Pipeline.Run(): no documents loaded: %w", errors.Join(loadErrs...))
	}

	chunks := p.Splitter.SplitDocuments(docs)
	log.Printf("Pipeline.Run(): %d documents split into %d chunks", len(docs), len(chunks))
	return p.Index.Build(ctx, chunks)
}
