/**
* Name: 			index.go
* Description: 		메모리 벡터 인덱스 (tinySQL VECTOR 컬럼 + 코사인 유사도)
* Workflow: 		기동 시 Build 한 번 (청크 임베딩, 적재), 이후 요청마다 Search
 */

package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"ConnexxBot_Backend/internal/llm"
	"ConnexxBot_Backend/internal/models"

	tinysql "github.com/SimonWaldherr/tinySQL"
	"golang.org/x/time/rate"
)

var (
	ErrIndexNotReady = errors.New("retrieval index is not built")
	ErrIndexBuilt    = errors.New("retrieval index is already built")
)

const DefaultTopK = 4

// EmbedPerSecond: 초당 임베딩 배치 호출 수, 0 이하면 제한 없음
type IndexOptions struct {
	BatchSize      int
	EmbedPerSecond float64
}

// build-once, query-many
// tinySQL 은 동시 쓰기를 고려하지 않으므로 dbMu 로 직렬화
// tinySQL 에는 id 와 임베딩만 저장, 본문은 docs[id] (SQL 문자열 리터럴은 UTF-8 을 보존하지 않음)
type Index struct {
	db        *tinysql.DB
	embedder  llm.Embedder
	limiter   *rate.Limiter
	batchSize int

	dbMu sync.Mutex
	docs []models.Document

	stateMu  sync.Mutex
	building bool
	built    bool
	count    int
}

func NewIndex(embedder llm.Embedder, opts IndexOptions) (*Index, error) {
	limit := rate.Inf
	if opts.EmbedPerSecond > 0 {
		limit = rate.Limit(opts.EmbedPerSecond)
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 16
	}

	ix := &Index{
		embedder:  embedder,
		limiter:   rate.NewLimiter(limit, 1),
		batchSize: batchSize,
	}
	if err := ix.reset(); err != nil {
		return nil, fmt.Errorf("NewIndex(): failed to create chunks table: %w", err)
	}
	return ix, nil
}

// 빈 DB 와 chunks 테이블로 교체
func (ix *Index) reset() error {
	stmt, err := tinysql.ParseSQL("CREATE TABLE IF NOT EXISTS chunks (id INT, embedding VECTOR)")
	if err != nil {
		return err
	}
	db := tinysql.NewDB()
	if _, err := tinysql.Execute(context.Background(), db, "default", stmt); err != nil {
		return err
	}
	ix.dbMu.Lock()
	ix.db = db
	ix.docs = nil
	ix.dbMu.Unlock()
	return nil
}

// 실패 시 적재분을 지우고 다시 Build 가능
func (ix *Index) Build(ctx context.Context, chunks []models.Document) error {
	ix.stateMu.Lock()
	if ix.built || ix.building {
		ix.stateMu.Unlock()
		return ErrIndexBuilt
	}
	ix.building = true
	ix.stateMu.Unlock()

	err := ix.load(ctx, chunks)

	ix.stateMu.Lock()
	defer ix.stateMu.Unlock()
	ix.building = false
	if err != nil {
		if resetErr := ix.reset(); resetErr != nil {
			log.Printf("[ERROR] Index.Build(): failed to reset partial index: %v", resetErr)
		}
		return err
	}
	ix.built = true
	ix.count = len(chunks)
	log.Printf("Index.Build(): indexed %d chunks", len(chunks))
	return nil
}

func (ix *Index) load(ctx context.Context, chunks []models.Document) error {
	for start := 0; start < len(chunks); start += ix.batchSize {
		end := min(start+ix.batchSize, len(chunks))
		batch := chunks[start:end]

		if err := ix.limiter.Wait(ctx); err != nil {
			return err
		}

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}
		// 임베딩 중에는 DB 잠금 없음
		vectors, err := ix.embedder.Embed(ctx, texts, llm.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("Index.Build(): embed batch %d: %w", start/ix.batchSize, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("Index.Build(): embed batch %d: expected %d vectors, got %d", start/ix.batchSize, len(batch), len(vectors))
		}

		for i, chunk := range batch {
			if err := ix.insert(ctx, chunk, vectors[i]); err != nil {
				return fmt.Errorf("Index.Build(): insert chunk %d: %w", start+i, err)
			}
		}
		log.Printf("Index.Build(): embedded+stored %d/%d chunks", end, len(chunks))
	}
	return nil
}

func (ix *Index) Ready() bool {
	ix.stateMu.Lock()
	defer ix.stateMu.Unlock()
	return ix.built
}

func (ix *Index) Len() int {
	ix.stateMu.Lock()
	defer ix.stateMu.Unlock()
	return ix.count
}

// 유사도 내림차순 상위 k 개
func (ix *Index) Search(ctx context.Context, query string, k int) ([]models.Document, error) {
	if !ix.Ready() {
		return nil, ErrIndexNotReady
	}
	if k <= 0 {
		k = DefaultTopK
	}

	vectors, err := ix.embedder.Embed(ctx, []string{query}, llm.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("Index.Search(): embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("Index.Search(): no embedding returned")
	}

	q := fmt.Sprintf(
		"SELECT id, VEC_COSINE_SIMILARITY(embedding, VEC_FROM_JSON('%s')) AS score FROM chunks ORDER BY score DESC LIMIT %d",
		vecJSON(vectors[0]), k,
	)
	stmt, err := tinysql.ParseSQL(q)
	if err != nil {
		return nil, err
	}

	ix.dbMu.Lock()
	defer ix.dbMu.Unlock()
	rs, err := tinysql.Execute(ctx, ix.db, "default", stmt)
	if err != nil {
		return nil, fmt.Errorf("Index.Search(): %w", err)
	}

	docs := make([]models.Document, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		idVal, ok := tinysql.GetVal(row, "id")
		if !ok || idVal == nil {
			continue
		}
		id := int(toFloat(idVal))
		if id < 0 || id >= len(ix.docs) {
			log.Printf("[WARN] Index.Search(): row id %d out of range", id)
			continue
		}
		score, _ := tinysql.GetVal(row, "score")
		doc := ix.docs[id]
		doc.Score = toFloat(score)
		docs = append(docs, doc)
	}
	return docs, nil
}

// 본문을 docs 에 추가하고 그 위치를 id 로 임베딩 저장
func (ix *Index) insert(ctx context.Context, chunk models.Document, vector []float32) error {
	ix.dbMu.Lock()
	defer ix.dbMu.Unlock()

	id := len(ix.docs)
	stmt, err := tinysql.ParseSQL(fmt.Sprintf("INSERT INTO chunks VALUES (%d, VEC_FROM_JSON('%s'))", id, vecJSON(vector)))
	if err != nil {
		return err
	}
	if _, err := tinysql.Execute(ctx, ix.db, "default", stmt); err != nil {
		return err
	}
	ix.docs = append(ix.docs, chunk)
	return nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case float32:
		return float64(n)
	}
	return 0
}

func vecJSON(v []float32) string {
	f := make([]float64, len(v))
	for i, x := range v {
		f[i] = float64(x)
	}
	b, err := json.Marshal(f)
	if err != nil {
		log.Printf("[WARN] rag.vecJSON(): failed to marshal vector: %v", err)
		return "[]"
	}
	return string(b)
}
