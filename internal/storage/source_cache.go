/**
* Name: 			source_cache.go
* Description: 		불러온 문서 원문(sqlite) 캐시
* Workflow: 		source_id 로 조회, 최대 보관 기간이 지나면 miss 처리, 새로 불러온 원문은 upsert
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const MemoryPath = ":memory:"

type SourceCache struct {
	db *sql.DB
}

// 캐시된 문서 원문
type CachedSource struct {
	SourceID  string
	Kind      string
	Content   string
	FetchedAt time.Time
}

func OpenSourceCache(path string) (*SourceCache, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("OpenSourceCache(): failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("OpenSourceCache(): failed to open database: %w", err)
	}
	// :memory: 는 연결마다 별도 DB 이므로 단일 연결 유지
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenSourceCache(): failed to connect to database: %w", err)
	}

	createSourcesTable := `
	CREATE TABLE IF NOT EXISTS sources (
			"source_id" TEXT PRIMARY KEY,
			"kind" TEXT NOT NULL,
			"content" TEXT NOT NULL,
			"fetched_at" INTEGER NOT NULL
	);`
	if _, err := db.Exec(createSourcesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenSourceCache(): failed to create sources table: %w", err)
	}
	log.Printf("OpenSourceCache(): source cache ready at %s", path)

	return &SourceCache{db: db}, nil
}

// maxAge <= 0 이면 만료 없음
func (s *SourceCache) Get(ctx context.Context, sourceID string, maxAge time.Duration) (CachedSource, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT source_id, kind, content, fetched_at FROM sources WHERE source_id = ?", sourceID)

	var cached CachedSource
	var fetchedAt int64
	if err := row.Scan(&cached.SourceID, &cached.Kind, &cached.Content, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CachedSource{}, false, nil
		}
		return CachedSource{}, false, err
	}
	cached.FetchedAt = time.Unix(fetchedAt, 0)

	if maxAge > 0 && time.Since(cached.FetchedAt) > maxAge {
		return cached, false, nil
	}
	return cached, true, nil
}

func (s *SourceCache) Put(ctx context.Context, sourceID, kind, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sources(source_id, kind, content, fetched_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			kind = excluded.kind,
			content = excluded.content,
			fetched_at = excluded.fetched_at`,
		sourceID, kind, content, time.Now().Unix())
	return err
}

func (s *SourceCache) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
