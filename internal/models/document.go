package models

// 검색 인덱스에 들어가는 문서 (또는 청크)
type Document struct {
	SourceID string  `json:"source_id"`
	Index    int     `json:"chunk_idx"`
	Content  string  `json:"content"`
	Score    float64 `json:"score,omitempty"`
}
