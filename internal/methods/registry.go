/**
* Name: 			registry.go
* Description: 		채팅 메서드 레지스트리
* Workflow: 		기동 시 메서드 등록 -> 라우터가 All() 로 라우트 생성 -> 요청 시 Executor 실행
 */

package methods

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ConnexxBot_Backend/internal/models"
)

var ErrDuplicateMethod = errors.New("duplicate method id")

// 모든 채팅 메서드가 공유하는 요청 바디
type Input struct {
	Input          string `json:"Input"`
	MessageHistory string `json:"Message_History"`
	models.UserProfile
}

type Result struct {
	Reply        string                `json:"reply"`
	Event        *models.CalendarEvent `json:"event,omitempty"`
	CalendarLink string                `json:"calendarLink,omitempty"`
}

type Executor interface {
	Execute(ctx context.Context, in Input) (Result, error)
	// onChunk 는 모델이 보낸 순서대로 호출됨
	Stream(ctx context.Context, in Input, onChunk func(chunk string) error) (Result, error)
}

type Method struct {
	ID             string   `json:"id"`
	Route          string   `json:"route"`
	HTTPMethod     string   `json:"method"`
	Description    string   `json:"description"`
	InputVariables []string `json:"inputVariables"`
	Executor       Executor `json:"-"`
}

// 등록 순서 유지
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Method
	ordered []string
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Method)}
}

func (r *Registry) Register(m Method) error {
	if m.ID == "" || m.Executor == nil {
		return fmt.Errorf("Registry.Register(): method %q needs an id and an executor", m.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; exists {
		return fmt.Errorf("Registry.Register(): %q: %w", m.ID, ErrDuplicateMethod)
	}
	r.byID[m.ID] = m
	r.ordered = append(r.ordered, m.ID)
	return nil
}

func (r *Registry) Lookup(id string) (Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	return m, ok
}

func (r *Registry) All() []Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Method, 0, len(r.ordered))
	for _, id := range r.ordered {
		all = append(all, r.byID[id])
	}
	return all
}
