/**
* Name: 			chat.go
* Description: 		call-model / call-model-rag 실행
* Workflow: 		기록 파싱 -> (RAG) 문서 검색 -> 프롬프트 조립 -> 모델 호출 -> 캘린더 블록 추출
 */

package methods

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"ConnexxBot_Backend/internal/calendar"
	"ConnexxBot_Backend/internal/history"
	"ConnexxBot_Backend/internal/llm"
	"ConnexxBot_Backend/internal/prompt"
	"ConnexxBot_Backend/internal/rag"
)

var InputVariables = []string{"Input", "Message_History", "Name", "Age", "Height_Feet", "Height_Inches", "Weight"}

// retriever 가 nil 이면 검색 없이 호출
type Chat struct {
	generator llm.Generator
	retriever rag.Retriever
	now       func() time.Time
}

func NewChat(generator llm.Generator, retriever rag.Retriever, now func() time.Time) *Chat {
	if now == nil {
		now = time.Now
	}
	return &Chat{generator: generator, retriever: retriever, now: now}
}

func (c *Chat) Execute(ctx context.Context, in Input) (Result, error) {
	p, err := c.prompt(ctx, in)
	if err != nil {
		return Result{}, err
	}
	reply, err := c.generator.Generate(ctx, p)
	if err != nil {
		return Result{}, fmt.Errorf("Chat.Execute(): %w", err)
	}
	return NewResult(reply), nil
}

func (c *Chat) Stream(ctx context.Context, in Input, onChunk func(chunk string) error) (Result, error) {
	p, err := c.prompt(ctx, in)
	if err != nil {
		return Result{}, err
	}

	var reply strings.Builder
	err = c.generator.Stream(ctx, p, func(chunk string) error {
		reply.WriteString(chunk)
		return onChunk(chunk)
	})
	if err != nil {
		return Result{}, fmt.Errorf("Chat.Stream(): %w", err)
	}
	return NewResult(reply.String()), nil
}

func (c *Chat) prompt(ctx context.Context, in Input) (prompt.Prompt, error) {
	turns, err := history.Parse(in.MessageHistory)
	if err != nil {
		return prompt.Prompt{}, err
	}

	var snippets []string
	if c.retriever != nil {
		snippets, err = c.retriever.Retrieve(ctx, in.Input)
		if err != nil {
			return prompt.Prompt{}, fmt.Errorf("Chat.prompt(): retrieve: %w", err)
		}
		log.Printf("Chat.prompt(): retrieved %d snippets", len(snippets))
	}
	return prompt.Assemble(in.UserProfile, c.now(), turns, in.Input, snippets), nil
}

// 원문 응답은 그대로, 유효한 캘린더 블록이 있으면 이벤트와 링크 추가
func NewResult(reply string) Result {
	res := Result{Reply: reply}
	ev, err := calendar.Extract(reply)
	if err != nil {
		if !errors.Is(err, calendar.ErrNoEvent) {
			log.Printf("[WARN] NewResult(): calendar extraction failed: %v", err)
		}
		return res
	}
	res.Event = ev
	res.CalendarLink = calendar.TemplateLink(ev)
	return res
}

// call-model, call-model-rag 등록
func RegisterDefaults(r *Registry, generator llm.Generator, retriever rag.Retriever, now func() time.Time) error {
	defaults := []Method{
		{
			ID:             "call-model",
			Route:          "/call-model",
			HTTPMethod:     http.MethodPost,
			Description:    "Calls the Gemini API.",
			InputVariables: InputVariables,
			Executor:       NewChat(generator, nil, now),
		},
		{
			ID:             "call-model-rag",
			Route:          "/call-model-rag",
			HTTPMethod:     http.MethodPost,
			Description:    "Calls the Gemini API with retrieved fitness context.",
			InputVariables: InputVariables,
			Executor:       NewChat(generator, retriever, now),
		},
	}
	for _, m := range defaults {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}
