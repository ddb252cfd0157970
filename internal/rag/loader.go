/**
* Name: 			loader.go
* Description: 		검색 인덱스용 원문 로더 (웹 페이지, PDF)
* Workflow: 		캐시 확인 -> 원문 추출 -> 캐시 저장 -> Document 반환
 */

package rag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ConnexxBot_Backend/internal/models"
	"ConnexxBot_Backend/internal/storage"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

type Loader interface {
	Load(ctx context.Context) ([]models.Document, error)
}

// 원문 캐시, nil 이면 매번 새로 불러옴
type SourceCache interface {
	Get(ctx context.Context, sourceID string, maxAge time.Duration) (storage.CachedSource, bool, error)
	Put(ctx context.Context, sourceID, kind, content string) error
}

// 페이지에서 selector 에 맞는 요소들의 텍스트만 추출
// selector 는 태그 이름의 자손 체인 ("p", "article p")
type WebLoader struct {
	URL      string
	Selector string
	Client   *http.Client
	Cache    SourceCache
	MaxAge   time.Duration
}

func (l *WebLoader) Load(ctx context.Context) ([]models.Document, error) {
	content, err := cached(ctx, l.Cache, l.URL, "web", l.MaxAge, func() (string, error) {
		return l.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return []models.Document{{SourceID: l.URL, Content: content}}, nil
}

func (l *WebLoader) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "ConnexxBot/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("WebLoader: HTTP %d for %s", resp.StatusCode, l.URL)
	}

	selector := l.Selector
	if selector == "" {
		selector = "p"
	}
	text, err := ExtractText(resp.Body, selector)
	if err != nil {
		return "", fmt.Errorf("WebLoader: failed to parse %s: %w", l.URL, err)
	}
	if text == "" {
		return "", fmt.Errorf("WebLoader: no text matched %q in %s", selector, l.URL)
	}
	return text, nil
}

// 매칭된 요소마다 한 줄, 매칭 요소 안에 중첩된 매칭은 바깥 요소에 포함
func ExtractText(r io.Reader, selector string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	chain := strings.Fields(strings.ToLower(selector))
	if len(chain) == 0 {
		return "", fmt.Errorf("empty selector")
	}

	var blocks []string
	var walk func(n *html.Node, ancestors []string)
	walk = func(n *html.Node, ancestors []string) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
			if n.Data == chain[len(chain)-1] && hasAncestorChain(ancestors, chain[:len(chain)-1]) {
				if text := collapseSpace(nodeText(n)); text != "" {
					blocks = append(blocks, text)
				}
				return
			}
			ancestors = append(ancestors, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, ancestors)
		}
	}
	walk(doc, nil)

	return strings.Join(blocks, "\n"), nil
}

func hasAncestorChain(ancestors, chain []string) bool {
	i := 0
	for _, a := range ancestors {
		if i < len(chain) && a == chain[i] {
			i++
		}
	}
	return i == len(chain)
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// 로컬 PDF 의 평문 추출
type PDFLoader struct {
	Path   string
	Cache  SourceCache
	MaxAge time.Duration
}

func (l *PDFLoader) Load(ctx context.Context) ([]models.Document, error) {
	content, err := cached(ctx, l.Cache, l.Path, "pdf", l.MaxAge, l.readText)
	if err != nil {
		return nil, err
	}
	return []models.Document{{SourceID: l.Path, Content: content}}, nil
}

func (l *PDFLoader) readText() (string, error) {
	f, r, err := pdf.Open(l.Path)
	if err != nil {
		return "", fmt.Errorf("PDFLoader: failed to open %s: %w", l.Path, err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("PDFLoader: failed to extract text from %s: %w", l.Path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("PDFLoader: %s has no extractable text", l.Path)
	}
	return text, nil
}

func cached(ctx context.Context, cache SourceCache, sourceID, kind string, maxAge time.Duration, load func() (string, error)) (string, error) {
	if cache != nil {
		hit, ok, err := cache.Get(ctx, sourceID, maxAge)
		if err != nil {
			log.Printf("[WARN] rag.cached(): cache lookup failed for %s: %v", sourceID, err)
		} else if ok {
			log.Printf("rag.cached(): using cached %s source %s (fetched %s)", kind, sourceID, hit.FetchedAt.Format(time.RFC3339))
			return hit.Content, nil
		}
	}

	content, err := load()
	if err != nil {
		return "", err
	}

	if cache != nil {
		if err := cache.Put(ctx, sourceID, kind, content); err != nil {
			log.Printf("[WARN] rag.cached(): failed to cache %s: %v", sourceID, err)
		}
	}
	return content, nil
}
