package rag

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ConnexxBot_Backend/internal/config"
	"ConnexxBot_Backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><style>p { color: red }</style><script>var p = "no";</script></head>
<body>
  <nav><p>Menu</p></nav>
  <article>
    <h1>Strength basics</h1>
    <p>Warm up for   ten minutes.</p>
    <p>Keep your <b>core</b> tight.</p>
  </article>
</body></html>`

func TestExtractText_TagSelector(t *testing.T) {
	text, err := ExtractText(strings.NewReader(page), "p")
	require.NoError(t, err)
	assert.Equal(t, "Menu\nWarm up for ten minutes.\nKeep your core tight.", text)
}

func TestExtractText_DescendantSelector(t *testing.T) {
	text, err := ExtractText(strings.NewReader(page), "article p")
	require.NoError(t, err)
	assert.Equal(t, "Warm up for ten minutes.\nKeep your core tight.", text)
}

func TestWebLoader_UsesCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer server.Close()

	cache, err := storage.OpenSourceCache(storage.MemoryPath)
	require.NoError(t, err)
	defer cache.Close()

	loader := &WebLoader{URL: server.URL, Selector: "article p", Cache: cache, MaxAge: time.Hour}
	for i := 0; i < 2; i++ {
		docs, err := loader.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, server.URL, docs[0].SourceID)
		assert.Contains(t, docs[0].Content, "Keep your core tight.")
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestWebLoader_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := (&WebLoader{URL: server.URL}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestNewPipeline_WebLoaderTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	cfg := config.Default().RAG
	cfg.Web = []config.WebSource{{URL: server.URL, Selector: "p"}}
	client := &http.Client{Timeout: 100 * time.Millisecond}

	p := NewPipeline(cfg, nil, nil, client)
	require.Len(t, p.Loaders, 1)
	loader, ok := p.Loaders[0].(*WebLoader)
	require.True(t, ok)
	assert.Same(t, client, loader.Client)

	done := make(chan error, 1)
	go func() {
		_, err := loader.Load(context.Background())
		done <- err
	}()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("WebLoader.Load did not honor the client timeout")
	}
}

func TestPDFLoader_MissingFile(t *testing.T) {
	_, err := (&PDFLoader{Path: "testdata/does-not-exist.pdf"}).Load(context.Background())
	assert.Error(t, err)
}
