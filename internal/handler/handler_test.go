package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ConnexxBot_Backend/internal/config"
	"ConnexxBot_Backend/internal/methods"
	"ConnexxBot_Backend/internal/models"
	"ConnexxBot_Backend/internal/oauth"
	"ConnexxBot_Backend/internal/prompt"
	"ConnexxBot_Backend/internal/rag"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

type fakeGenerator struct {
	reply  string
	chunks []string
}

func (g *fakeGenerator) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	return g.reply, nil
}

func (g *fakeGenerator) Stream(ctx context.Context, p prompt.Prompt, onChunk func(string) error) error {
	for _, c := range g.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

type notReadyRetriever struct{}

func (notReadyRetriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	return nil, rag.ErrIndexNotReady
}

type fakeInserter struct {
	err   error
	token string
	tz    string
}

func (f *fakeInserter) Insert(ctx context.Context, accessToken string, ev *models.CalendarEvent, timeZone string) (*gcal.Event, error) {
	f.token, f.tz = accessToken, timeZone
	if f.err != nil {
		return nil, f.err
	}
	return &gcal.Event{Id: "evt-1", HtmlLink: "https://calendar.google.com/event?eid=evt-1"}, nil
}

// 호출 횟수를 세는 가짜 토큰 엔드포인트
type upstream struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()
	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(u.server.Close)
	return u
}

type testDeps struct {
	generator *fakeGenerator
	inserter  *fakeInserter
	upstream  *upstream
}

func newTestRouter(t *testing.T, deps testDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if deps.generator == nil {
		deps.generator = &fakeGenerator{reply: "ok"}
	}
	if deps.inserter == nil {
		deps.inserter = &fakeInserter{}
	}
	if deps.upstream == nil {
		deps.upstream = newUpstream(t, http.StatusOK, `{}`)
	}

	tokens := oauth.NewTokenClient(config.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     deps.upstream.server.URL + "/token",
		RevokeURL:    deps.upstream.server.URL + "/revoke",
	}, nil)

	registry := methods.NewRegistry()
	now := func() time.Time { return time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, methods.RegisterDefaults(registry, deps.generator, notReadyRetriever{}, now))

	router := gin.New()
	New(tokens, registry, deps.inserter, nil).RegisterRoutes(router)
	return router
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var errBoom = errors.New("boom")
