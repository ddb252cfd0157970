/**
* Name: 			config.go
* Description: 		서버 설정 로딩
* Workflow: 		기본값 -> (선택) TOML 파일 -> 환경 변수 순으로 덮어쓰기, 검증 후 Config 반환
 */

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/oauth2/google"
)

const DefaultRevokeURL = "https://oauth2.googleapis.com/revoke"

// 각 구성 요소 생성자에 명시적으로 전달되는 설정
// 비즈니스 로직은 환경 변수를 직접 읽지 않음
type Config struct {
	Port               string         `toml:"port"`
	HTTPTimeoutSeconds int            `toml:"http_timeout_seconds"`
	Model              ModelConfig    `toml:"model"`
	OAuth              OAuthConfig    `toml:"oauth"`
	RAG                RAGConfig      `toml:"rag"`
	Calendar           CalendarConfig `toml:"calendar"`
}

type ModelConfig struct {
	APIKey      string  `toml:"-"`
	Name        string  `toml:"name"`
	EmbedModel  string  `toml:"embed_model"`
	Temperature float32 `toml:"temperature"`
	MaxRetries  int     `toml:"max_retries"`
}

type OAuthConfig struct {
	ClientID     string `toml:"-"`
	ClientSecret string `toml:"-"`
	TokenURL     string `toml:"token_url"`
	RevokeURL    string `toml:"revoke_url"`
}

type RAGConfig struct {
	Enabled          bool        `toml:"enabled"`
	ChunkSize        int         `toml:"chunk_size"`
	ChunkOverlap     int         `toml:"chunk_overlap"`
	TopK             int         `toml:"top_k"`
	EmbedBatchSize   int         `toml:"embed_batch_size"`
	EmbedPerSecond   float64     `toml:"embed_per_second"`
	CachePath        string      `toml:"cache_path"`
	CacheMaxAgeHours int         `toml:"cache_max_age_hours"`
	Web              []WebSource `toml:"web"`
	PDF              []PDFSource `toml:"pdf"`
}

type WebSource struct {
	URL      string `toml:"url"`
	Selector string `toml:"selector"`
}

type PDFSource struct {
	Path string `toml:"path"`
}

type CalendarConfig struct {
	DefaultTimeZone string `toml:"default_time_zone"`
	CalendarID      string `toml:"calendar_id"`
}

func Default() Config {
	return Config{
		Port:               "8080",
		HTTPTimeoutSeconds: 30,
		Model: ModelConfig{
			Name:        "gemini-2.0-flash",
			EmbedModel:  "text-embedding-004",
			Temperature: 0,
			MaxRetries:  2,
		},
		OAuth: OAuthConfig{
			TokenURL:  google.Endpoint.TokenURL,
			RevokeURL: DefaultRevokeURL,
		},
		RAG: RAGConfig{
			Enabled:          true,
			ChunkSize:        1000,
			ChunkOverlap:     200,
			TopK:             4,
			EmbedBatchSize:   16,
			EmbedPerSecond:   5,
			CachePath:        "./data/sources.db",
			CacheMaxAgeHours: 24,
			Web: []WebSource{
				{URL: "https://lilianweng.github.io/posts/2023-06-23-agent/", Selector: "p"},
			},
		},
		Calendar: CalendarConfig{
			DefaultTimeZone: "UTC",
			CalendarID:      "primary",
		},
	}
}

// 환경 변수 조회 함수 (테스트에서 교체)
type Getenv func(key string) string

func Load(path string) (Config, error) {
	return LoadWith(path, os.Getenv)
}

func LoadWith(path string, getenv Getenv) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config.Load(): failed to decode %s: %w", path, err)
		}
		log.Printf("config.Load(): loaded config file %s", path)
	}

	applyEnv(&cfg, getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv Getenv) {
	cfg.Model.APIKey = getenv("GEMINI_API_KEY")
	cfg.OAuth.ClientID = getenv("GOOGLE_CLIENT_ID")
	cfg.OAuth.ClientSecret = getenv("GOOGLE_CLIENT_SECRET")

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("GEMINI_MODEL"); v != "" {
		cfg.Model.Name = v
	}
	if v := getenv("SOURCE_CACHE_PATH"); v != "" {
		cfg.RAG.CachePath = v
	}
	if v := getenv("RAG_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.RAG.Enabled = enabled
		} else {
			log.Printf("[WARN] config.Load(): ignoring invalid RAG_ENABLED=%q", v)
		}
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Model.APIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
	}
	if c.Model.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("model.max_retries must be >= 0, got %d", c.Model.MaxRetries))
	}
	if c.RAG.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("rag.chunk_size must be positive, got %d", c.RAG.ChunkSize))
	}
	if c.RAG.ChunkOverlap < 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		errs = append(errs, fmt.Errorf("rag.chunk_overlap must be in [0, chunk_size), got %d", c.RAG.ChunkOverlap))
	}
	if c.RAG.TopK <= 0 {
		errs = append(errs, fmt.Errorf("rag.top_k must be positive, got %d", c.RAG.TopK))
	}
	if c.OAuth.ClientID == "" || c.OAuth.ClientSecret == "" {
		// 토큰 프록시는 upstream 에서 거절되지만 서버 기동은 허용
		log.Println("Warning: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET is not set. Token proxy requests will be rejected upstream.")
	}
	return errors.Join(errs...)
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c RAGConfig) CacheMaxAge() time.Duration {
	return time.Duration(c.CacheMaxAgeHours) * time.Hour
}
