package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ConnexxBot_Backend/docs"
	"ConnexxBot_Backend/internal/calendar"
	"ConnexxBot_Backend/internal/config"
	"ConnexxBot_Backend/internal/handler"
	"ConnexxBot_Backend/internal/llm"
	"ConnexxBot_Backend/internal/methods"
	"ConnexxBot_Backend/internal/middleware"
	"ConnexxBot_Backend/internal/oauth"
	"ConnexxBot_Backend/internal/rag"
	"ConnexxBot_Backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           ConnexxBot Backend API
// @version         1.0
// @description     피트니스 채팅(Gemini) 및 캘린더 연동용 OAuth 토큰 프록시 서버
// @BasePath        /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("[Fatal] config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}

	// 스트리밍 응답은 전체 바디 타임아웃 대신 요청 ctx 로 제한
	gemini, err := llm.NewGeminiClient(ctx, cfg.Model)
	if err != nil {
		log.Fatalf("[Fatal] %v", err)
	}

	index, err := rag.NewIndex(gemini, rag.IndexOptions{
		BatchSize:      cfg.RAG.EmbedBatchSize,
		EmbedPerSecond: cfg.RAG.EmbedPerSecond,
	})
	if err != nil {
		log.Fatalf("[Fatal] %v", err)
	}
	if cfg.RAG.Enabled {
		go buildIndex(ctx, cfg.RAG, index, httpClient)
	} else {
		log.Println("main(): RAG disabled, /call-model-rag will answer 503")
	}

	registry := methods.NewRegistry()
	retriever := &rag.IndexRetriever{Index: index, K: cfg.RAG.TopK}
	if err := methods.RegisterDefaults(registry, gemini, retriever, time.Now); err != nil {
		log.Fatalf("[Fatal] %v", err)
	}

	h := handler.New(
		oauth.NewTokenClient(cfg.OAuth, httpClient),
		registry,
		calendar.NewInserter(cfg.Calendar),
		index,
	)

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, middleware.RequestIDHeader)
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestID())

	h.RegisterRoutes(router)

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Printf("main(): listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Fatal] server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("main(): shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] main(): shutdown: %v", err)
	}
}

// 원문 캐시를 열고 검색 인덱스를 한 번 적재, 실패해도 서버는 계속 동작 (RAG 만 503)
func buildIndex(ctx context.Context, cfg config.RAGConfig, index *rag.Index, client *http.Client) {
	cache, err := storage.OpenSourceCache(cfg.CachePath)
	if err != nil {
		log.Printf("[WARN] buildIndex(): source cache unavailable, fetching without cache: %v", err)
	}

	var sourceCache rag.SourceCache
	if cache != nil {
		defer cache.Close()
		sourceCache = cache
	}

	start := time.Now()
	if err := rag.NewPipeline(cfg, index, sourceCache, client).Run(ctx); err != nil {
		log.Printf("[ERROR] buildIndex(): retrieval index not built: %v", err)
		return
	}
	log.Printf("buildIndex(): retrieval index ready (%d chunks, %s)", index.Len(), time.Since(start).Round(time.Millisecond))
}
