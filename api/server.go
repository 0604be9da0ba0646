// Package api はkusaのAPIサーバー実装を提供します。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/stsysd/kusa/config"
	"github.com/stsysd/kusa/fetch"
	"github.com/stsysd/kusa/grid"
	"github.com/stsysd/kusa/locale"
	"github.com/stsysd/kusa/store"
	"github.com/stsysd/kusa/view"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router  *http.ServeMux
	store   store.RecordStore
	config  *config.Config
	labels  *locale.Formatter
	remote  *fetch.Client
	metrics *metrics
	limiter *rateLimiter
	now     func() time.Time
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Error: message,
		Code:  statusCode,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

// writeJSON はJSONレスポンスを返却します。
func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(store store.RecordStore, config *config.Config) (*Server, error) {
	labels, err := locale.New(config.Locale)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  http.NewServeMux(),
		store:   store,
		config:  config,
		labels:  labels,
		metrics: newMetrics(),
		limiter: newRateLimiter(config.RateLimit, config.RateBurst),
		now:     time.Now,
	}
	if config.SourceURL != "" {
		s.remote = fetch.NewClient(config.SourceURL, &http.Client{Timeout: 10 * time.Second})
		log.Printf("Graph contributions are read from %s", s.remote.URL())
	}
	s.routes()
	return s, nil
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// ヘルスチェックとメトリクスは認証不要
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)
	s.router.Handle("GET /metrics", s.metrics.handler())

	// 公開データはCORSを許可
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	contributions := cors(http.HandlerFunc(s.handleGetContributions))
	s.router.Handle("GET /api/v0/contributions", contributions)
	s.router.Handle("OPTIONS /api/v0/contributions", contributions)

	// すべての保護されたエンドポイントをまずセキュアなルータに登録
	securedHandler := http.NewServeMux()

	// Record endpoints
	securedHandler.HandleFunc("POST /api/v0/r", s.handleCreateRecord)
	securedHandler.HandleFunc("GET /api/v0/r", s.handleListRecords)
	securedHandler.HandleFunc("GET /api/v0/r/{record_id}", s.handleGetRecord)
	securedHandler.HandleFunc("DELETE /api/v0/r/{record_id}", s.handleDeleteRecord)

	securedHandler.HandleFunc("POST /api/v0/bulk-deletion", s.handleBulkDeleteRecords)

	// 認証ミドルウェアを適用し、メインルータにマウント
	s.router.Handle("/api/", s.authMiddleware(securedHandler))

	// Graph endpoints - support both with and without .svg extension
	graph := s.rateLimitMiddleware(http.HandlerFunc(s.handleGetGraph))
	s.router.Handle("GET /graph.svg", graph)
	s.router.Handle("GET /graph", graph)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// routesに設定されたルーティングをメトリクス付きで使用する
	s.metrics.middleware(s.router).ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// buildGrid は基準日からグリッドを構築します。月名は設定ロケールで表示します。
func (s *Server) buildGrid(ref time.Time) *grid.Grid {
	return grid.Build(ref, &grid.Options{
		LookbackDays: s.config.LookbackDays,
		MonthName:    s.labels.MonthShort,
	})
}

// source はグリッド表示用のデータ取得元を返します。
// 取得元URLが設定されていればそれを、なければストアの集計を使います。
func (s *Server) source(g *grid.Grid) view.Source {
	if s.remote != nil {
		return s.remote
	}
	return store.Window{Store: s.store, From: g.First(), To: g.Last()}
}

// Run はサーバーを指定されたアドレスで起動し、ctx がキャンセルされると停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, s),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server shutdown complete")
	return nil
}
