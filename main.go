package main

import (
	"compress/gzip"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/api"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/auth"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/cache"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/config"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/extractor"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/logger"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/provider"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/store"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/worker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration
	appConfig, err := config.LoadConfig()
	if err != nil {
		logger.LogError("Failed to load configuration: %v", err)
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the user store
	userStore, err := store.Open(appConfig.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	defer userStore.Close()

	// Refresh-token revocation store: Redis when configured, in-process otherwise
	var revoked cache.Store
	if appConfig.HasRedis() {
		log.Printf("Using Redis revocation store at %s", appConfig.RedisAddr)
		revoked = cache.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
	} else {
		log.Println("Using in-memory revocation store")
		revoked = cache.NewMemoryStore()
	}

	// Create a single, optimized HTTP client for all outbound requests
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}

	// Acquisition pipeline
	pipeline := extractor.NewPipeline(
		extractor.NewArticleFetcher(httpClient, appConfig.FetchTimeout),
		extractor.NewTranscriptFetcher(httpClient, appConfig.FetchTimeout),
	)

	// Verification providers
	factChecker, err := provider.NewFactChecker(context.Background(), appConfig.FactCheckAPIKey, appConfig.FactCheckTimeout)
	if err != nil {
		log.Fatalf("Failed to create fact-check client: %v", err)
	}

	handler := &api.Handler{
		Config:      appConfig,
		Users:       userStore,
		Tokens:      auth.NewTokenIssuer(appConfig.SecretKey, appConfig.AccessTokenTTL, appConfig.RefreshTokenTTL),
		Revoked:     revoked,
		Pipeline:    pipeline,
		ClaimBuster: provider.NewClaimBuster(httpClient, appConfig.ClaimBusterAPIKey, appConfig.ClaimBusterURL, appConfig.ClaimBusterTimeout),
		FactChecker: factChecker,
		LLM:         provider.NewLLMVerifier(httpClient, appConfig.OpenAIAPIKey, appConfig.LLMModel, appConfig.LLMTimeout),
		Workers:     worker.NewPool(appConfig.FactCheckConcurrency),
	}

	mux := handler.Routes()

	// Add health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339)); err != nil {
			logger.LogError("Warning: failed to write health check response: %v", err)
		}
	})

	// Compose middleware: CORS outermost, then gzip and request timeout
	wrapped := corsMiddleware(appConfig.CORSOrigins, gzipMiddleware(timeoutMiddleware(mux)))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appConfig.GetPort()),
		Handler:      wrapped,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 180 * time.Second, // LLM verification can run long
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting %s on port %d", appConfig.AppName, appConfig.GetPort())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.LogError("Server failed to start: %v", err)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.LogError("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited gracefully")
}

// corsMiddleware allows browser clients on the configured origins to call
// the API with credentials (the refresh cookie).
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// gzipMiddleware compresses responses when the client supports it
func gzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Vary", "Accept-Encoding")

		gw := gzip.NewWriter(w)
		defer func() {
			if err := gw.Close(); err != nil {
				logger.LogError("Error closing gzip writer: %v", err)
			}
		}()

		grw := &gzipResponseWriter{ResponseWriter: w, writer: gw}
		next.ServeHTTP(grw, r)
	})
}

// gzipResponseWriter wraps http.ResponseWriter to compress responses
type gzipResponseWriter struct {
	http.ResponseWriter
	writer *gzip.Writer
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.writer.Write(b)
}

// requestTimeout bounds how long a single request may run; LLM verification
// is the slowest path. Server WriteTimeout stays above this.
const requestTimeout = 3 * time.Minute

// timeoutMiddleware adds request timeout handling. http.TimeoutHandler guards
// the ResponseWriter, so a handler still running after the deadline cannot
// write into the timeout response.
func timeoutMiddleware(next http.Handler) http.Handler {
	return withTimeout(next, requestTimeout)
}

func withTimeout(next http.Handler, limit time.Duration) http.Handler {
	return http.TimeoutHandler(next, limit, `{"error":"Request timeout"}`)
}
