package api

import (
	"net/http"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/auth"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/cache"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/config"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/extractor"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/provider"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/store"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/worker"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	Config      *config.AppConfig
	Users       store.Users
	Tokens      *auth.TokenIssuer
	Revoked     cache.Store
	Pipeline    *extractor.Pipeline
	ClaimBuster *provider.ClaimBuster
	FactChecker *provider.FactChecker
	LLM         *provider.LLMVerifier
	Workers     *worker.Pool
}

// Routes wires every endpoint onto a fresh mux. Handlers that require an
// authenticated user are wrapped in requireAuth.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/users", h.HandleRegister)
	mux.HandleFunc("/api/v1/auth/login", h.HandleLogin)
	mux.HandleFunc("/api/v1/auth/refresh", h.HandleRefresh)
	mux.HandleFunc("/api/v1/auth/logout", h.requireAuth(h.HandleLogout))

	mux.HandleFunc("/api/v1/users/me", h.requireAuth(h.HandleMe))
	mux.HandleFunc("/api/v1/text/extract", h.requireAuth(h.HandleExtract))
	mux.HandleFunc("/api/v1/claimbuster/score", h.requireAuth(h.HandleClaimBusterScore))
	mux.HandleFunc("/api/v1/factcheck/verify", h.requireAuth(h.HandleFactCheckVerify))
	mux.HandleFunc("/api/v1/llm/verify", h.requireAuth(h.HandleLLMVerify))

	return mux
}
