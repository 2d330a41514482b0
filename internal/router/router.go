package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"problem-hunt-api/internal/config"
	"problem-hunt-api/internal/handler"
	"problem-hunt-api/internal/middleware"
	"problem-hunt-api/internal/model"
)

type Handlers struct {
	Health      *handler.HealthHandler
	Problem     *handler.ProblemHandler
	Proposal    *handler.ProposalHandler
	Tip         *handler.TipHandler
	Wallet      *handler.WalletHandler
	Post        *handler.PostHandler
	Leaderboard *handler.LeaderboardHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimit.Handler)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeRouteError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeRouteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", h.Health.Check)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/problems", func(pr chi.Router) {
			pr.Get("/", h.Problem.List)
			pr.Get("/search", h.Problem.Search)
			pr.Get("/{id}", h.Problem.Get)
			pr.Get("/{id}/proposals", h.Proposal.ListForProblem)

			pr.With(authMiddleware.RequireAuth).Post("/", h.Problem.Create)
			pr.With(authMiddleware.RequireAuth).Put("/{id}", h.Problem.Update)
			pr.With(authMiddleware.RequireAuth).Delete("/{id}", h.Problem.Delete)
			pr.With(authMiddleware.RequireAuth).Post("/{id}/upvote", h.Problem.Upvote)
			pr.With(authMiddleware.RequireAuth).Delete("/{id}/upvote", h.Problem.RemoveUpvote)
			pr.With(authMiddleware.RequireAuth).Post("/{id}/proposals", h.Proposal.Create)
		})

		api.With(authMiddleware.RequireAuth).Post("/proposals/{id}/tip", h.Tip.Create)

		api.Get("/leaderboard", h.Leaderboard.Get)

		api.Route("/user", func(u chi.Router) {
			u.Use(authMiddleware.RequireAuth)
			u.Get("/problems", h.Problem.ListMine)
			u.Get("/proposals", h.Proposal.ListMine)
			u.Get("/wallets", h.Wallet.List)
			u.Post("/wallets", h.Wallet.Add)
			u.Delete("/wallets/{wallet_id}", h.Wallet.Delete)
		})

		api.Route("/posts", func(p chi.Router) {
			p.Use(authMiddleware.RequireAuth)
			p.Post("/", h.Post.Create)
			p.Get("/", h.Post.List)
			p.Delete("/{post_id}", h.Post.Delete)
		})
	})

	return r
}

func writeRouteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
