package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"thoughtn/internal/auth"
	mw "thoughtn/internal/middleware"
)

// Routes wires every endpoint onto a router. The resonance status route
// stays outside the auth group: it does its own token handling so auth
// failures can degrade to a negative result instead of a 401.
func Routes(db *sqlx.DB, tokens *auth.TokenService, logger *zap.Logger) chi.Router {
	authHandler := NewAuthHandler(db, tokens, logger)
	thoughtHandler := NewThoughtHandler(db, logger)
	resonanceHandler := NewResonanceHandler(db, tokens, logger)
	authMW := mw.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Get("/thoughts/random", thoughtHandler.Random)
	r.Get("/thoughts/search", thoughtHandler.Search)
	r.Get("/thoughts/{id}/resonated", resonanceHandler.Status)

	r.Group(func(pr chi.Router) {
		pr.Use(authMW.RequireAuth)
		pr.Post("/thoughts", thoughtHandler.Create)
		pr.Get("/thoughts/mine", thoughtHandler.Mine)
		pr.Post("/thoughts/{id}/resonate", resonanceHandler.Toggle)
		pr.Delete("/thoughts/{id}", thoughtHandler.Delete)
	})
	return r
}
