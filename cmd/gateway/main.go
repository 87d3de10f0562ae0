package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/estudia-labs/estudia-eval/internal/api/http"
	auth "github.com/estudia-labs/estudia-eval/internal/auth/middleware"
	"github.com/estudia-labs/estudia-eval/internal/config"
	"github.com/estudia-labs/estudia-eval/internal/db"
	"github.com/estudia-labs/estudia-eval/internal/generator"
	"github.com/estudia-labs/estudia-eval/internal/history"
	"github.com/estudia-labs/estudia-eval/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	grades := history.NewStore(dbh)

	// --- Engine wiring ---
	gen := generator.NewClient(cfg.GeneratorBaseURL, cfg.GeneratorAPIKey, cfg.QuestionCount)
	sessions := session.NewManager(gen, grades, session.WithTimeLimit(cfg.TimeLimitSec))

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second)) // generation can be slow

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, cfg.LearnerUser, cfg.LearnerPassHash))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Route("/evaluations", func(er chi.Router) {
			er.Get("/", api.SnapshotHandler(sessions))
			er.Post("/start", api.StartEvaluationHandler(sessions))
			er.Post("/answer", api.SetAnswerHandler(sessions))
			er.Post("/next", api.NextQuestionHandler(sessions))
			er.Post("/prev", api.PrevQuestionHandler(sessions))
			er.Post("/finish", api.FinishEvaluationHandler(sessions))
			er.Post("/reset", api.ResetEvaluationHandler(sessions))
		})

		pr.Get("/grades", api.ListGradesHandler(grades))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
