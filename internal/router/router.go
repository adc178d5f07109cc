package router

import (
	"net/http"

	_ "pet-cadastro/docs"
	mem "pet-cadastro/internal/adapters/storage/memory"
	"pet-cadastro/internal/domain/registration"
	"pet-cadastro/internal/middleware"
	"pet-cadastro/internal/platform/config"
	"pet-cadastro/internal/platform/logger"
	"pet-cadastro/internal/platform/metrics"
	"pet-cadastro/internal/platform/pool"
	"pet-cadastro/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa ese repo (postgres/mysql). Si no, in-memory.
	Repo registration.Repository

	// Opcional: cupo del pool. Default 10 conexiones y cola de 50.
	Gate *pool.Gate

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewRegistrationRepo()
	}

	gate := opts.Gate
	if gate == nil {
		gate = pool.NewGate(config.DefaultMaxConns, config.DefaultQueueLimit)
	}

	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	if err := m.TrackPool(gate); err != nil {
		log.Warn("pool gauges not registered", map[string]any{"error": err.Error()})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	regSvc := registration.NewService(repo,
		registration.WithGate(gate),
		registration.WithLogger(log),
		registration.WithRecorder(m),
	)
	registration.RegisterRoutes(r, regSvc, log)

	// Formulario estático (index.html, script.js, style.css)
	r.Handle("/*", web.Handler())

	return r
}
