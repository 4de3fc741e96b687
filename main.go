package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"movequote-cloud/internal/audit"
	"movequote-cloud/internal/auth"
	companyrepo "movequote-cloud/internal/company/infrastructure/postgres"
	"movequote-cloud/internal/observability/metrics"
	pricing "movequote-cloud/internal/pricing/domain"
	quotingapp "movequote-cloud/internal/quoting/application"
	quotingrepo "movequote-cloud/internal/quoting/infrastructure/postgres"
	quotinghttp "movequote-cloud/internal/quoting/interfaces/http"
	"movequote-cloud/internal/routing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	companyChecker := auth.NewCompanyChecker(db)
	auditRepo := audit.NewRepository(db)

	companyRepo := companyrepo.NewCompanyRepository(db)
	quoteRepo := quotingrepo.NewQuoteRepository(db)

	routes, err := buildRouteProvider(cfg)
	if err != nil {
		logger.Fatalf("route provider error: %v", err)
	}

	var serviceOpts []quotingapp.Option
	if cfg.PricingConfigPath != "" {
		overrides, err := pricing.LoadOverridesFile(cfg.PricingConfigPath)
		if err != nil {
			logger.Fatalf("pricing config error: %v", err)
		}
		if _, err := pricing.ResolveRates(overrides); err != nil {
			logger.Fatalf("pricing config error: %v", err)
		}
		serviceOpts = append(serviceOpts, quotingapp.WithBaseOverrides(overrides))
	}

	quoteService, err := quotingapp.NewQuoteService(quoteRepo, companyRepo, routes, systemClock{}, logger, serviceOpts...)
	if err != nil {
		logger.Fatalf("quote service error: %v", err)
	}
	quoteHandler, err := quotinghttp.NewQuoteHandler(quoteService, companyChecker, auditRepo, cfg.TenantID)
	if err != nil {
		logger.Fatalf("quote handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/quotes", quoteHandler)
	mux.Handle("/api/v1/quotes/", quoteHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL       string
	HTTPAddr          string
	TenantID          string
	JWTSecret         string
	RoutingBaseURL    string
	RoutingAPIKey     string
	DefaultDistanceKm string
	PricingConfigPath string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:       getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		TenantID:          getenvDefault("TENANT_ID", "tenant-demo"),
		JWTSecret:         getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		RoutingBaseURL:    getenvDefault("ROUTING_BASE_URL", ""),
		RoutingAPIKey:     getenvDefault("ROUTING_API_KEY", ""),
		DefaultDistanceKm: getenvDefault("DEFAULT_DISTANCE_KM", "25"),
		PricingConfigPath: getenvDefault("PRICING_CONFIG", ""),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

// buildRouteProvider picks the external routing client when configured and
// falls back to a fixed distance for local setups.
func buildRouteProvider(cfg config) (routing.Provider, error) {
	if cfg.RoutingBaseURL != "" {
		return routing.NewClient(cfg.RoutingBaseURL, cfg.RoutingAPIKey)
	}
	distance, err := decimal.NewFromString(cfg.DefaultDistanceKm)
	if err != nil {
		return nil, err
	}
	return routing.NewFixedProvider(distance, decimal.Zero)
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
