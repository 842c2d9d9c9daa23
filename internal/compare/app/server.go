package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/time/rate"

	"gocompare_api/config"
	"gocompare_api/internal/compare/app/web"
	"gocompare_api/internal/compare/app/web/handlers"
	"gocompare_api/internal/compare/business/services/comparison"
	"gocompare_api/internal/compare/business/services/ingest"
	"gocompare_api/internal/compare/business/services/specs"
	"gocompare_api/internal/compare/pkg/clients"
	"gocompare_api/internal/compare/storage"
	compareMigrations "gocompare_api/migrations/compare"
	"gocompare_api/pkg/dbconnect"
	"gocompare_api/pkg/dbconnect/migration"
	"gocompare_api/pkg/dbconnect/postgres"
	"gocompare_api/pkg/dbconnect/sqlite"
	"gocompare_api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type CompareServer struct {
	dbconnect.Database
	config *config.AppConfig
	log    logger.Logger
	writer io.Writer

	store      *storage.Store
	ingest     *ingest.Service
	comparison *comparison.Service
}

// NewConnector picks the database connector of the configured driver.
func NewConnector(cfg *config.AppConfig) dbconnect.Database {
	if cfg.Database.Driver == string(dbconnect.Sqlite) {
		return sqlite.NewSqliteConnector(cfg.DbConfig())
	}
	return postgres.NewPgConnector(cfg.DbConfig())
}

func NewCompareServer(connector dbconnect.Database, cfg *config.AppConfig, writer io.Writer) *CompareServer {
	return &CompareServer{
		Database: connector,
		config:   cfg,
		log:      logger.NewLogger(writer, "[CompareServer]"),
		writer:   writer,
	}
}

// Open connects to the database, applies migrations and builds the services.
func (s *CompareServer) Open() error {
	db, err := s.Connect()
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	dialect := s.Dialect()
	if err := migration.Apply(db, compareMigrations.All(dialect)...); err != nil {
		return err
	}
	s.log.Log("Compare migrations applied successfully!")

	s.wire(db, dialect)
	return nil
}

func (s *CompareServer) wire(db *sql.DB, dialect dbconnect.Dialect) {
	s.store = storage.NewStore(db, dialect)

	client := clients.NewApifyClient(s.config.Apify.BaseURL, s.config.Apify.Token, s.writer)
	s.ingest = ingest.NewService(
		s.store.Categories,
		s.store.Products,
		s.store.Prices,
		client,
		specs.NewEngine(),
		s.config.Ingest,
		s.writer,
	)
	if m := s.config.Meilisearch; m.Enabled() {
		s.ingest.WithIndexer(clients.NewMeiliIndexer(m.URL, m.APIKey, m.Index, s.writer))
		s.log.Log("Search index sync enabled: %s/%s", m.URL, m.Index)
	}

	s.comparison = comparison.NewService(s.store.Products, s.config.Display, s.writer)
}

func (s *CompareServer) Handler() http.Handler {
	webhook := s.config.Webhook
	return web.SetupRoutes(web.Routes{
		Webhook:        handlers.NewWebhookHandler(s.ingest, s.writer),
		Compare:        handlers.NewCompareHandler(s.comparison, s.store.Categories),
		Health:         handlers.NewHealthHandler(s),
		JWTSecret:      webhook.JWTSecret,
		WebhookLimiter: rate.NewLimiter(rate.Limit(webhook.RateLimit), webhook.Burst),
		AllowedOrigins: s.config.Cors.AllowedOrigins,
	}, s.log)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *CompareServer) Run(ctx context.Context) error {
	if err := s.Open(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Log("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Log("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// IngestFile runs one batch over a dataset exported to a local JSON file.
func (s *CompareServer) IngestFile(ctx context.Context, category, source, path string) (*ingest.Result, error) {
	if err := s.Open(); err != nil {
		return nil, err
	}
	items, err := clients.LoadItemsFile(path)
	if err != nil {
		return nil, err
	}
	return s.ingest.IngestItems(ctx, category, source, items)
}
