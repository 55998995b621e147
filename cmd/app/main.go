package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/sushihentaime/bloggraph/internal/blogservice"
	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/graph"
	"github.com/sushihentaime/bloggraph/internal/mailservice"
	"github.com/sushihentaime/bloggraph/internal/metrics"
	"github.com/sushihentaime/bloggraph/internal/schema"
	"github.com/sushihentaime/bloggraph/internal/store"
	"github.com/sushihentaime/bloggraph/internal/store/memstore"
	"github.com/sushihentaime/bloggraph/internal/store/pgstore"
	"github.com/sushihentaime/bloggraph/internal/userservice"
)

type application struct {
	config *Config
	logger *slog.Logger
	schema *graph.Schema

	limiterMu sync.Mutex
	limiters  *common.Cache
}

func newApplication(cfg *Config, logger *slog.Logger, st *store.Store, mb common.MessageProducer) *application {
	users := userservice.NewUserService(st.Users, mb, logger)
	blogs := blogservice.NewBlogService(st, mb, logger)

	return &application{
		config:   cfg,
		logger:   logger,
		schema:   schema.New(users, blogs, graph.WithErrorHook(metrics.RecordGraphError)),
		limiters: common.NewCache(3*time.Minute, 5*time.Minute),
	}
}

func newLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	err := run()
	if err != nil {
		slog.Error("application stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the application and serves until shutdown. Every resource it opens is released
// before it returns.
func run() error {
	cfg, err := loadConfig(".env")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := newLogger(cfg.Environment)
	slog.SetDefault(logger)

	st, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage, err)
	}
	defer closeStore()

	var producer common.MessageProducer = common.NoopProducer{}

	if cfg.RabbitMQ.Host != "" {
		broker, err := common.NewMessageBroker(common.AMQPURI(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password))
		if err != nil {
			return fmt.Errorf("connect to the message broker: %w", err)
		}
		defer broker.Close()

		err = common.SetupBlogExchange(broker)
		if err != nil {
			return fmt.Errorf("setup the blog exchange: %w", err)
		}
		producer = broker

		if cfg.Mail.Host != "" {
			mailService := mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger)
			mailService.SendWelcomeEmail()
			defer mailService.Close()
		}
	} else {
		logger.Info("no message broker configured, events are dropped")
	}

	app := newApplication(cfg, logger, st, producer)

	return app.serve(cfg.Port)
}

// openStore returns the store selected by cfg.Storage and a function releasing it.
func openStore(cfg *Config, logger *slog.Logger) (*store.Store, func(), error) {
	switch cfg.Storage {
	case storageMemory, "":
		return memstore.New(memstore.Options{UniquePairs: true}), func() {}, nil

	case storagePostgres:
		db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 25, 25, 15*time.Minute)
		if err != nil {
			return nil, nil, err
		}

		m, err := common.Migrate(cfg.MigrationsPath, common.PostgresURI(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name))
		if err != nil {
			common.CloseDB(db)
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		version, _, _ := m.Version()
		m.Close()
		logger.Info("database migrated", slog.Int("version", int(version)))

		return pgstore.New(db), func() { common.CloseDB(db) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
