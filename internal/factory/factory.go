package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/trouze/movienight/internal/dependencies/clock"
	"github.com/trouze/movienight/internal/dependencies/random"
	"github.com/trouze/movienight/internal/metadata"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/pubsub"
	"github.com/trouze/movienight/internal/rotation"
	"github.com/trouze/movienight/internal/services/auth"
	"github.com/trouze/movienight/internal/services/catalog"
	"github.com/trouze/movienight/internal/services/chat"
	"github.com/trouze/movienight/internal/storage"
	"github.com/trouze/movienight/internal/storage/memory"
	redisstorage "github.com/trouze/movienight/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Realtime transport
	Broker *pubsub.Broker

	// Services
	AuthService        *auth.Service
	Roster             *rotation.Roster
	RotationController *rotation.Controller
	ChatService        *chat.Service
	CatalogService     *catalog.Service
	Finder             metadata.Finder
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// RosterAllowList pins the rotation order to these member IDs.
	// Empty means every registered member rotates, in registry order.
	RosterAllowList []model.MemberID
	// TMDBConfig configures the metadata provider (optional)
	// If nil or the API key is empty, metadata lookups are disabled.
	TMDBConfig *metadata.TMDBConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	var finder metadata.Finder
	if cfg.TMDBConfig != nil && cfg.TMDBConfig.APIKey != "" {
		finder = metadata.NewTMDBClient(*cfg.TMDBConfig)
	}

	return newWithDependencies(store, clk, rnd, authCfg, cfg.RosterAllowList, finder, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	allowList []model.MemberID,
	finder metadata.Finder,
	logger *slog.Logger,
) *App {
	broker := pubsub.NewBroker(logger)
	authService := auth.New(store, clk, rnd, authCfg, logger)
	roster := rotation.NewRoster(store, allowList)
	rotationController := rotation.NewController(store, broker, authService, roster, logger)
	chatService := chat.New(store, broker, clk, rnd, logger)
	catalogService := catalog.New(store, finder, authService, clk, rnd, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Broker:             broker,
		AuthService:        authService,
		Roster:             roster,
		RotationController: rotationController,
		ChatService:        chatService,
		CatalogService:     catalogService,
		Finder:             finder,
	}
}

// Close releases the app's long-lived resources
func (a *App) Close() error {
	a.Broker.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
