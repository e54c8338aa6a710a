package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/docstore"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/user"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/logging"
	"skill-match/internal/repository"
	"skill-match/internal/usecase"
	"skill-match/internal/ws"
)

// Container is built once at startup and holds both store handles and the
// services wired on top of them.
type Container struct {
	Config config.Config
	Logger logging.Logger

	Stores docstore.Handles
	Cache  *cache.Redis
	Hub    *ws.Hub

	Skills repository.SkillRepository
	Users  user.Repository

	Directory    *usecase.SkillDirectory
	Matching     *usecase.Matching
	Registration *usecase.UserRegistration
}

func NewContainer(ctx context.Context, cfg config.Config, logger logging.Logger) (*Container, error) {
	if _, err := matching.ParsePolicy(cfg.Matching.Policy); err != nil {
		return nil, err
	}
	stores, err := OpenStores(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	c, err := NewContainerFromStores(ctx, cfg, stores, logger)
	if err != nil {
		_ = stores.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerFromStores wires services over already opened stores. The
// container takes ownership of stores and closes them in Close.
func NewContainerFromStores(ctx context.Context, cfg config.Config, stores docstore.Handles, logger logging.Logger) (*Container, error) {
	logger = logging.OrNop(logger)

	policy, err := matching.ParsePolicy(cfg.Matching.Policy)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(ctx, cfg.Redis, logger)
	hub := ws.NewHub(logger)

	skills := repository.NewDocstoreSkillRepository(stores.Skills)
	users := repository.NewDocstoreUserRepository(stores.Users)
	directory := usecase.NewSkillDirectoryUsecase(skills, redisCache, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Stores:       stores,
		Cache:        redisCache,
		Hub:          hub,
		Skills:       skills,
		Users:        users,
		Directory:    directory,
		Matching:     usecase.NewMatchingUsecase(users, directory, policy, logger),
		Registration: usecase.NewUserRegistrationUsecase(users, ws.NewNotifier(hub), logger),
	}, nil
}

// OpenStores connects the users and skills stores. The memory driver shares
// one store between both handles.
func OpenStores(ctx context.Context, cfg config.StoreConfig, logger logging.Logger) (docstore.Handles, error) {
	logger = logging.OrNop(logger)

	switch cfg.Driver {
	case config.StoreDriverPostgres:
		users, err := openPostgres(ctx, "users", cfg.UsersDSN, cfg, logger)
		if err != nil {
			return docstore.Handles{}, err
		}
		skills, err := openPostgres(ctx, "skills", cfg.SkillsDSN, cfg, logger)
		if err != nil {
			_ = users.Close()
			return docstore.Handles{}, err
		}
		return docstore.Handles{Users: users, Skills: skills}, nil

	case config.StoreDriverMemory, "":
		logger.Warn(ctx, "using in-memory document store, data is lost on exit")
		s := docstore.WithTimeout(docstore.NewMemoryStore(), cfg.RequestTimeout)
		return docstore.Handles{Users: s, Skills: s}, nil

	default:
		return docstore.Handles{}, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, project, dsn string, cfg config.StoreConfig, logger logging.Logger) (docstore.Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, dsn, dbpostgres.Options{
		MaxConns:       cfg.PoolMaxConns,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s store: %w", project, err)
	}

	if cfg.MigrationsOnRun {
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate %s store: %w", project, err)
		}
		logger.Info(ctx, "migrations applied", "project", project)
	}

	return docstore.WithTimeout(docstore.NewPostgresStore(db), cfg.RequestTimeout), nil
}

// Migrate applies the embedded document schema to db.
func Migrate(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	return migration.Runner{FS: migration.Embedded()}.Run(ctx, db.SQLDB())
}

func connectTimeout(cfg config.StoreConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout + 5*time.Second
	}
	return 10 * time.Second
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return errors.Join(c.Stores.Close(), c.Cache.Close())
}
