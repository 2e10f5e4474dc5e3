package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/documents"
	"projectdocs-backend/internal/services/health"
	"projectdocs-backend/internal/shared/config"
	"projectdocs-backend/internal/shared/optional"
	"projectdocs-backend/internal/shared/server"
	"projectdocs-backend/internal/shared/server/middleware"
	"projectdocs-backend/internal/shared/storage/db"
	"projectdocs-backend/internal/shared/storage/object"
	localstore "projectdocs-backend/internal/shared/storage/object/local"
	miniostore "projectdocs-backend/internal/shared/storage/object/minio"
	s3store "projectdocs-backend/internal/shared/storage/object/s3"
	"projectdocs-backend/internal/shared/telemetry"
)

// App holds the dependencies built once at process start.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Primary          optional.Value[object.Client]
	Fallback         optional.Value[object.Client]
	DocumentsRepo    optional.Value[documents.Repo]
	Uploader         *documents.Uploader
	Query            *documents.Query
	DocumentsHandler *documents.Handler
}

// Build wires storage backends, the document store and the HTTP router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := telemetry.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	sqlDB, repo, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	primary, err := buildPrimary(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	fallback, err := buildFallback(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config:        cfg,
		DB:            sqlDB,
		Primary:       primary,
		Fallback:      fallback,
		DocumentsRepo: repo,
	}

	// Previews are signed by the fallback backend; the primary only
	// contributes public URLs when no fallback exists.
	app.Uploader = documents.NewUploader(primary, fallback, repo)
	app.Query = documents.NewQuery(repo, fallback, primary)
	app.DocumentsHandler = documents.NewHandler(app.Uploader, app.Query)

	dbPinger := optional.None[health.Pinger]()
	if sqlDB != nil {
		dbPinger = optional.Some[health.Pinger](sqlDB)
	}

	deps := server.RouterDeps{
		Config:          cfg,
		DocumentHandler: app.DocumentsHandler,
		Health:          health.NewService(dbPinger),
		UploadRule: middleware.RateLimitRule{
			Rate:  cfg.UploadRatePerSecond,
			Burst: cfg.UploadRateBurst,
		},
	}
	if client, ok := fallback.Get(); ok {
		if files, ok := client.(*localstore.Store); ok {
			deps.LocalFiles = files
		}
	}
	app.Router = server.NewRouter(deps)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":           cfg.Env,
		"primary":       cfg.PrimaryStore,
		"fallback":      cfg.FallbackStore,
		"database":      sqlDB != nil,
		"documentStore": repo.Configured(),
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildRepo(ctx context.Context, cfg config.Config) (*sql.DB, optional.Value[documents.Repo], error) {
	none := optional.None[documents.Repo]()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, optional.Some[documents.Repo](documents.NewMemoryRepo()), nil
		}
		telemetry.Warn("bootstrap.database_unconfigured", nil)
		return nil, none, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"err": err})
			return nil, optional.Some[documents.Repo](documents.NewMemoryRepo()), nil
		}
		return nil, none, err
	}

	return sqlDB, optional.Some[documents.Repo](&documents.PGRepo{DB: sqlDB}), nil
}

func buildPrimary(ctx context.Context, cfg config.Config) (optional.Value[object.Client], error) {
	switch cfg.PrimaryStore {
	case config.StoreS3:
		store, err := s3store.New(ctx, s3store.Options{
			Backend:       object.BackendPrimary,
			Region:        cfg.AWSRegion,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return optional.None[object.Client](), fmt.Errorf("primary store: %w", err)
		}
		return optional.Some[object.Client](store), nil
	default:
		return optional.None[object.Client](), nil
	}
}

func buildFallback(ctx context.Context, cfg config.Config) (optional.Value[object.Client], error) {
	switch cfg.FallbackStore {
	case config.StoreMinIO:
		store, err := miniostore.New(miniostore.Options{
			Backend:       object.BackendFallback,
			Endpoint:      cfg.MinIOEndpoint,
			AccessKey:     cfg.MinIOAccessKey,
			SecretKey:     cfg.MinIOSecretKey,
			Bucket:        cfg.MinIOBucket,
			UseSSL:        cfg.MinIOUseSSL,
			Region:        cfg.MinIORegion,
			PublicBaseURL: cfg.MinIOPublicBaseURL,
		})
		if err != nil {
			return optional.None[object.Client](), fmt.Errorf("fallback store: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			if !cfg.IsDevLike() {
				return optional.None[object.Client](), fmt.Errorf("fallback store: %w", err)
			}
			telemetry.Warn("bootstrap.fallback_bucket", map[string]any{"err": err})
		}
		return optional.Some[object.Client](store), nil
	case config.StoreLocal:
		store := localstore.New(object.BackendFallback, cfg.LocalStoreDir, cfg.LocalPublicBaseURL)
		return optional.Some[object.Client](store), nil
	default:
		return optional.None[object.Client](), nil
	}
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}
