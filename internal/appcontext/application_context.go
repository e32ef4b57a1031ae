package appcontext

import (
	"context"
	"fmt"
	"os"

	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/infra/cache"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/redis_client"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/memdb"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/logger"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/ratelimit"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/token"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const redisKeyPrefix = "storefront"

type ApplicationContext struct {
	Cf                 *config.Config
	Logger             *zerolog.Logger
	Store              db.Store
	RedisClient        *redis.Client
	OrderCacheRepo     redis_repo.IOrderCacheRepository
	OrderEventProducer producer.IOrderEventProducer
	TokenMaker         token.Maker
	CheckoutLimiter    ratelimit.Limiter
	OrderService       service.IOrderService
	OrderQueryService  service.IOrderQueryService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf:     cf,
		Logger: logger.New(cf.Env, os.Stdout),
	}

	err := app.Init()
	if err != nil {
		// 已建立的連線要釋放
		_ = app.Shutdown(context.Background())
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.Logger.Info().
		Str("env", app.Cf.Env).
		Str("store_driver", app.Cf.StoreDriver).
		Bool("redis", app.Cf.RedisAddr != "").
		Bool("kafka", len(app.Cf.Brokers()) > 0).
		Msg("Start init application context")

	setups := []func() error{
		app.setUpStore,
		app.dbInit,
		app.setUpOrderCache,
		app.setUpEventProducer,
		app.setUpTokenMaker,
		app.setUpCheckoutLimiter,
		app.setUpOrderService,
		app.setUpOrderQueryService,
	}
	for _, setup := range setups {
		if err := setup(); err != nil {
			return err
		}
	}
	return nil
}

func (app *ApplicationContext) setUpStore() error {
	app.Logger.Info().Msg("Start setup store")
	switch app.Cf.StoreDriver {
	case config.StoreDriverMemory:
		app.Store = memdb.NewStore()
	default:
		if err := db.RunDBMigration(app.Cf.MigrationURL, app.Cf.MigrationDSN()); err != nil {
			return fmt.Errorf("run db migration: %w", err)
		}
		conn, err := db.GetDbConn(app.Cf.DSN())
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		app.Store = db.NewGormStore(conn)
	}
	app.Logger.Info().Msg("Finish setup store")
	return nil
}

// db seed data, SEED_FILE 未設定時略過
func (app *ApplicationContext) dbInit() error {
	if app.Cf.SeedFile == "" {
		return nil
	}
	app.Logger.Info().Str("seed_file", app.Cf.SeedFile).Msg("Start setup db init")

	seed, err := config.LoadSeedConfig(app.Cf.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}
	if err := seedStore(context.Background(), app.Store, seed); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}

	app.Logger.Info().Msg("Finish setup db init")
	return nil
}

func (app *ApplicationContext) setUpOrderCache() error {
	if app.Cf.RedisAddr == "" {
		app.OrderCacheRepo = redis_repo.NopOrderCacheRepo{}
		return nil
	}

	app.Logger.Info().Str("addr", app.Cf.RedisAddr).Msg("Start setup order cache")
	client, err := redis_client.GetRedisClient(
		app.Cf.RedisAddr,
		redis_client.WithPassword(app.Cf.RedisPassword),
		redis_client.WithDB(app.Cf.RedisDB),
		redis_client.WithPoolSize(app.Cf.RedisPoolSize),
	)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	app.RedisClient = client
	app.OrderCacheRepo = redis_repo.NewOrderCacheRepo(cache.NewRedisCache(client, redisKeyPrefix), app.Cf.OrderCacheTTL)
	app.Logger.Info().Msg("Finish setup order cache")
	return nil
}

func (app *ApplicationContext) setUpEventProducer() error {
	brokers := app.Cf.Brokers()
	if len(brokers) == 0 {
		app.OrderEventProducer = producer.NopOrderEventProducer{}
		return nil
	}

	app.Logger.Info().Strs("brokers", brokers).Str("topic", app.Cf.KafkaOrderTopic).Msg("Start setup event producer")
	cfg := producer.DefaultConfig(brokers, app.Cf.KafkaOrderTopic)
	writer, err := producer.NewKafkaWriter(cfg, app.Logger)
	if err != nil {
		return fmt.Errorf("create kafka writer: %w", err)
	}
	app.OrderEventProducer = producer.NewOrderEventProducer(writer, cfg.RetryAttempts)
	app.Logger.Info().Msg("Finish setup event producer")
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	tokenMaker, err := token.NewPasetoMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("無法創建 token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	return nil
}

// 有 redis 時多個 instance 共用 bucket, 否則使用單機 bucket
func (app *ApplicationContext) setUpCheckoutLimiter() error {
	if app.Cf.CheckoutRateCapacity == 0 {
		return nil
	}

	cfg := ratelimit.Config{Capacity: app.Cf.CheckoutRateCapacity, RatePS: app.Cf.CheckoutRatePerSec}
	if app.RedisClient != nil {
		limiter, err := ratelimit.NewRedisTokenBucket(app.RedisClient, redisKeyPrefix, cfg)
		if err != nil {
			return fmt.Errorf("create checkout limiter: %w", err)
		}
		app.CheckoutLimiter = limiter
		return nil
	}

	limiter, err := ratelimit.NewTokenBucket(cfg)
	if err != nil {
		return fmt.Errorf("create checkout limiter: %w", err)
	}
	app.CheckoutLimiter = limiter
	return nil
}

func (app *ApplicationContext) setUpOrderService() error {
	app.OrderService = service.NewOrderService(app.Store, app.OrderCacheRepo, app.OrderEventProducer, app.Logger)
	return nil
}

func (app *ApplicationContext) setUpOrderQueryService() error {
	app.OrderQueryService = service.NewOrderQueryService(app.Store, app.OrderCacheRepo, app.Logger)
	return nil
}

// Shutdown 同時關閉 producer, redis 與 store, 任一失敗不影響其他
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("Start application shutdown")

	var g errgroup.Group
	if app.OrderEventProducer != nil {
		g.Go(func() error {
			if err := app.OrderEventProducer.Close(); err != nil {
				return fmt.Errorf("close event producer: %w", err)
			}
			return nil
		})
	}
	if app.Cf.RedisAddr != "" {
		g.Go(func() error {
			if err := redis_client.CloseRedisClient(app.Cf.RedisAddr); err != nil {
				return fmt.Errorf("close redis: %w", err)
			}
			return nil
		})
	}
	if app.Store != nil {
		g.Go(func() error {
			if err := app.Store.Close(); err != nil {
				return fmt.Errorf("close store: %w", err)
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			app.Logger.Error().Err(err).Msg("Application shutdown with error")
			return err
		}
		app.Logger.Info().Msg("Application shutdown complete")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
