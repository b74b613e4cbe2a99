package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"julianmorley.ca/con-plar/storefront/internal/router"
	"julianmorley.ca/con-plar/storefront/pkg/ai"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/memory"
	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/mongo"
	"julianmorley.ca/con-plar/storefront/pkg/redis"
	"julianmorley.ca/con-plar/storefront/pkg/seed"
	"julianmorley.ca/con-plar/storefront/pkg/service"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	var cfg *global.Config

	app := &cli.App{
		Name:  "storefront",
		Usage: "mobile phone and accessories storefront API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "driver", Usage: "store backend (memory or mongo), overrides STORE_DRIVER"},
			&cli.StringFlag{Name: "port", Usage: "HTTP port, overrides PORT"},
		},
		Before: func(c *cli.Context) error {
			loaded, err := global.LoadConfig()
			if err != nil {
				return err
			}
			if c.IsSet("driver") {
				loaded.StoreDriver = c.String("driver")
			}
			if c.IsSet("port") {
				loaded.Port = c.String("port")
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			global.InitLogger(loaded.LogLevel, loaded.LogFormat)
			cfg = loaded
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Action: func(c *cli.Context) error {
					return serve(c.Context, cfg)
				},
			},
			{
				Name:  "seed",
				Usage: "load the demo catalog into the configured store",
				Action: func(c *cli.Context) error {
					return withStore(cfg, func(ctx context.Context, st store.Store) error {
						_, err := seed.Load(ctx, st)
						return err
					})
				},
			},
			{
				Name:  "indexes",
				Usage: "create the MongoDB indexes",
				Action: func(c *cli.Context) error {
					if cfg.StoreDriver != global.DriverMongo {
						return errors.New("indexes requires STORE_DRIVER=mongo")
					}
					return withStore(cfg, func(ctx context.Context, st store.Store) error {
						return st.(*mongo.Store).EnsureIndexes(ctx)
					})
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("storefront exited")
	}
}

func openStore(ctx context.Context, cfg *global.Config) (store.Store, error) {
	if cfg.StoreDriver == global.DriverMongo {
		st, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	log.Info("Using in-memory store")
	return memory.New(), nil
}

// withStore runs fn against a freshly opened store under the default timeout
func withStore(cfg *global.Config, fn func(context.Context, store.Store) error) error {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if cfg.StoreDriver == global.DriverMemory {
		log.Warn("In-memory store is discarded when the command exits")
	}
	return fn(ctx, st)
}

func closeStore(st store.Store) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := st.Close(ctx); err != nil {
		log.WithError(err).Warn("Failed to close store")
	}
}

func serve(parent context.Context, cfg *global.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := global.GetDefaultTimer()
	defer cancel()

	st, err := openStore(startCtx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if mongoStore, ok := st.(*mongo.Store); ok {
		if err := mongoStore.EnsureIndexes(startCtx); err != nil {
			return err
		}
	}
	if cfg.Seed {
		if _, err := seed.Load(startCtx, st); err != nil {
			return err
		}
	}

	cache := connectCache(startCtx, cfg, st)
	reporter := ai.NewReporter(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AIModel)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewEngine(cfg, router.NewHandler(st, cache, reporter)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(log.Fields{"port": cfg.Port, "driver": cfg.StoreDriver}).Info("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// connectCache returns a warmed product cache, or nil when Redis is not
// configured or unreachable
func connectCache(ctx context.Context, cfg *global.Config, st store.Store) service.ProductCache {
	if cfg.RedisAddress == "" {
		log.Info("Redis cache disabled - REDIS_ADDRESS not provided")
		return nil
	}

	client, err := redis.Connect(ctx, cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		return nil
	}

	cache := redis.NewProductCache(client, cfg.CacheTTL)
	products, err := st.ListProducts(ctx, models.ProductFilter{})
	if err == nil {
		err = cache.CacheProducts(ctx, products)
	}
	if err != nil {
		log.WithError(err).Warn("Failed to warm product cache")
	} else {
		log.WithField("products", len(products)).Info("Product cache warmed")
	}
	return cache
}
