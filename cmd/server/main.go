package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // Loads .env files into the environment
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/auction"    // Auction domain service
	"github.com/iliyamo/auction-house/internal/config"     // Internal config loader
	"github.com/iliyamo/auction-house/internal/database"   // MySQL connection pool
	"github.com/iliyamo/auction-house/internal/handler"    // HTTP handlers
	"github.com/iliyamo/auction-house/internal/middleware" // Cache + rate limit middleware
	"github.com/iliyamo/auction-house/internal/queue"      // RabbitMQ consumer
	"github.com/iliyamo/auction-house/internal/repository" // Data access layer
	"github.com/iliyamo/auction-house/internal/router"     // Route registration
	queue_publisher "github.com/iliyamo/auction-house/internal/service"
)

func main() {
	// Load variables from a local .env file when present.  Missing files are
	// fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open the MySQL pool and fail fast when the database is unreachable.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the single pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	bids := repository.NewBidRepo(db)
	comments := repository.NewCommentRepo(db)
	watchlist := repository.NewWatchlistRepo(db)

	// The auction service owns the bidding and closing rules; handlers stay
	// thin and translate errors into HTTP status codes.
	svc := auction.NewService(listings, bids, comments, watchlist)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(svc)
	listingH := handler.NewListingHandler(svc, listings, queue_publisher.NewPublisher())
	watchH := handler.NewWatchlistHandler(svc)

	e := echo.New() // Create Echo instance

	// Redis backs both the response cache for public browse endpoints and
	// the token bucket guarding the bid endpoint.  Either middleware may be
	// disabled via its own config flag.
	rdb := config.NewRedisClient()
	var cacheMW echo.MiddlewareFunc
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled && rdb != nil {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
	}
	var bidLimiter echo.MiddlewareFunc
	if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled && rdb != nil {
		bidLimiter = middleware.NewTokenBucket(rlCfg, rdb)
	}

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheMW)
	router.RegisterUser(e, listingH, watchH, cfg.JWTSecret, bidLimiter)

	// The consumer tails auction events (bids placed, listings closed) into
	// logs/auction.log and reconnects on broker failures.
	go func() {
		if err := queue.StartAuctionConsumer(); err != nil {
			log.Printf("auction consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
