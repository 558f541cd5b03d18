package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mazehub/mazehub-api/api"
	builderapi "github.com/mazehub/mazehub-api/api/builder"
	api_i "github.com/mazehub/mazehub-api/api/i"
	"github.com/mazehub/mazehub-api/api/identity"
	mazeapi "github.com/mazehub/mazehub-api/api/mazes"
	playapi "github.com/mazehub/mazehub-api/api/play"
	"github.com/mazehub/mazehub-api/config"
	"github.com/mazehub/mazehub-api/infrastruture/feed"
	logger "github.com/mazehub/mazehub-api/infrastruture/log"
	"github.com/mazehub/mazehub-api/infrastruture/repo"
	"github.com/mazehub/mazehub-api/infrastruture/scoreboard"
	"github.com/mazehub/mazehub-api/infrastruture/token"
	"github.com/mazehub/mazehub-api/service"
	"github.com/mazehub/mazehub-api/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient       *mongo.Client
	redisClient       *redis.Client
	userRepo          i.UserRepo
	mazeRepo          i.MazeRepo
	mazeFeed          i.MazeFeed
	solveScoreboard   i.Scoreboard
	jwtTokenizer      i.Tokenizer
	authService       i.Authenticator
	mazeCatalog       i.MazeCatalog
	builderManager    *service.BuilderManager
	playManager       *service.PlayManager
	authController    api_i.Controller
	mazeController    api_i.Controller
	builderController api_i.Controller
	playController    api_i.Controller
	router            *api.Router
	appLogger         i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%v", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Info("Repositories initialized")
}

func initFeed() {
	mazeFeed = feed.NewHub()
	appLogger.Info("Maze feed initialized")
}

func initScoreboard() {
	var err error
	solveScoreboard, err = scoreboard.NewRedisScoreboard(redisClient, config.Envs.ScoreboardTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating scoreboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Scoreboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initCatalog() {
	catalogLogger, err := logger.New("CATALOG", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating catalog logger: %v", err))
		os.Exit(1)
	}

	catalog, err := service.NewCatalog(&service.CatalogConfig{
		MazeRepo:   mazeRepo,
		Feed:       mazeFeed,
		Scoreboard: solveScoreboard,
		Logger:     catalogLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze catalog: %v", err))
		os.Exit(1)
	}
	mazeCatalog = catalog
	appLogger.Info("Maze catalog initialized")
}

func initBuilderManager() {
	builderLogger, err := logger.New("BUILDER", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating builder logger: %v", err))
		os.Exit(1)
	}

	builderManager, err = service.NewBuilderManager(&service.BuilderManagerConfig{
		Catalog: mazeCatalog,
		Rows:    config.Envs.GridRows,
		Cols:    config.Envs.GridCols,
		Logger:  builderLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating builder manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Builder manager initialized")
}

func initPlayManager() {
	playLogger, err := logger.New("PLAY", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating play logger: %v", err))
		os.Exit(1)
	}

	playManager, err = service.NewPlayManager(&service.PlayManagerConfig{
		Catalog:    mazeCatalog,
		UserRepo:   userRepo,
		Scoreboard: solveScoreboard,
		Logger:     playLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating play manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Play manager initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")

	var err error
	mazeController, err = mazeapi.NewMazeController(mazeCatalog, mazeFeed, solveScoreboard)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")

	builderController, err = builderapi.NewBuilderController(builderManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating builder controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Builder controller initialized")

	playController, err = playapi.NewPlayController(playManager, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating play controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Play controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController, builderController, playController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos(mongoClient)
	initFeed()
	initScoreboard()
	initJWTTokenizer()
	initAuthService()
	initCatalog()
	initBuilderManager()
	defer builderManager.Stop()
	initPlayManager()
	defer playManager.Stop()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
