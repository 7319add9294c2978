package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/micromouse-api/api"
	api_i "github.com/beka-birhanu/micromouse-api/api/i"
	"github.com/beka-birhanu/micromouse-api/api/identity"
	"github.com/beka-birhanu/micromouse-api/api/simapi"
	"github.com/beka-birhanu/micromouse-api/config"
	"github.com/beka-birhanu/micromouse-api/infrastruture/leaderboard"
	"github.com/beka-birhanu/micromouse-api/infrastruture/logger"
	"github.com/beka-birhanu/micromouse-api/infrastruture/policycache"
	"github.com/beka-birhanu/micromouse-api/infrastruture/repo"
	"github.com/beka-birhanu/micromouse-api/infrastruture/token"
	"github.com/beka-birhanu/micromouse-api/service"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient           *mongo.Client
	redisClient           *redis.Client
	userRepo              i.UserRepo
	mazeRepo              i.MazeRepo
	runRepo               i.RunRepo
	policyCache           i.PolicyCache
	scoreBoard            i.Leaderboard
	jwtTokenizer          i.Tokenizer
	authService           i.Authenticator
	mazeCatalog           i.MazeCatalog
	runService            i.RunService
	authController        api_i.Controller
	mazeController        api_i.Controller
	runController         api_i.Controller
	leaderboardController api_i.Controller
	router                *api.Router
	appLogger             i.Logger
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
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
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
	runRepo = repo.NewRunRepo(client, config.Envs.DBName, "runs")
	appLogger.Info("Repositories initialized")
}

func initPolicyCache() {
	var err error
	policyCache, err = policycache.New(redisClient, config.Envs.PolicyCacheTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating policy cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Policy cache initialized")
}

func initLeaderboard() {
	var err error
	scoreBoard, err = leaderboard.New(redisClient, "leaderboard")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
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

func initMazeCatalog() {
	catalogLogger, err := logger.New("MAZE-CATALOG", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze catalog logger: %v", err))
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	mazeCatalog, err = service.NewMazeCatalog(mazeRepo, catalogLogger, rng)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze catalog: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze catalog initialized")
}

func initRunService() {
	simLogger, err := logger.New("SIM", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sim logger: %v", err))
		os.Exit(1)
	}

	runService, err = service.NewRunService(
		runRepo,
		mazeRepo,
		userRepo,
		policyCache,
		scoreBoard,
		simLogger,
		service.RunOptions{
			TimeBudget: config.Envs.SimTimeBudget,
			StepCost:   config.Envs.SimStepCost,
		},
	)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run service initialized")
}

func initControllers() {
	var err error
	authController = identity.NewIdentityServer(authService)

	mazeController, err = simapi.NewMazeController(mazeCatalog)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}

	runController, err = simapi.NewRunController(runService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run controller: %v", err))
		os.Exit(1)
	}

	leaderboardController, err = simapi.NewLeaderboardController(scoreBoard)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController, runController, leaderboardController},
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
	initPolicyCache()
	initLeaderboard()
	initJWTTokenizer()
	initAuthService()
	initMazeCatalog()
	initRunService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}

	// Allow time for cleanup operations (TODO: use WaitGroups instead)
	time.Sleep(2 * time.Second)
}
