package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Followingae/rfm-case-submit/internal/api"
	"github.com/Followingae/rfm-case-submit/internal/config"
	"github.com/Followingae/rfm-case-submit/internal/repository"
	"github.com/Followingae/rfm-case-submit/internal/session"
	"github.com/Followingae/rfm-case-submit/internal/storage"
	"github.com/Followingae/rfm-case-submit/internal/upload"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "rfm-case-submit.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	// Initialize the intake repository
	repo := repository.NewNoopRepository()
	if cfg.Persistence.Enabled {
		db, err := repository.NewSQLiteDB(cfg.Persistence.DatabaseFile)
		if err != nil {
			fmt.Printf("Failed to open intake database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := repository.RunMigrations(db); err != nil {
			fmt.Printf("Failed to migrate intake database: %v\n", err)
			os.Exit(1)
		}
		repo = repository.NewRepository(db)
	}

	// Initialize the object store mirror
	var objects repository.ObjectStore = repository.NoopObjectStore{}
	if cfg.ObjectStore.Enabled {
		objects, err = repository.NewObjectStore(
			cfg.ObjectStore.Endpoint,
			cfg.ObjectStore.AccessKey,
			cfg.ObjectStore.SecretKey,
			cfg.ObjectStore.Bucket,
			cfg.ObjectStore.UseSSL,
		)
		if err != nil {
			fmt.Printf("Warning: object store unavailable, uploads will not be mirrored: %v\n", err)
			objects = repository.NoopObjectStore{}
		}
	}

	// Initialize case manager
	caseMgr := session.NewManager()

	// Initialize WebSocket job event handler
	wsHandler := api.NewWebSocketHandler()

	// Initialize upload processing manager
	uploadMgr := upload.NewManager(fileStore, caseMgr, repo, objects, wsHandler)

	// Start background cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Processing.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			caseMgr.CleanupOldCases(time.Duration(cfg.Processing.CaseTimeoutMinutes) * time.Minute)
			uploadMgr.CleanupOldJobs(time.Duration(cfg.Processing.JobMaxAgeMinutes) * time.Minute)
		}
	}()

	// Initialize API handler
	h := api.NewHandlers(&api.Dependencies{
		Store:   fileStore,
		Cases:   caseMgr,
		Uploads: uploadMgr,
		Repo:    repo,
		Version: Version,
	})

	e := echo.New()
	e.HideBanner = true

	api.SetupMiddleware(e)

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api/jobs/") || path == "/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
		LogLevel:          0,
	}))

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.Contains(path, "/files") ||
				strings.Contains(path, "/export") ||
				strings.Contains(path, "/ws/")
		},
		ErrorMessage: "Request timeout - query took too long",
	}))

	// Body limit middleware
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// CORS configuration
	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	// Routes
	api.RegisterRoutes(e, h)
	api.RegisterWebSocketRoutes(e, wsHandler)

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	persistence := "disabled"
	if cfg.Persistence.Enabled {
		persistence = cfg.Persistence.DatabaseFile
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           RFM Case Submit Portal                          ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("║  Database:  %-46s║\n", persistence)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
