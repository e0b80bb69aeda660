package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/route"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/user"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/cache"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/database"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
	"github.com/rafaelduarte/gestor-compras/pkg/storage"
)

// App representa a aplicação e suas dependências
type App struct {
	router       *gin.Engine
	db           *pgxpool.Pool
	estoqueCache cache.EstoqueCache
	logger       logger.Logger
}

// NewApp cria uma nova instância do aplicativo com todas as dependências
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	if os.Getenv("SKIP_MIGRATIONS") != "true" {
		if err := database.RunMigrations(); err != nil {
			return nil, err
		}
	}

	// Cache de estoque: Redis quando configurado, senão noop
	var estoqueCache cache.EstoqueCache = cache.NoopEstoqueCache{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		redisCache := cache.NewRedisEstoqueCache(addr, os.Getenv("REDIS_PASSWORD"), redisDB)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis indisponível, seguindo sem cache de estoque", "addr", addr, "error", err)
		} else {
			estoqueCache = redisCache
			log.Info("cache de estoque no redis", "addr", addr)
		}
	}

	// Armazenamento de arquivos (notas fiscais, imagens)
	files, err := storage.NewFileStorage(os.Getenv("UPLOAD_DIR"))
	if err != nil {
		return nil, err
	}

	// Repositórios
	orderRepo := repository.NewOrderRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	stockRepo := repository.NewStockRepository(db)
	fiscalRepo := repository.NewFiscalRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	backupRepo := repository.NewBackupRepository(db)

	if err := seedAdmin(userRepo, log); err != nil {
		return nil, err
	}

	// Controllers
	orderController := controller.NewOrderController(orderRepo, estoqueCache, log)
	commissionController := controller.NewCommissionController(commissionRepo, orderRepo, log)
	stockController := controller.NewStockController(stockRepo, estoqueCache, log)
	fiscalController := controller.NewFiscalController(fiscalRepo, orderRepo, files, log)
	financeController := controller.NewFinanceController(financeRepo, orderRepo, log)
	authController := controller.NewAuthController(userRepo, log)
	userController := controller.NewUserController(userRepo, log)
	imageController := controller.NewImageController(imageRepo, files, log)
	backupController := controller.NewBackupController(backupRepo, estoqueCache, log)
	reportController := controller.NewReportController(orderRepo, log)

	// Router
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	route.RegisterAuthRoutes(api, authController)
	route.RegisterOrderRoutes(api, orderController)
	route.RegisterCommissionRoutes(api, commissionController)
	route.RegisterStockRoutes(api, stockController)
	route.RegisterFiscalRoutes(api, fiscalController)
	route.RegisterFinanceRoutes(api, financeController)
	route.RegisterImageRoutes(api, imageController)
	route.RegisterBackupRoutes(api, backupController)
	route.RegisterUserRoutes(api, userController)
	route.RegisterReportRoutes(api, reportController)

	return &App{
		router:       router,
		db:           db,
		estoqueCache: estoqueCache,
		logger:       log,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if c, ok := a.estoqueCache.(*cache.RedisEstoqueCache); ok {
		c.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// corsConfig monta a configuração de CORS a partir do ambiente
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = []string{origins}
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return cfg
}

// seedAdmin cria o administrador inicial quando ainda não existe nenhum.
// Usa ADMIN_EMAIL e ADMIN_PASSWORD; sem essas variáveis nada é criado.
func seedAdmin(userRepo user.Repository, log logger.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := userRepo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	admin, err := user.NewUser("Administrador", email, password, user.RoleAdmin)
	if err != nil {
		return err
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			return nil
		}
		return err
	}

	log.Info("administrador inicial criado", "email", email)
	return nil
}
