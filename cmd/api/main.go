// 图书馆管理系统API入口
//
// @title        图书馆管理系统API
// @version      1.0
// @description  图书、读者与借阅管理,核心是借阅一致性引擎
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/library/internal/application/book"
	appborrowing "github.com/xiebiao/library/internal/application/borrowing"
	apppatron "github.com/xiebiao/library/internal/application/patron"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/patron"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/cache"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
	"github.com/xiebiao/library/pkg/validator"
)

// main 主程序入口
// 说明：手动依赖注入(wire.go中有等价的Wire配置,运行wire gen生成)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - 缓存驱动: %s\n", cfg.Cache.Driver)

	// 2. 注册自定义校验器(isbn、pubyear)
	if err := validator.Register(); err != nil {
		log.Fatalf("注册校验器失败: %v", err)
	}

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接(会话存储必须;读缓存按配置)
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 读缓存:按配置选择进程内缓存或Redis
	var readCache cache.ReadCache
	if cfg.Cache.Driver == "redis" {
		readCache = redis.NewCacheStore(redisClient, cfg.Cache.TTL)
	} else {
		readCache = cache.NewMemory()
	}

	// 6. 依赖注入（手动组装）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	patronRepo := mysql.NewPatronRepository(db)
	recordRepo := mysql.NewBorrowingRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	patronService := patron.NewService(patronRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)

	createBookUseCase := appbook.NewCreateBookUseCase(bookService, readCache)
	queryBooksUseCase := appbook.NewQueryBooksUseCase(bookService, readCache)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, readCache)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookRepo, recordRepo, txManager, readCache)

	createPatronUseCase := apppatron.NewCreatePatronUseCase(patronService, readCache)
	queryPatronsUseCase := apppatron.NewQueryPatronsUseCase(patronService, patronRepo, recordRepo, readCache)
	updatePatronUseCase := apppatron.NewUpdatePatronUseCase(patronService, readCache)
	deletePatronUseCase := apppatron.NewDeletePatronUseCase(patronRepo, recordRepo, txManager, readCache)

	borrowUseCase := appborrowing.NewBorrowBookUseCase(bookRepo, patronRepo, recordRepo, txManager, readCache)
	returnUseCase := appborrowing.NewReturnBookUseCase(bookRepo, recordRepo, txManager, readCache)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(createBookUseCase, queryBooksUseCase, updateBookUseCase, deleteBookUseCase)
	patronHandler := handler.NewPatronHandler(createPatronUseCase, queryPatronsUseCase, updatePatronUseCase, deletePatronUseCase)
	borrowingHandler := handler.NewBorrowingHandler(borrowUseCase, returnUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// 8. 注册路由
	registerRoutes(r, userHandler, bookHandler, patronHandler, borrowingHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 读接口公开,写接口需要登录
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	patronHandler *handler.PatronHandler,
	borrowingHandler *handler.BorrowingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档(访问 /swagger/index.html)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// 认证模块
		auth := api.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := api.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)
			books.POST("", authMiddleware.RequireAuth(), bookHandler.Create)
			books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.Update)
			books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.Delete)
		}

		// 读者模块
		patrons := api.Group("/patrons")
		{
			patrons.GET("", patronHandler.List)
			patrons.GET("/:id", patronHandler.Get)
			patrons.GET("/:id/borrowings", patronHandler.History)
			patrons.POST("", authMiddleware.RequireAuth(), patronHandler.Create)
			patrons.PUT("/:id", authMiddleware.RequireAuth(), patronHandler.Update)
			patrons.DELETE("/:id", authMiddleware.RequireAuth(), patronHandler.Delete)
		}

		// 借阅模块(需要登录)
		api.POST("/borrow/:bookId/patron/:patronId", authMiddleware.RequireAuth(), borrowingHandler.Borrow)
		api.PUT("/return/:bookId/patron/:patronId", authMiddleware.RequireAuth(), borrowingHandler.Return)
	}
}
