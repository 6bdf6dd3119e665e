//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// 工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	provideReadCache,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewPatronRepository,
	mysql.NewBorrowingRepository,
	mysql.NewTxManager,
	// 应用层各包定义了自己的TxManager消费端接口,都由*mysql.TxManager满足
	wire.Bind(new(appborrowing.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apppatron.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	patron.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewQueryBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	apppatron.NewCreatePatronUseCase,
	apppatron.NewQueryPatronsUseCase,
	apppatron.NewUpdatePatronUseCase,
	apppatron.NewDeletePatronUseCase,
	appborrowing.NewBorrowBookUseCase,
	appborrowing.NewReturnBookUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	redis.NewSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewPatronHandler,
	handler.NewBorrowingHandler,
)

// provideJWTManager 从配置创建JWT管理器
// Wire无法自动从Config提取字段参数,需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideReadCache 按配置选择读缓存实现
func provideReadCache(cfg *config.Config, client *goredis.Client) cache.ReadCache {
	if cfg.Cache.Driver == "redis" {
		return redis.NewCacheStore(client, cfg.Cache.TTL)
	}
	return cache.NewMemory()
}

// provideLoginUseCase 登录用例需要Refresh Token有效期
func provideLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	cfg *config.Config,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

// provideLogoutUseCase 登出用例需要Access Token有效期(黑名单TTL)
func provideLogoutUseCase(sessionStore *redis.SessionStore, cfg *config.Config) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	patronHandler *handler.PatronHandler,
	borrowingHandler *handler.BorrowingHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	registerRoutes(r, userHandler, bookHandler, patronHandler, borrowingHandler, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖链的正确顺序调用所有构造函数
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
