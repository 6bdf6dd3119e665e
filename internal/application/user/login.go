package user

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService        user.Service
	jwtManager         *jwt.Manager
	sessionStore       *redis.SessionStore
	refreshTokenExpire time.Duration
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	refreshTokenExpire time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:        userService,
		jwtManager:         jwtManager,
		sessionStore:       sessionStore,
		refreshTokenExpire: refreshTokenExpire,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	accessToken, err := uc.jwtManager.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := uc.jwtManager.GenerateRefreshToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis(有效期与Refresh Token一致)
	// 会话保存失败不影响登录,只记录日志
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"login_at": time.Now().Unix(),
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.refreshTokenExpire); err != nil {
		log.Printf("保存会话失败: %v", err)
	}

	return &LoginResponse{
		User: UserInfo{
			ID:    u.ID,
			Email: u.Email,
			Role:  string(u.Role),
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore      *redis.SessionStore
	accessTokenExpire time.Duration
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore, accessTokenExpire time.Duration) *LogoutUseCase {
	return &LogoutUseCase{
		sessionStore:      sessionStore,
		accessTokenExpire: accessTokenExpire,
	}
}

// Execute 执行登出
// JWT无状态,登出通过黑名单让Token提前失效
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 2. 将Access Token加入黑名单（黑名单TTL=Token有效期,过期自动清理）
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.accessTokenExpire)
}
