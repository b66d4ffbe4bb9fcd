package user

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/furnistore/internal/domain/user"
	"github.com/xiebiao/furnistore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/furnistore/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名（或邮箱）和密码
// 2. 生成JWT Token对，并挂到用户实体上（结算前的登录校验看这个）
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名/邮箱+密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Account, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID(), u.Username())
	if err != nil {
		return nil, err
	}

	// 3. Token挂到用户实体上，实体进入"已认证"状态
	u.SetToken(tokenPair.AccessToken)

	// 4. 保存会话到Redis
	sessionData := map[string]interface{}{
		"user_id":  u.ID(),
		"username": u.Username(),
		"login_at": time.Now().Unix(),
	}

	// 会话有效期 = Refresh Token有效期
	if err := uc.sessionStore.SaveSession(ctx, u.ID(), sessionData, 7*24*time.Hour); err != nil {
		// 会话保存失败不影响登录，只记录日志
		log.Printf("⚠️ 会话保存失败(user_id=%s): %v", u.ID(), err)
	}

	// 5. 返回登录响应
	return &LoginResponse{
		User: UserInfo{
			ID:              u.ID(),
			Username:        u.Username(),
			FullName:        u.FullName(),
			Email:           u.Email(),
			ShippingAddress: u.ShippingAddress(),
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	userService  user.Service
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(userService user.Service, sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{userService: userService, sessionStore: sessionStore}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID, accessToken string) error {
	// 1. 清掉实体上的Token，实体回到"未认证"状态
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	uc.userService.Logout(u)

	// 2. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 3. 将Access Token加入黑名单（防止Token在过期前继续使用）
	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour); err != nil {
		return err
	}

	return nil
}

// RefreshTokenUseCase 刷新Token用例
// 用Refresh Token换新的Access Token，用户无需重新输入密码
type RefreshTokenUseCase struct {
	jwtManager *jwt.Manager
}

// NewRefreshTokenUseCase 创建刷新Token用例
func NewRefreshTokenUseCase(jwtManager *jwt.Manager) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager}
}

// Execute 执行刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshTokenResponse, error) {
	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}

	return &RefreshTokenResponse{AccessToken: accessToken}, nil
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
// Account字段同时接受用户名和邮箱
type LoginRequest struct {
	Account  string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// UserInfo 用户信息
type UserInfo struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
}

// RefreshTokenResponse 刷新Token响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}
