package user

import (
	"context"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/furnistore/pkg/errors"

	"github.com/xiebiao/furnistore/internal/domain/cart"
)

// CartFactory 为新用户创建购物车
// 购物车构造需要库存服务做可用性校验，由装配方注入这个工厂
type CartFactory func() *cart.ShoppingCart

// ProfileUpdate 资料更新请求，nil字段表示不修改
type ProfileUpdate struct {
	FullName        *string
	Email           *string
	ShippingAddress *string
}

// Service 用户目录（用户领域服务）
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（密码加密、凭证校验、资料更新）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. 进程内维护在线用户缓存：购物车和登录态是运行时状态，
//    必须让同一用户的多次请求拿到同一个User实例
// 4. 不做隐式单例，启动时显式构造并注入
type Service interface {
	// Register 用户注册，shippingAddress可传空
	Register(ctx context.Context, username, fullName, email, password, shippingAddress string) (*User, error)

	// Login 用户登录，支持用户名或邮箱
	Login(ctx context.Context, usernameOrEmail, password string) (*User, error)

	// Logout 用户登出，清除登录态
	Logout(u *User)

	// GetByID 根据ID取用户（优先在线缓存）
	GetByID(ctx context.Context, id string) (*User, error)

	// UpdateProfile 更新用户资料
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)

	// UpdatePassword 修改密码，需验证当前密码
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error

	// ValidatePassword 验证明文密码与哈希值是否匹配
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo    Repository
	newCart CartFactory

	mu     sync.RWMutex
	online map[string]*User // id -> 在线用户实例
}

// NewService 创建用户目录
func NewService(repo Repository, newCart CartFactory) Service {
	return &service{
		repo:    repo,
		newCart: newCart,
		online:  make(map[string]*User),
	}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式、姓名长度、地址长度在实体工厂里校验
// 2. 密码强度校验（8位以上，含大小写字母、数字、特殊字符）
// 3. 密码bcrypt加密（cost=12）
// 4. 用户名/邮箱唯一性由数据库UNIQUE索引保证，Repository转换错误
func (s *service) Register(ctx context.Context, username, fullName, email, password, shippingAddress string) (*User, error) {
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 学习要点：
	// - bcrypt自动加盐，每次加密结果都不同（即使密码相同）
	// - cost=12是推荐值，平衡安全性与性能（cost每+1，耗时翻倍）
	// - 不要使用MD5/SHA1，已被证明不安全（彩虹表攻击）
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u, err := NewUser(uuid.NewString(), username, fullName, email, string(hashedPassword), shippingAddress, s.newCart())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	s.mu.Lock()
	s.online[u.ID()] = u
	s.mu.Unlock()

	return u, nil
}

// Login 用户登录
// 先按用户名查，查不到再按邮箱查；两种失败对外都是同一个错误
func (s *service) Login(ctx context.Context, usernameOrEmail, password string) (*User, error) {
	found, err := s.repo.FindByUsername(ctx, usernameOrEmail)
	if err != nil {
		if !apperrors.HasCode(err, apperrors.ErrCodeUserNotFound) {
			return nil, err
		}
		found, err = s.repo.FindByEmail(ctx, usernameOrEmail)
		if err != nil {
			if apperrors.HasCode(err, apperrors.ErrCodeUserNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
	}

	if err := s.ValidatePassword(found.PasswordHash(), password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 已在线的用户复用原实例，购物车内容不因重复登录丢失
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.online[found.ID()]; ok {
		return existing, nil
	}
	found.cart = s.newCart()
	s.online[found.ID()] = found
	return found, nil
}

// Logout 用户登出
func (s *service) Logout(u *User) {
	if u != nil {
		u.ClearToken()
	}
}

// GetByID 根据ID取用户
// 在线缓存命中直接返回；未命中回源数据库并挂上新购物车
func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	if u, ok := s.online[id]; ok {
		s.mu.RUnlock()
		return u, nil
	}
	s.mu.RUnlock()

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.online[id]; ok {
		return existing, nil
	}
	found.cart = s.newCart()
	s.online[id] = found
	return found, nil
}

// UpdateProfile 更新用户资料
// 逐个字段调用实体的Set方法校验，全部通过后持久化
func (s *service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		if err := u.SetFullName(*update.FullName); err != nil {
			return nil, err
		}
	}
	if update.Email != nil {
		if err := u.SetEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	if update.ShippingAddress != nil {
		if err := u.SetShippingAddress(*update.ShippingAddress); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword 修改密码
// 业务规则：
// 1. 当前密码必须验证通过
// 2. 新密码必须满足强度要求
func (s *service) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ValidatePassword(u.PasswordHash(), currentPassword); err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidPassword, "当前密码不正确")
	}
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return apperrors.Wrap(err, "密码加密失败")
	}
	u.SetPasswordHash(string(hashed))

	return s.repo.Update(ctx, u)
}

// ValidatePassword 验证密码
// 说明：登录时使用，验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// validatePasswordStrength 密码强度校验
// 规则：至少8位，且同时包含大写字母、小写字母、数字和特殊字符
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return apperrors.ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return apperrors.ErrWeakPassword
	}
	return nil
}
