package user

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/xiebiao/furnistore/pkg/errors"

	"github.com/xiebiao/furnistore/internal/domain/cart"
)

// 资料字段的长度边界
const (
	MinFullNameLen = 2
	MaxFullNameLen = 100
	MinAddressLen  = 5
	MaxAddressLen  = 200
)

// 邮箱格式：用户名@域名.后缀
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，持有资料、认证状态和购物车
// 2. 密码已加密存储（bcrypt），不提供任何暴露明文的方法
// 3. 资料字段通过Set方法修改，校验失败不改动实体
// 4. 收货地址是可选的：空字符串表示尚未填写，结算时会拦下
// 5. 认证状态由Token是否存在推导，登录/登出只改Token
type User struct {
	id              string
	username        string
	fullName        string
	email           string
	passwordHash    string
	shippingAddress string
	token           string
	cart            *cart.ShoppingCart
	createdAt       time.Time
	updatedAt       time.Time
}

// NewUser 创建新用户（工厂方法）
// passwordHash必须是bcrypt加密后的密码，shippingAddress可传空
func NewUser(id, username, fullName, email, passwordHash, shippingAddress string, shoppingCart *cart.ShoppingCart) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名不能为空")
	}
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if shippingAddress != "" {
		if err := validateAddress(shippingAddress); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	return &User{
		id:              id,
		username:        username,
		fullName:        fullName,
		email:           email,
		passwordHash:    passwordHash,
		shippingAddress: shippingAddress,
		cart:            shoppingCart,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Rehydrate 从持久化记录重建用户实体（仓储层专用）
// 与NewUser不同：入库前字段已通过校验，重建时不再校验，时间戳按存储值恢复。
// 购物车和登录态是运行时状态，由用户目录在登录/回源时挂载
func Rehydrate(id, username, fullName, email, passwordHash, shippingAddress string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:              id,
		username:        username,
		fullName:        fullName,
		email:           email,
		passwordHash:    passwordHash,
		shippingAddress: shippingAddress,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID 用户唯一标识
func (u *User) ID() string {
	return u.id
}

// Username 登录用户名
func (u *User) Username() string {
	return u.username
}

// FullName 用户姓名
func (u *User) FullName() string {
	return u.fullName
}

// SetFullName 更新姓名
func (u *User) SetFullName(v string) error {
	if err := validateFullName(v); err != nil {
		return err
	}
	u.fullName = v
	u.updatedAt = time.Now()
	return nil
}

// Email 邮箱
func (u *User) Email() string {
	return u.email
}

// SetEmail 更新邮箱
func (u *User) SetEmail(v string) error {
	if err := validateEmail(v); err != nil {
		return err
	}
	u.email = v
	u.updatedAt = time.Now()
	return nil
}

// PasswordHash 密码哈希（登录校验用）
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// SetPasswordHash 更新密码哈希（只接受加密后的值）
func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = hash
	u.updatedAt = time.Now()
}

// ShippingAddress 收货地址，空字符串表示未填写
func (u *User) ShippingAddress() string {
	return u.shippingAddress
}

// SetShippingAddress 更新收货地址
func (u *User) SetShippingAddress(v string) error {
	if err := validateAddress(v); err != nil {
		return err
	}
	u.shippingAddress = v
	u.updatedAt = time.Now()
	return nil
}

// Token 当前访问令牌
func (u *User) Token() string {
	return u.token
}

// SetToken 登录成功后写入访问令牌
func (u *User) SetToken(token string) {
	u.token = token
}

// ClearToken 登出时清除令牌
func (u *User) ClearToken() {
	u.token = ""
}

// IsAuthenticated 是否已登录（有令牌即视为已登录）
func (u *User) IsAuthenticated() bool {
	return u.token != ""
}

// Cart 用户的购物车
func (u *User) Cart() *cart.ShoppingCart {
	return u.cart
}

// CreatedAt 注册时间
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt 最近一次资料变更时间
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func validateFullName(v string) error {
	if strings.TrimSpace(v) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")
	}
	if n := utf8.RuneCountInString(v); n < MinFullNameLen || n > MaxFullNameLen {
		return apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"姓名长度应为%d-%d个字符", MinFullNameLen, MaxFullNameLen)
	}
	return nil
}

func validateEmail(v string) error {
	if !emailPattern.MatchString(v) {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	return nil
}

func validateAddress(v string) error {
	if strings.TrimSpace(v) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空")
	}
	if n := utf8.RuneCountInString(v); n < MinAddressLen || n > MaxAddressLen {
		return apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"收货地址长度应为%d-%d个字符", MinAddressLen, MaxAddressLen)
	}
	return nil
}
