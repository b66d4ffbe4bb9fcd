package user

import (
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrInvalidCredentials 登录失败
	// 用户名不存在和密码错误统一返回这个错误，不向外暴露账号是否存在
	ErrInvalidCredentials = apperrors.New(apperrors.ErrCodeUnauthorized, "用户名或密码错误")
)
