package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'users.uk_users_username'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isDuplicateOnIndex 判断冲突是否落在指定的唯一索引上
// 用户表有两个唯一索引（用户名/邮箱），错误信息中的索引名是区分二者的唯一依据
func isDuplicateOnIndex(err error, indexName string) bool {
	return isDuplicateError(err) && strings.Contains(err.Error(), indexName)
}
