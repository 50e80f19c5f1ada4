package util

import "eng_assess_backend/internal/model"

// Authorize 判断身份是否满足路由要求的角色，required 为空表示只需登录
func Authorize(identity *Claims, required model.UserRole) bool {
	if identity == nil {
		return false
	}
	if required == "" {
		return true
	}
	return identity.Role == required
}
