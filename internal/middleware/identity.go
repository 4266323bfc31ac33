package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth_identity"

// Identity 已认证的用户描述
// 登录和会话校验由外部网关完成，这里只透传网关注入的身份头，不做任何校验
type Identity struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// WithIdentity 从请求头提取用户身份放入上下文
func WithIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity{
			Id:    c.GetHeader("X-Auth-Id"),
			Name:  c.GetHeader("X-Auth-Name"),
			Role:  c.GetHeader("X-Auth-Role"),
			Email: c.GetHeader("X-Auth-Email"),
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity 从上下文取用户身份
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok && identity.Id != ""
}

// RequireRole 角色门禁
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "没有权限"})
			return
		}
		c.Next()
	}
}
