// file: middlewares/auth.go
package middlewares

import (
	"ChaosLab/utils"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// FacilitatorAuthMiddleware 主持人接口鉴权。判定顺序：
//  1. 配置了口令：必须出示匹配凭证（口令本身，或用口令换到的令牌），否则一律 403；
//  2. 未配置口令：仅放行本机回环来源（127.0.0.1 / ::1）。
//
// 拒绝永远是显式 403，绝不静默降级为空操作。
func FacilitatorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.AdminSecretConfigured() {
			token := bearerToken(c)
			if token == "" {
				utils.Forbidden(c, "请求头中缺少主持人凭证")
				c.Abort()
				return
			}
			if !credentialValid(token) {
				utils.Forbidden(c, "主持人凭证无效")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !remoteIsLoopback(c.Request.RemoteAddr) {
			utils.Forbidden(c, "未配置口令时，管理操作仅限本机访问")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// credentialValid 直接口令或已签发的主持人令牌均可
func credentialValid(token string) bool {
	if utils.VerifyAdminSecret(token) {
		return true
	}
	claims, err := utils.ParseToken(token)
	return err == nil && claims.Role == "facilitator"
}

// remoteIsLoopback 只看 TCP 连接的对端地址。X-Forwarded-For 之类的代理头
// 是调用方自己填的，放行与否绝不能取决于它。
func remoteIsLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	parsed := net.ParseIP(host)
	return parsed != nil && parsed.IsLoopback()
}
