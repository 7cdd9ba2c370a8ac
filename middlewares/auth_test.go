// file: middlewares/auth_test.go
package middlewares

import (
	"ChaosLab/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", FacilitatorAuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doRequest(r *gin.Engine, remoteAddr, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.RemoteAddr = remoteAddr
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthWithSecretConfigured(t *testing.T) {
	require.NoError(t, utils.InitAdminSecret("facilitator-pass"))
	defer utils.InitAdminSecret("")

	r := gatedRouter()

	// 没带凭证：无论来源一律 403，本机也不例外
	w := doRequest(r, "127.0.0.1:50000", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 错误口令 403
	w = doRequest(r, "10.0.0.5:50000", "wrong-pass")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 正确口令放行，来源不限
	w = doRequest(r, "10.0.0.5:50000", "facilitator-pass")
	assert.Equal(t, http.StatusOK, w.Code)

	// 用口令换到的令牌同样有效
	token, err := utils.GenerateFacilitatorToken()
	require.NoError(t, err)
	w = doRequest(r, "10.0.0.5:50000", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// 伪造令牌 403
	w = doRequest(r, "10.0.0.5:50000", "eyJhbGciOiJIUzI1NiJ9.forged.sig")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthWithoutSecretLoopbackOnly(t *testing.T) {
	require.NoError(t, utils.InitAdminSecret(""))

	r := gatedRouter()

	w := doRequest(r, "127.0.0.1:50000", "")
	assert.Equal(t, http.StatusOK, w.Code, "未配置口令时本机放行")

	w = doRequest(r, "[::1]:50000", "")
	assert.Equal(t, http.StatusOK, w.Code, "IPv6 回环同样放行")

	w = doRequest(r, "192.168.1.20:50000", "")
	assert.Equal(t, http.StatusForbidden, w.Code, "非本机来源必须显式拒绝")
}

func TestAuthIgnoresForwardedHeaders(t *testing.T) {
	require.NoError(t, utils.InitAdminSecret(""))

	r := gatedRouter()

	// 远端连接伪造回环转发头：判定只认连接对端地址，照样 403
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.RemoteAddr = "203.0.113.9:40000"
	req.Header.Set("X-Forwarded-For", "127.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.RemoteAddr = "203.0.113.9:40000"
	req.Header.Set("X-Real-IP", "::1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
