// file: controllers/facilitator_controller_test.go
package controllers_test

import (
	"ChaosLab/models"
	"ChaosLab/services"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// postAsFacilitator 以本机来源调用管理接口（测试不配置口令，走回环放行）
func postAsFacilitator(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "127.0.0.1:50000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResetAllEndpoint(t *testing.T) {
	r := setupTestSession(t)

	// 先制造一些进度
	postJSON(r, "/api/v1/challenges/c1/submit", map[string]any{
		"team_id": "alpha",
		"payload": map[string]any{"spec": map[string]any{"selector": map[string]any{"app": "web"}}},
	})

	w := postAsFacilitator(r, "/api/v1/facilitator/reset", map[string]any{"scope": "all"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := gjson.ParseBytes(w.Body.Bytes())
	assert.EqualValues(t, 0, resp.Get("code").Int())
	assert.Equal(t, "lobby", resp.Get("data.status").String())

	// 台账确实清空：重新开赛后同一题可以再次得分
	w = postAsFacilitator(r, "/api/v1/facilitator/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(r, "/api/v1/challenges/c1/submit", map[string]any{
		"team_id": "alpha",
		"payload": map[string]any{"spec": map[string]any{"selector": map[string]any{"app": "web"}}},
	})
	assert.Equal(t, "solved", gjson.GetBytes(w.Body.Bytes(), "data.status").String())
}

func TestResetEndpointRejectsRemoteOrigin(t *testing.T) {
	r := setupTestSession(t)

	raw, _ := json.Marshal(map[string]any{"scope": "all"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/facilitator/reset", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:40000"
	req.Header.Set("X-Forwarded-For", "127.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.SessionActive, services.Session.View().Status, "被拒绝的请求不得产生任何副作用")
}
