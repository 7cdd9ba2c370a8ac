// file: controllers/challenge_controller_test.go
package controllers_test

import (
	"ChaosLab/models"
	"ChaosLab/routes"
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

func setupTestSession(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := &services.CatalogFile{
		Mode:  models.ModeFree,
		Flags: models.SessionFlags{HintsEnabled: true},
		Teams: []models.Team{
			{ID: "alpha", TeamName: "Team Alpha"},
			{ID: "bravo", TeamName: "Team Bravo"},
		},
		Challenges: []models.Challenge{
			{ID: "c1", Title: "修 selector", Brief: "对齐标签", Hint: "app=web", Points: 10,
				Rules: []models.Rule{{Kind: models.RulePathEquals, Path: "spec.selector.app", Value: "web"}}},
		},
	}
	services.InitSession(cat, "", false, nil)
	require.NoError(t, services.Session.Start())
	return routes.SetupRouter()
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitEndpoint(t *testing.T) {
	r := setupTestSession(t)

	body := map[string]any{
		"team_id": "alpha",
		"payload": map[string]any{"spec": map[string]any{"selector": map[string]any{"app": "web"}}},
	}
	w := postJSON(r, "/api/v1/challenges/c1/submit", body)
	require.Equal(t, http.StatusOK, w.Code)
	resp := gjson.ParseBytes(w.Body.Bytes())
	assert.EqualValues(t, 0, resp.Get("code").Int())
	assert.Equal(t, "solved", resp.Get("data.status").String())
	assert.Equal(t, 10.0, resp.Get("data.score_delta").Float())

	// 重复提交：幂等空操作，仍然 200
	w = postJSON(r, "/api/v1/challenges/c1/submit", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already_solved", gjson.GetBytes(w.Body.Bytes(), "data.status").String())

	// 错误答案：类型化状态值，不走错误分支
	wrong := map[string]any{
		"team_id": "bravo",
		"payload": map[string]any{"spec": map[string]any{"selector": map[string]any{"app": "db"}}},
	}
	w = postJSON(r, "/api/v1/challenges/c1/submit", wrong)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "incorrect", gjson.GetBytes(w.Body.Bytes(), "data.status").String())

	// 缺 team_id 才是参数错误
	w = postJSON(r, "/api/v1/challenges/c1/submit", map[string]any{"payload": map[string]any{}})
	resp = gjson.ParseBytes(w.Body.Bytes())
	assert.EqualValues(t, 1001, resp.Get("code").Int())
}

func TestScoreboardEndpoint(t *testing.T) {
	r := setupTestSession(t)

	body := map[string]any{
		"team_id": "alpha",
		"payload": map[string]any{"spec": map[string]any{"selector": map[string]any{"app": "web"}}},
	}
	postJSON(r, "/api/v1/challenges/c1/submit", body)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scoreboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	rows := gjson.GetBytes(w.Body.Bytes(), "data").Array()
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0].Get("team_id").String())
	assert.EqualValues(t, 1, rows[0].Get("rank").Int())
	assert.Equal(t, 10.0, rows[0].Get("points").Float())
	assert.Equal(t, "bravo", rows[1].Get("team_id").String())
}

func TestSessionEndpoint(t *testing.T) {
	r := setupTestSession(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	data := gjson.GetBytes(w.Body.Bytes(), "data")
	assert.Equal(t, "active", data.Get("status").String())
	assert.Equal(t, "free", data.Get("mode").String())
	assert.EqualValues(t, 2, data.Get("team_count").Int())
}

func TestChallengeListHidesRules(t *testing.T) {
	r := setupTestSession(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/alpha/challenges", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "path_equals", "判题规则绝不下发给选手")
	assert.Contains(t, body, "app=web", "提示开关开启时下发 hint")

	first := gjson.Get(body, "data.challenges.0")
	assert.Equal(t, "c1", first.Get("id").String())
	assert.False(t, first.Get("solved").Bool())
}
