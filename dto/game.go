// file: dto/game.go
package dto

import (
	"encoding/json"
	"strings"
)

// ========== 请求 DTO ==========

type SubmitReq struct {
	// 规范字段（snake_case）
	TeamID  string          `json:"team_id"`
	Payload json.RawMessage `json:"payload"`

	// 兼容 camelCase 客户端
	TeamIDCamel string `json:"teamId"`
}

// Normalize: 别名归一化 + 轻量清洗
func (r *SubmitReq) Normalize() {
	if r.TeamID == "" && r.TeamIDCamel != "" {
		r.TeamID = r.TeamIDCamel
	}
	r.TeamID = strings.TrimSpace(r.TeamID)
}

type FacilitatorLoginReq struct {
	Secret string `json:"secret"`
}

type UpdateFlagsReq struct {
	Hints           *bool `json:"hints"`
	Shuffle         *bool `json:"shuffle"`
	NegativeMarking *bool `json:"negative_marking"`

	NegativeMarkingCamel *bool `json:"negativeMarking"`
}

func (r *UpdateFlagsReq) Normalize() {
	if r.NegativeMarking == nil && r.NegativeMarkingCamel != nil {
		r.NegativeMarking = r.NegativeMarkingCamel
	}
}

type ResetReq struct {
	Scope  string `json:"scope"` // all / team
	TeamID string `json:"team_id"`

	TeamIDCamel string `json:"teamId"`
}

func (r *ResetReq) Normalize() {
	if r.TeamID == "" && r.TeamIDCamel != "" {
		r.TeamID = r.TeamIDCamel
	}
	r.Scope = strings.ToLower(strings.TrimSpace(r.Scope))
	r.TeamID = strings.TrimSpace(r.TeamID)
}

type AddTeamReq struct {
	ID       string `json:"id"`
	TeamName string `json:"name"`
}

func (r *AddTeamReq) Normalize() {
	r.ID = strings.ToLower(strings.TrimSpace(r.ID))
	r.TeamName = strings.TrimSpace(r.TeamName)
}

// ========== 响应 DTO ==========

// ChallengeViewResp 队伍视角的一道题：提示受开关控制，判题规则永不下发
type ChallengeViewResp struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Brief    string   `json:"brief"`
	Hint     string   `json:"hint,omitempty"`
	Points   float64  `json:"points"`
	Options  []string `json:"options,omitempty"`
	Solved   bool     `json:"solved"`
	Attempts int      `json:"attempts"`
}

type SolveInfoResp struct {
	ChallengeID    string  `json:"challenge_id"`
	ChallengeTitle string  `json:"challenge_title"`
	Points         float64 `json:"points"`
	SolvedAt       string  `json:"solved_at"`
	AttemptCount   int     `json:"attempt_count"`
}
