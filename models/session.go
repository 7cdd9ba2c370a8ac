// file: models/session.go
package models

import (
	"time"
)

// 自定义会话状态、玩法模式与提交结果类型
type SessionStatus string
type GameMode string
type RoundPhase string
type SubmitStatus string

const (
	SessionLobby  SessionStatus = "lobby"
	SessionActive SessionStatus = "active"
	SessionEnded  SessionStatus = "ended"

	// free: 各队自由推进；round: 主持人统一控题
	ModeFree  GameMode = "free"
	ModeRound GameMode = "round"

	// 控题模式下当前题目的子状态
	PhaseIdle     RoundPhase = "idle"
	PhaseOpen     RoundPhase = "open"
	PhaseRevealed RoundPhase = "revealed"

	SubmitSolved        SubmitStatus = "solved"
	SubmitAlreadySolved SubmitStatus = "already_solved"
	SubmitIncorrect     SubmitStatus = "incorrect"
	SubmitRejected      SubmitStatus = "rejected"
)

// SolveRecord 解题记录。只在判定正确时创建，SolvedAt 创建后不再变化；
// 除显式重置外不会被删除（重复提交正确答案是幂等空操作）。
type SolveRecord struct {
	SolvedAt     time.Time `json:"solved_at"`
	AttemptCount int       `json:"attempt_count"`
}

// TeamProgress 单支队伍的可变台账：每题结果、未解题的尝试次数与累计罚分。
type TeamProgress struct {
	Team     Team                    `json:"team"`
	Solves   map[string]*SolveRecord `json:"solves"`   // challenge_id -> 记录，缺失即未解出
	Attempts map[string]int          `json:"attempts"` // 未解题的错误尝试计数
	Penalty  float64                 `json:"penalty"`  // 负分模式累计罚分
}

func NewTeamProgress(t Team) *TeamProgress {
	return &TeamProgress{
		Team:     t,
		Solves:   make(map[string]*SolveRecord),
		Attempts: make(map[string]int),
	}
}

// Points 当前得分 = 已解题分值之和 - 罚分。分值查表由调用方提供，
// 题目目录不挂在台账上。
func (p *TeamProgress) Points(pointsOf func(challengeID string) float64) float64 {
	total := 0.0
	for id := range p.Solves {
		total += pointsOf(id)
	}
	return total - p.Penalty
}

// LastSolveAt 计分时间戳：产生当前总分的那次解题时间（即最晚一次 SolvedAt）。
// 一题未解返回 nil。
func (p *TeamProgress) LastSolveAt() *time.Time {
	var last *time.Time
	for _, rec := range p.Solves {
		if last == nil || rec.SolvedAt.After(*last) {
			t := rec.SolvedAt
			last = &t
		}
	}
	return last
}

// SessionFlags 会话级玩法开关
type SessionFlags struct {
	HintsEnabled           bool `toml:"hints" json:"hints_enabled"`
	ShuffleEnabled         bool `toml:"shuffle" json:"shuffle_enabled"`
	NegativeMarkingEnabled bool `toml:"negative_marking" json:"negative_marking_enabled"`
}

// SubmitResult 一次提交的判定结果（类型化状态值，请求路径内永不抛错）
type SubmitResult struct {
	Status     SubmitStatus `json:"status"`
	ScoreDelta float64      `json:"score_delta"`
	Reason     string       `json:"reason,omitempty"`
}
