// file: models/scoreboard.go
package models

import (
	"time"
)

// ScoreRow 排行榜单行。纯派生数据：每次查询即时计算，从不落库或缓存。
type ScoreRow struct {
	Rank        uint       `json:"rank"`
	TeamID      string     `json:"team_id"`
	TeamName    string     `json:"team_name"`
	Points      float64    `json:"points"`
	SolvedCount int        `json:"solved_count"`
	LastSolve   *time.Time `json:"last_solve,omitempty"`
}
