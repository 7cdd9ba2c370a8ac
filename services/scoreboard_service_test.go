// file: services/scoreboard_service_test.go
package services

import (
	"ChaosLab/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(offset int) *time.Time {
	t := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
	return &t
}

func TestRankTeamsTotalOrder(t *testing.T) {
	rows := RankTeams([]models.ScoreRow{
		{TeamID: "bravo", Points: 30, LastSolve: ts(10)},
		{TeamID: "alpha", Points: 30, LastSolve: ts(5)}, // 同分，更早达到
		{TeamID: "delta", Points: 50, LastSolve: ts(20)},
		{TeamID: "charlie", Points: 10, LastSolve: ts(1)},
	})

	ids := []string{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID, rows[3].TeamID}
	assert.Equal(t, []string{"delta", "alpha", "bravo", "charlie"}, ids)

	for i, row := range rows {
		assert.Equal(t, uint(i+1), row.Rank)
	}
}

func TestRankTeamsNilLastSolve(t *testing.T) {
	rows := RankTeams([]models.ScoreRow{
		{TeamID: "bravo", Points: 0},
		{TeamID: "alpha", Points: 0},
		{TeamID: "charlie", Points: 0, LastSolve: ts(0)}, // 解过题又被罚回 0 分
	})

	// 有计分时间的排前，双方都没有时按 id 保证可复现
	assert.Equal(t, "charlie", rows[0].TeamID)
	assert.Equal(t, "alpha", rows[1].TeamID)
	assert.Equal(t, "bravo", rows[2].TeamID)
}

func TestRankTeamsFullTieBreak(t *testing.T) {
	same := ts(7)
	rows := RankTeams([]models.ScoreRow{
		{TeamID: "bravo", Points: 20, LastSolve: same},
		{TeamID: "alpha", Points: 20, LastSolve: same},
	})
	assert.Equal(t, "alpha", rows[0].TeamID, "分数时间全同时按 id 稳定排序")
}
