// file: services/scoreboard_service.go
package services

import (
	"ChaosLab/database"
	"ChaosLab/models"
	"log"
	"sort"
)

// RankTeams 对排行榜行做全序排序并填入名次。
// 主键总分降序；同分按计分时间升序（先达到当前总分者靠前）；
// 再同（例如都还没解题）按队伍 id 保证结果稳定可复现。
func RankTeams(rows []models.ScoreRow) []models.ScoreRow {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		switch {
		case a.LastSolve == nil && b.LastSolve == nil:
			return a.TeamID < b.TeamID
		case a.LastSolve == nil:
			return false
		case b.LastSolve == nil:
			return true
		case !a.LastSolve.Equal(*b.LastSolve):
			return a.LastSolve.Before(*b.LastSolve)
		default:
			return a.TeamID < b.TeamID
		}
	})
	for i := range rows {
		rows[i].Rank = uint(i + 1)
	}
	return rows
}

// AddSolveToFeed 将一条新的解题记录写入动态表
func AddSolveToFeed(ch models.Challenge, team models.Team, points float64) {
	if database.DB == nil {
		return
	}

	feedEntry := models.SolveFeed{
		ChallengeID:    ch.ID,
		ChallengeTitle: ch.Title,
		TeamID:         team.ID,
		TeamName:       team.TeamName,
		Points:         points,
	}
	if err := database.DB.Create(&feedEntry).Error; err != nil {
		log.Println("写入解题动态失败:", err)
		return
	}

	// 清理旧记录，保持表的大小
	var count int64
	database.DB.Model(&models.SolveFeed{}).Count(&count)
	if count > 5000 {
		database.DB.Exec("DELETE FROM chaoslab_solve_feed WHERE id IN (SELECT id FROM chaoslab_solve_feed ORDER BY solving_time ASC LIMIT ?)", count-5000)
	}
}

// LogSubmission 每次提交留档（含 IP），赛后复盘用
func LogSubmission(challengeID, teamID string, payload []byte, result models.SubmitStatus, ip string) {
	if database.DB == nil {
		return
	}
	entry := models.SubmissionLog{
		ChallengeID:      challengeID,
		TeamID:           teamID,
		SubmittedPayload: string(payload),
		Result:           result,
		IPAddress:        ip,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Println("写入提交留档失败:", err)
	}
}
