// file: controllers/team_controller.go
package controllers

import (
	"ChaosLab/mappers"
	"ChaosLab/services"
	"ChaosLab/utils"

	"github.com/gin-gonic/gin"
)

// GetTeamList 队伍总览：名单 + 各队解题数（与排行榜同一份投影）
func GetTeamList(c *gin.Context) {
	view := services.Session.View()
	rows := services.Session.Scoreboard()

	utils.Success(c, "success", gin.H{
		"total_challenges": view.ChallengeCount,
		"teams":            rows,
	})
}

// GetTeamSolves 查询队伍解题记录
func GetTeamSolves(c *gin.Context) {
	teamID := c.Param("id")

	progress, err := services.Session.TeamState(teamID)
	if err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	result := mappers.MapSolves(progress, services.Session.GetChallenge)
	utils.Success(c, "success", result)
}
