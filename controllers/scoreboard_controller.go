// file: controllers/scoreboard_controller.go
package controllers

import (
	"ChaosLab/database"
	"ChaosLab/models"
	"ChaosLab/services"
	"ChaosLab/utils"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetScoreboard 查询排行榜。
// 每次请求基于会话当前状态即时计算，不做任何缓存——榜单永远不落后于实际进度。
func GetScoreboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "0")
	limit, _ := strconv.Atoi(limitStr)

	rows := services.Session.Scoreboard()
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	utils.Success(c, "success", rows)
}

// GetSolveFeed 查询实时解题动态
func GetSolveFeed(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var results []models.SolveFeed
	database.DB.Order("solving_time desc").Limit(limit).Find(&results)

	utils.Success(c, "success", results)
}
