// file: controllers/facilitator_controller.go
package controllers

import (
	"ChaosLab/database"
	"ChaosLab/dto"
	"ChaosLab/services"
	"ChaosLab/utils"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
)

// FacilitatorLogin 用口令换主持人令牌。未配置口令时本机访问不需要登录。
func FacilitatorLogin(c *gin.Context) {
	var req dto.FacilitatorLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	if !utils.AdminSecretConfigured() {
		utils.Error(c, 1002, "未配置主持人口令，本机访问无需登录")
		return
	}
	if !utils.VerifyAdminSecret(req.Secret) {
		utils.Forbidden(c, "口令错误")
		return
	}

	token, err := utils.GenerateFacilitatorToken()
	if err != nil {
		utils.Error(c, 5000, "令牌签发失败")
		return
	}
	utils.Success(c, "success", gin.H{"token": token})
}

// GetOverview 主持人面板：会话状态 + 完整榜单
func GetOverview(c *gin.Context) {
	utils.Success(c, "success", gin.H{
		"session":    services.Session.View(),
		"scoreboard": services.Session.Scoreboard(),
	})
}

// StartSession 开赛（lobby -> active）
func StartSession(c *gin.Context) {
	if err := services.Session.Start(); err != nil {
		utils.Error(c, 5001, err.Error())
		return
	}
	utils.Success(c, "比赛已开始", services.Session.View())
}

// EndSession 收卷（active -> ended）
func EndSession(c *gin.Context) {
	if err := services.Session.End(); err != nil {
		utils.Error(c, 5001, err.Error())
		return
	}
	utils.Success(c, "比赛已结束", services.Session.View())
}

// NextQuestion 控题模式：推进到下一题
func NextQuestion(c *gin.Context) {
	err := services.Session.NextQuestion()
	if errors.Is(err, services.ErrGameFinished) {
		utils.Success(c, "所有题目已结束，比赛进入结算", services.Session.View())
		return
	}
	if err != nil {
		utils.Error(c, 5001, err.Error())
		return
	}
	utils.Success(c, "已进入下一题", services.Session.View())
}

// RevealQuestion 控题模式：揭晓当前题答案
func RevealQuestion(c *gin.Context) {
	if err := services.Session.RevealQuestion(); err != nil {
		utils.Error(c, 5001, err.Error())
		return
	}
	utils.Success(c, "已揭晓", services.Session.View())
}

// UpdateFlags 更新玩法开关
func UpdateFlags(c *gin.Context) {
	var req dto.UpdateFlagsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	flags := services.Session.SetFlags(req.Hints, req.Shuffle, req.NegativeMarking)
	utils.Success(c, "开关已更新", flags)
}

// ResetProgress 重置进度：scope=all 整场清零，scope=team 单队清零
func ResetProgress(c *gin.Context) {
	var req dto.ResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	switch req.Scope {
	case "all":
		services.Session.ResetAll()
		// 整场重置连同上一场的快照一起清掉，重启后不会捡回旧进度
		if err := database.DeleteStateSnapshot(); err != nil {
			log.Println("清理状态快照失败:", err)
		}
		utils.Success(c, "已重置全部进度", services.Session.View())
	case "team":
		if req.TeamID == "" {
			utils.Error(c, 1001, "缺少 team_id")
			return
		}
		if err := services.Session.ResetTeam(req.TeamID); err != nil {
			utils.Error(c, 4004, "队伍不存在")
			return
		}
		utils.Success(c, "已重置该队进度", nil)
	default:
		utils.Error(c, 1001, "scope 取值无效（all/team）")
	}
}

// AddTeam 现场加队
func AddTeam(c *gin.Context) {
	var req dto.AddTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.ID == "" || req.TeamName == "" {
		utils.Error(c, 1001, "缺少必填字段")
		return
	}

	team, err := services.Session.AddTeam(req.ID, req.TeamName)
	if err != nil {
		utils.Error(c, 1002, err.Error())
		return
	}
	utils.Success(c, "队伍已加入", team)
}
