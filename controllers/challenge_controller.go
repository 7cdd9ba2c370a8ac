// file: controllers/challenge_controller.go
package controllers

import (
	"ChaosLab/dto"
	"ChaosLab/mappers"
	"ChaosLab/models"
	"ChaosLab/services"
	"ChaosLab/utils"

	"github.com/gin-gonic/gin"
)

// ListTeamChallenges —— 队伍视角的题目列表（乱序开关生效，提示跟随开关）
func ListTeamChallenges(c *gin.Context) {
	teamID := c.Param("id")

	ordered, err := services.Session.OrderedChallenges(teamID)
	if err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}
	progress, err := services.Session.TeamState(teamID)
	if err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}
	hints := services.Session.HintsEnabled()

	items := make([]dto.ChallengeViewResp, 0, len(ordered))
	for _, ch := range ordered {
		items = append(items, mappers.MapChallengeToView(ch, progress, hints))
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail —— 单题详情。判题规则永不下发，提示受开关控制。
func GetChallengeDetail(c *gin.Context) {
	challengeID := c.Param("id")

	ch, ok := services.Session.GetChallenge(challengeID)
	if !ok {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	resp := gin.H{
		"id":      ch.ID,
		"title":   ch.Title,
		"brief":   ch.Brief,
		"points":  ch.Points,
		"options": ch.Options,
	}
	if services.Session.HintsEnabled() {
		resp["hint"] = ch.Hint
	}
	utils.Success(c, "success", resp)
}

// SubmitFix —— 提交修复方案/答案并判定。
// 所有判定结果（对、错、重复、拒绝）都是类型化状态值，不走错误分支。
func SubmitFix(c *gin.Context) {
	challengeID := c.Param("id")

	var req dto.SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.TeamID == "" {
		utils.Error(c, 1001, "缺少 team_id")
		return
	}

	result := services.Session.Submit(req.TeamID, challengeID, req.Payload)

	// 提交留档与解题动态是附属记录，失败只记日志不影响判定结果
	services.LogSubmission(challengeID, req.TeamID, req.Payload, result.Status, c.ClientIP())
	if result.Status == models.SubmitSolved {
		if ch, ok := services.Session.GetChallenge(challengeID); ok {
			if progress, err := services.Session.TeamState(req.TeamID); err == nil {
				services.AddSolveToFeed(ch, progress.Team, ch.Points)
			}
		}
	}

	utils.Success(c, submitMsg(result.Status), result)
}

func submitMsg(status models.SubmitStatus) string {
	switch status {
	case models.SubmitSolved:
		return "判定通过，挑战完成！"
	case models.SubmitAlreadySolved:
		return "此题已解出"
	case models.SubmitIncorrect:
		return "未通过判定"
	default:
		return "提交被拒绝"
	}
}
