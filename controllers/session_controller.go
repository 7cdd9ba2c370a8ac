// file: controllers/session_controller.go
package controllers

import (
	"ChaosLab/services"
	"ChaosLab/utils"

	"github.com/gin-gonic/gin"
)

// GetSessionStatus 查询会话状态：阶段、玩法开关、控题模式下的当前题目。
// 选手端轮询这个接口驱动页面刷新；答案在揭晓前不会出现在响应里。
func GetSessionStatus(c *gin.Context) {
	utils.Success(c, "success", services.Session.View())
}
