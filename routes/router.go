// file: routes/router.go
package routes

import (
	"ChaosLab/controllers"
	"ChaosLab/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// 不信任任何代理：ClientIP 只反映真实连接来源，不采信转发头
	_ = r.SetTrustedProxies(nil)

	apiV1 := r.Group("/api/v1")
	{
		// --- 选手侧 ---
		apiV1.GET("/session", controllers.GetSessionStatus)

		teamRoutes := apiV1.Group("/teams")
		{
			teamRoutes.GET("", controllers.GetTeamList)
			teamRoutes.GET("/:id/challenges", controllers.ListTeamChallenges)
			teamRoutes.GET("/:id/solves", controllers.GetTeamSolves)
		}

		challengeRoutes := apiV1.Group("/challenges")
		{
			challengeRoutes.GET("/:id", controllers.GetChallengeDetail)
			challengeRoutes.POST("/:id/submit", controllers.SubmitFix)
		}

		scoreboardRoutes := apiV1.Group("/scoreboard")
		{
			scoreboardRoutes.GET("", controllers.GetScoreboard)
			scoreboardRoutes.GET("/feed", controllers.GetSolveFeed)
		}

		// --- 主持人侧 ---
		facilitatorRoutes := apiV1.Group("/facilitator")
		{
			// 登录本身不走鉴权中间件
			facilitatorRoutes.POST("/login", controllers.FacilitatorLogin)

			gated := facilitatorRoutes.Group("")
			gated.Use(middlewares.FacilitatorAuthMiddleware())
			{
				gated.GET("/overview", controllers.GetOverview)
				gated.POST("/start", controllers.StartSession)
				gated.POST("/end", controllers.EndSession)
				gated.POST("/next", controllers.NextQuestion)
				gated.POST("/reveal", controllers.RevealQuestion)
				gated.PUT("/flags", controllers.UpdateFlags)
				gated.POST("/reset", controllers.ResetProgress)
				gated.POST("/teams", controllers.AddTeam)
			}
		}
	}

	return r
}
