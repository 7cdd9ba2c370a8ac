// file: main.go
package main

import (
	"ChaosLab/config"
	"ChaosLab/database"
	"ChaosLab/routes"
	"ChaosLab/services"
	"ChaosLab/utils"
	"log"
)

func main() {
	config.Load()

	if err := utils.InitAdminSecret(config.C.AdminSecret); err != nil {
		log.Fatal("主持人口令初始化失败: ", err)
	}
	if config.C.AdminSecret == "" {
		log.Println("未配置 ADMIN_SECRET，管理接口仅允许本机访问")
	}

	database.Connect(config.C.SQLitePath)
	database.MigrateTables()

	// 目录文件有错必须拒绝启动，不能带着坏规则开赛
	cat, err := services.LoadCatalog(config.C.CatalogPath)
	if err != nil {
		log.Fatal("题目目录装载失败: ", err)
	}

	snapshot, err := database.LoadStateSnapshot()
	if err != nil {
		log.Println("读取状态快照失败，按全新会话启动:", err)
	}

	services.PersistState = func(sessionID string, state []byte) {
		if err := database.SaveStateSnapshot(sessionID, state); err != nil {
			log.Println("状态快照落盘失败:", err)
		}
	}
	services.InitSession(cat, config.C.ModeOverride, config.C.AllowSkipReveal, snapshot)

	r := routes.SetupRouter()

	log.Println("ChaosLab 启动，监听端口", config.C.Port)
	if err := r.Run(":" + config.C.Port); err != nil {
		log.Fatal("服务启动失败: ", err)
	}
}
