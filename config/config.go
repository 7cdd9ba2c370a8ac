// file: config/config.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 进程启动时读取一次的配置面；请求路径内不再读环境变量。
type Config struct {
	Port            string // 监听端口
	AdminSecret     string // 主持人口令；为空时管理接口仅允许本机回环访问
	CatalogPath     string // 题目目录 TOML 文件路径
	SQLitePath      string // sqlite 数据文件路径
	ModeOverride    string // 覆盖目录文件里的玩法模式（free/round），可为空
	AllowSkipReveal bool   // 控题模式下是否允许未揭晓直接跳下一题（默认不允许）
}

var C Config

// Load 读取 .env 与环境变量并填充默认值。只在 main 启动时调用。
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	C = Config{
		Port:            getEnv("PORT", "8080"),
		AdminSecret:     os.Getenv("ADMIN_SECRET"),
		CatalogPath:     getEnv("CATALOG_PATH", "game.toml"),
		SQLitePath:      getEnv("SQLITE_PATH", "data/chaoslab.db"),
		ModeOverride:    os.Getenv("GAME_MODE"),
		AllowSkipReveal: getEnvBool("ALLOW_SKIP_REVEAL", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
