package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/autoluxe/internal/app"
	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
	ansiGold  = "\033[33m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()
	mode, ok := app.ParseMode(mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "未知启动模式: %s\n", mode)
		os.Exit(2)
	}

	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if strings.TrimSpace(cfg.UserJWT.SecretKey) == "" {
		stdLog.Fatalf("未配置 user_jwt.secret，无法签发登录令牌")
	}
	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.UserJWT.SecretKey) {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.UserJWT.SecretKey) {
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Database.SQLLog); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认管理员账号
	defaultAdminEmail := os.Getenv("AUTOLUXE_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("AUTOLUXE_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("警告: 未设置 AUTOLUXE_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
	} else if err := models.InitDefaultAdmin(defaultAdminEmail, defaultAdminPass); err != nil {
		stdLog.Printf("警告: 初始化默认管理员失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config: cfg,
		Logger: logger.S(),
		Mode:   mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiGold + ansiBold + "AutoLuxe API 启动中" + ansiReset)
	fmt.Println(ansiCyan + " █████╗ ██╗   ██╗████████╗ ██████╗ ██╗     ██╗   ██╗██╗  ██╗███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██║   ██║╚══██╔══╝██╔═══██╗██║     ██║   ██║╚██╗██╔╝██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + "███████║██║   ██║   ██║   ██║   ██║██║     ██║   ██║ ╚███╔╝ █████╗  " + ansiReset)
	fmt.Println(ansiCyan + "██╔══██║██║   ██║   ██║   ██║   ██║██║     ██║   ██║ ██╔██╗ ██╔══╝  " + ansiReset)
	fmt.Println(ansiCyan + "██║  ██║╚██████╔╝   ██║   ╚██████╔╝███████╗╚██████╔╝██╔╝ ██╗███████╗" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝  ╚═╝ ╚═════╝    ╚═╝    ╚═════╝ ╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
