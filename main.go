package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/AllenLi0110/simple-waterball/internal/api"
	"github.com/AllenLi0110/simple-waterball/internal/config"
	"github.com/AllenLi0110/simple-waterball/internal/middleware"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/banner"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/database"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/logger"
	"github.com/AllenLi0110/simple-waterball/internal/repository"
	"github.com/AllenLi0110/simple-waterball/internal/router"
	"github.com/AllenLi0110/simple-waterball/internal/service"
)

// 版本信息，编译时通过 ldflags 设置
var (
	Version    = "v0.1.0"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	// 创建 CLI 应用
	cmd := &cli.Command{
		Name:    "Waterball API Server",
		Usage:   "课程销售平台后端服务",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configPath := cmd.String("config")

			// 如果未指定配置文件，尝试从默认位置加载
			if configPath == "" {
				possiblePaths := []string{
					"config.yaml",
					filepath.Join("config", "config.yaml"),
				}

				found := false
				for _, path := range possiblePaths {
					if _, err := os.Stat(path); err == nil {
						configPath = path
						found = true
						break
					}
				}

				if !found {
					return fmt.Errorf("未指定配置文件且未找到默认配置文件(config.yaml或config/config.yaml)")
				}
			}

			// 将配置文件路径设置到环境变量中，供config包读取
			os.Setenv("CONFIG_PATH", configPath)

			// 启动应用
			return startApp(ctx)
		},
	}

	// 运行应用
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "应用程序启动失败: %v\n", err)
		os.Exit(1)
	}
}

// startApp 启动应用程序的主要逻辑
func startApp(ctx context.Context) error {
	banner.Print(Version, CommitHash, BuildTime)

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %v", err)
	}

	// 初始化日志系统
	if err := logger.Setup(); err != nil {
		return fmt.Errorf("初始化日志系统失败: %v", err)
	}

	logger.Info("配置加载完成")

	// 初始化数据库
	if err := database.Setup(); err != nil {
		return fmt.Errorf("数据库初始化失败: %v", err)
	}

	logger.Info("数据库初始化完成")

	// 组装存储层和业务层
	userRepo := repository.NewUserRepository(database.GetDB())
	courseRepo := repository.NewCourseRepository(database.GetDB())
	orderRepo := repository.NewOrderRepository(database.GetDB())

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	courseService := service.NewCourseService(courseRepo)
	orderService := service.NewOrderService(orderRepo, userRepo, courseRepo,
		service.WithDeadlineDays(cfg.Order.PaymentDeadlineDays),
		service.WithMaxAttempts(cfg.Order.NumberMaxAttempts),
	)
	cronService := service.NewCronService(orderService,
		time.Duration(cfg.Order.SweepIntervalMinutes)*time.Minute)

	// 确保默认管理员账号存在
	if err := authService.EnsureDefaultAdmin(); err != nil {
		return err
	}

	// 设置gin模式
	gin.SetMode(cfg.Server.Mode)

	// 初始化路由（不使用默认中间件）
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	router.SetupRoutes(r, router.Handlers{
		Auth:   api.NewAuthAPI(authService),
		User:   api.NewUserAPI(userService),
		Course: api.NewCourseAPI(courseService),
		Order:  api.NewOrderAPI(orderService),
		Admins: userRepo,
	})
	logger.Info("路由设置完成")

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 监听退出信号，优雅关闭
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Infof("服务器启动中，端口: %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		logger.Info("定时任务启动完成")
		return cronService.Run(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
