package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jamaicasolina/ClassSync/config"
	"github.com/jamaicasolina/ClassSync/internal/api/handler"
	"github.com/jamaicasolina/ClassSync/internal/api/router"
	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/repository"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/database"
	"github.com/jamaicasolina/ClassSync/pkg/jwt"
	applogger "github.com/jamaicasolina/ClassSync/pkg/logger"
	"github.com/jamaicasolina/ClassSync/pkg/redis"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "classsync",
		Short:         "ClassSync 课表冲突检测与变更审计服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认 ./config/config.yaml）")

	root.AddCommand(serveCmd(), migrateCmd(), useraddCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置、初始化日志并连接数据库
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	return cfg, logger, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
}

// ── serve ──

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务（默认命令）",
		RunE:  runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer closeDB(db)

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return err
	}

	// 连接 Redis（可选：连接失败时降级运行，不中断启动）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单与登录限流将不可用", zap.Error(err))
		rdb = nil
	}

	var blacklist service.TokenBlacklist
	if rdb != nil {
		blacklist = rdb
		defer rdb.Close()
	}

	// 依赖注入: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, logger)
	h := handler.NewHandler(svc)

	engine, err := router.Setup(cfg, h, jwtMgr, rdb, logger)
	if err != nil {
		return fmt.Errorf("初始化路由失败: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP 服务器异常: %w", err)
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
	return nil
}

// ── migrate ──

func migrateCmd() *cobra.Command {
	var down int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移（--down N 回滚 N 步）",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer closeDB(db)

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if down > 0 {
				return database.RollbackMigrations(sqlDB, down, logger)
			}
			return database.RunMigrations(sqlDB, logger)
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "回滚步数")
	return cmd
}

// ── useradd ──

func useraddCmd() *cobra.Command {
	var req dto.CreateUserRequest
	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "创建用户账号",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer closeDB(db)

			repo := repository.NewRepository(db)
			authSvc := service.NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, logger)

			user, err := authSvc.CreateUser(cmd.Context(), &req)
			if err != nil {
				return fmt.Errorf("创建用户失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s <%s> id=%s\n", user.Role, user.Name, user.Email, user.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "登录邮箱")
	f.StringVar(&req.Password, "password", "", "密码（至少 8 位）")
	f.StringVar(&req.Role, "role", "", "professor | student | student_rep | room_admin | chairperson")
	f.StringVar(&req.FirstName, "first-name", "", "名")
	f.StringVar(&req.Surname, "surname", "", "姓")
	f.StringVar(&req.StudentNumber, "student-number", "", "学号")
	f.IntVar(&req.YearLevel, "year-level", 0, "年级（学生）")
	f.StringVar(&req.Section, "section", "", "班级（学生）")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
