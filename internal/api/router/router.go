package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/config"
	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/internal/api/handler"
	"github.com/jamaicasolina/ClassSync/internal/api/middleware"
	"github.com/jamaicasolina/ClassSync/pkg/jwt"
	"github.com/jamaicasolina/ClassSync/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时黑名单检查与登录限流降级关闭
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	// nil 指针不能直接赋给接口，否则接口非 nil
	var (
		blacklist middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(middleware.Metrics())

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, time.Minute), h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 课时模块：/schedules/<action> 与 /schedules?action=<action> 两种形式
			schedules := authorized.Group("/schedules")
			{
				for _, rt := range h.ScheduleRoutes() {
					schedules.Handle(rt.Method, "/"+rt.Name, middleware.RequireAction(rt.Action, rt.Denied), rt.Handle)
				}
				schedules.Any("", h.DispatchSchedule)
			}

			// 教室模块
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", middleware.RequireAction(access.RoomRead, "Access denied"), h.Room.List)
				rooms.GET("/occupancy", middleware.RequireAction(access.RoomRead, "Access denied"), h.Room.Occupancy)
				rooms.POST("", middleware.RequireAction(access.RoomManage, "Only room administrators can manage rooms"), h.Room.Create)
				rooms.PUT("/:id/status", middleware.RequireAction(access.RoomManage, "Only room administrators can manage rooms"), h.Room.UpdateStatus)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.POST("", middleware.RequireAction(access.CourseCreate, "Only professors can create courses"), h.Course.Create)
				courses.GET("/mine", middleware.RequireAction(access.CourseMine, "Only professors can view their courses"), h.Course.Mine)
				courses.GET("/enrolled", middleware.RequireAction(access.CourseMyEnrolled, "Only students can view enrolled courses"), h.Course.MyEnrolled)
				courses.GET("/:id", middleware.RequireAction(access.CourseRead, "Access denied"), h.Course.Get)
				courses.GET("/:id/students", middleware.RequireAction(access.EnrollmentRead, "Access denied"), h.Course.Students)
			}

			// 选课模块（学生本人或教授/学生代表代办，Service 层细分）
			enrollments := authorized.Group("/enrollments")
			{
				enrollments.POST("", h.Enrollment.Enroll)
				enrollments.DELETE("", h.Enrollment.Unenroll)
				enrollments.POST("/batch", middleware.RequireAction(access.EnrollmentManage, "Only professors and student representatives can enroll students"), h.Enrollment.EnrollBatch)
				enrollments.GET("/students", middleware.RequireAction(access.EnrollmentRead, "Access denied"), h.Enrollment.StudentsBySection)
				enrollments.GET("/students/all", middleware.RequireAction(access.EnrollmentListAll, "Access denied"), h.Enrollment.AllStudents)
				enrollments.GET("/check", middleware.RequireAction(access.EnrollmentRead, "Access denied"), h.Enrollment.Check)
				enrollments.GET("/count", middleware.RequireAction(access.EnrollmentRead, "Access denied"), h.Enrollment.Count)
			}
		}
	}

	return r, nil
}
