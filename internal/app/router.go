package app

import (
	"eng_assess_backend/docs"
	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/middleware"
	"eng_assess_backend/internal/model"
	"eng_assess_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	protect := middleware.AuthMiddleware(cfg.JWT.Secret, s.auth)

	// 2. 学生端，登录即可访问
	a.registerStudentRoutes(router.Group("/api/student", protect), c)

	// 3. 仪表盘与管理端
	a.registerDashboardRoutes(router.Group("/api/dashboard", protect), c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/assessments", c.student.ListAssessments)
	group.GET("/assessments/:id/start", c.student.StartAssessment)
	group.POST("/assessments/:id/submit", c.student.SubmitAssessment)
	group.GET("/submissions", c.student.Submissions)
	group.GET("/submissions/latest", c.student.LatestSubmissions)
	group.GET("/stats", c.student.Stats)
}

func (a *App) registerDashboardRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/recommendations", c.dashboard.Recommendations)
	group.GET("/check-categories", c.dashboard.CheckCategories)
	group.POST("/initialize-categories", c.dashboard.InitializeCategories)

	admin := group.Group("", middleware.RequireRole(model.Admin))
	{
		admin.GET("/stats", c.dashboard.Stats)
		admin.GET("/overview", c.dashboard.Overview)

		admin.GET("/students", c.user.ListStudents)
		admin.DELETE("/students/:id", c.user.DeleteStudent)

		admin.GET("/assessments", c.assessment.List)
		admin.POST("/assessments", c.assessment.Create)
		admin.GET("/assessments/:id", c.assessment.Get)
		admin.PUT("/assessments/:id", c.assessment.Update)
		admin.DELETE("/assessments/:id", c.assessment.Delete)
		admin.GET("/assessments/:id/resources", c.resource.ListForAssessment)
		admin.POST("/assessments/:id/resources", c.resource.CreateForAssessment)

		admin.GET("/resources", c.resource.Latest)
		admin.POST("/resources/upload", c.resource.Upload)
		admin.GET("/resources/:id", c.resource.Get)
		admin.PUT("/resources/:id", c.resource.Update)
		admin.DELETE("/resources/:id", c.resource.Delete)

		admin.GET("/categories", c.category.List)
		admin.POST("/categories", c.category.Create)
		admin.POST("/categories/init", c.category.Init)
		admin.GET("/categories/beginner-courses", c.category.BeginnerCourses)
		admin.PUT("/categories/:id", c.category.Update)
		admin.DELETE("/categories/:id", c.category.Delete)
	}
}
