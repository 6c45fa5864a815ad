package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnanh/lotrinh-backend/controllers"
	"github.com/vnanh/lotrinh-backend/middleware"
	"github.com/vnanh/lotrinh-backend/services"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, svc *services.Service) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(),
		middleware.DBMiddleware(db),
		middleware.ServicesMiddleware(svc),
	)
	{
		// Lộ trình theo chủ đề
		protected.POST("/roadmaps/generate", controllers.GenerateRoadmap)
		protected.GET("/roadmaps", controllers.GetRoadmaps)
		protected.GET("/roadmaps/:id", controllers.GetRoadmap)

		// Tài liệu upload
		protected.POST("/materials", controllers.UploadMaterial)
		protected.GET("/materials", controllers.GetMaterials)

		// Nội dung node
		protected.POST("/contents/generate", controllers.GenerateContent)

		// Trắc nghiệm thích ứng
		protected.POST("/quizzes/generate", controllers.GenerateQuiz)
		protected.POST("/quizzes/attempts", controllers.SaveQuizAttempt)

		// Phỏng vấn thử
		protected.POST("/interviews", controllers.Interview)

		// Tiến độ học
		protected.GET("/progress", controllers.GetProgress)
	}

	return r
}
