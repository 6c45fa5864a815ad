package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnanh/lotrinh-backend/services"
)

// DBMiddleware gắn kết nối gorm vào context cho controller.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// ServicesMiddleware gắn service container (generator, embedder, logger)
// vào context. Collaborator được dựng một lần ở main và inject xuống,
// không dùng singleton cấp package.
func ServicesMiddleware(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("services", svc)
		c.Next()
	}
}
