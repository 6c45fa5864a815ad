package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vnanh/lotrinh-backend/config"
	"github.com/vnanh/lotrinh-backend/routes"
	"github.com/vnanh/lotrinh-backend/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env")
	}

	config.InitDB()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Không khởi tạo được logger:", err)
	}
	defer logger.Sync()

	// Dựng collaborator một lần rồi inject xuống, không dùng singleton
	gemini, err := services.NewGeminiClient(context.Background(), os.Getenv("GEMINI_API_KEY"), logger)
	if err != nil {
		log.Fatal("Không khởi tạo được Gemini client:", err)
	}
	defer gemini.Close()

	svc := services.NewService(gemini, gemini, config.VectorDir(), logger)

	r := gin.Default()

	// Bật CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB, svc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
