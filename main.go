package main

import (
	"fmt"
	"log"
	"os"
	_ "ticket_queue/docs"
	"ticket_queue/internal/handlers"
	"ticket_queue/internal/models"
	"ticket_queue/internal/storage"
	"ticket_queue/internal/tasks"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title	Сервис талонной очереди
// @Description	Выдача номерных талонов живой очереди и данные для информационного табло
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.QueueDay{}, &models.QueueEntry{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.LoadHTMLGlob("templates/*")

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	queueGroup := r.Group("/queue")
	{
		queueGroup.POST("/start-day", handlers.StartDayHandler)
		queueGroup.POST("/entries", handlers.CreateEntryHandler)
		queueGroup.POST("/xibo", handlers.CreateEntryFormHandler)
		queueGroup.GET("/entries", handlers.ListEntriesHandler)
		queueGroup.GET("/display", handlers.DisplayHandler)
		queueGroup.GET("/health", handlers.HealthHandler)
		queueGroup.GET("/admin", handlers.AdminPageHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
