package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase открывает основную базу данных. По умолчанию — встраиваемый
// sqlite-файл (DB_PATH), при DB_DRIVER=postgres — внешний postgres.
func ConnectDatabase() {
	if os.Getenv("DB_DRIVER") == "postgres" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")

		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("Ошибка подключения к базе данных:", err)
		}

		DB = db
		fmt.Println("Подключение к базе данных успешно!")
		return
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = filepath.Join("data", "queue.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal("Ошибка создания каталога базы данных:", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных:", err)
	}

	DB = db
	fmt.Println("Подключение к базе данных успешно!")
}

var RedisClient *redis.Client

// InitRedis создаёт клиент Redis для кэша табло. Подключение ленивое:
// при недоступном Redis сервис продолжает работать напрямую с базой.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

// ConnectTestingDatabase открывает общую sqlite-базу в памяти для тестов.
func ConnectTestingDatabase() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatal("Ошибка подключения к тестовой базе данных:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Ошибка получения пула соединений:", err)
	}
	sqlDB.SetMaxOpenConns(1)

	DB = db
}
