package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"ticket_queue/internal/models"
	"ticket_queue/internal/queue"
	"ticket_queue/internal/response"
	"ticket_queue/internal/storage"

	"github.com/gin-gonic/gin"
)

var displayCtx = context.Background()

func displayCacheKey(serviceDate string) string {
	return "display_" + serviceDate
}

// Табло опрашивает сервис раз в несколько секунд, поэтому TTL короткий.
func displayCacheTTL() time.Duration {
	raw := os.Getenv("DISPLAY_CACHE_TTL_SECONDS")
	if raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 5 * time.Second
}

// Кэш сбрасывается при любой записи на дату, чтобы табло не показывало
// устаревший снимок дольше одного опроса.
func invalidateDisplayCache(serviceDate string) {
	storage.RedisClient.Del(displayCtx, displayCacheKey(serviceDate))
}

// DisplayHandler обрабатывает запрос снимка очереди для табло
// @Summary		Снимок очереди для табло
// @Description	Возвращает неаннулированные талоны на дату в сокращённом виде для информационного табло. Результат кэшируется в Redis, при недоступном Redis читается напрямую из базы
// @Tags			display
// @Accept			json
// @Produce		json
// @Param			service_date	query		string	false	"Дата обслуживания YYYY-MM-DD (по умолчанию сегодня)"
// @Success		200	{object}	response.DisplayResponse	"Снимок очереди"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SERVICE_DATE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/display [get]
func DisplayHandler(c *gin.Context) {
	serviceDate, err := queue.ResolveDate(c.Query("service_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE_DATE",
			Message: "Неверный формат даты обслуживания",
			Details: err.Error(),
		})
		return
	}

	// Проверка кэша
	cached, err := storage.RedisClient.Get(displayCtx, displayCacheKey(serviceDate)).Result()
	if err == nil && cached != "" {
		var snapshot response.DisplayResponse
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			c.JSON(http.StatusOK, snapshot)
			return
		}
	}

	var entries []models.QueueEntry
	if err := storage.DB.
		Where("service_date = ? AND voided = ?", serviceDate, false).
		Order("queue_number ASC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки талонов",
			Details: err.Error(),
		})
		return
	}

	items := make([]response.DisplayItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, response.DisplayItem{
			Ticket: queue.FormatTicket(entry.QueueNumber),
			Name:   entry.Name,
			Phone:  entry.Phone,
		})
	}

	snapshot := response.DisplayResponse{
		ServiceDate: serviceDate,
		Count:       len(items),
		Queue:       items,
	}

	// Кэширование результата
	if raw, err := json.Marshal(snapshot); err == nil {
		storage.RedisClient.Set(displayCtx, displayCacheKey(serviceDate), raw, displayCacheTTL())
	}

	c.JSON(http.StatusOK, snapshot)
}

// HealthHandler обрабатывает проверку живости сервиса
// @Summary		Проверка живости
// @Description	Проверяет доступность базы данных
// @Tags			health
// @Produce		json
// @Success		200	{object}	map[string]string	"status: ok"
// @Failure		500	{object}	response.ErrorResponse	"База данных недоступна (DB_ERROR)"
// @Router			/queue/health [get]
func HealthHandler(c *gin.Context) {
	sqlDB, err := storage.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "База данных недоступна",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdminPageHandler отдаёт страницу оператора
// @Summary		Страница оператора
// @Description	HTML-страница с формой выдачи талонов и текущим состоянием очереди
// @Tags			admin
// @Produce		html
// @Success		200	{string}	string	"HTML"
// @Router			/queue/admin [get]
func AdminPageHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{})
}
