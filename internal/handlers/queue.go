package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"ticket_queue/internal/models"
	"ticket_queue/internal/queue"
	"ticket_queue/internal/response"
	"ticket_queue/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StartDayRequest struct {
	ServiceDate string `json:"service_date" example:"2024-05-20"`
	Overwrite   bool   `json:"overwrite"`
}

// StartDayHandler обрабатывает запуск очереди на дату
// @Summary		Запуск дня
// @Description	Запускает очередь на дату. С overwrite аннулирует все выданные талоны и начинает новый цикл нумерации с 001, история строк сохраняется
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			input	body		StartDayRequest	false	"Дата обслуживания (по умолчанию сегодня) и флаг перезаписи"
// @Success		200	{object}	response.StartDayResponse	"Очередь запущена"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_SERVICE_DATE, ALREADY_STARTED)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/start-day [post]
func StartDayHandler(c *gin.Context) {
	var req StartDayRequest
	// Пустое тело допустимо: сегодняшняя дата без перезаписи.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Некорректное тело запроса",
			Details: err.Error(),
		})
		return
	}

	serviceDate, err := queue.ResolveDate(req.ServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE_DATE",
			Message: "Неверный формат даты обслуживания",
			Details: err.Error(),
		})
		return
	}

	lock := queue.Lock(serviceDate)
	lock.Lock()
	defer lock.Unlock()

	var day models.QueueDay
	err = storage.DB.Where("service_date = ?", serviceDate).First(&day).Error
	switch {
	case err == nil && !req.Overwrite:
		// Отметка дня могла появиться без талонов (полуночная задача).
		// Занятым день считается только с хотя бы одним неаннулированным талоном.
		var active int64
		if err := storage.DB.Model(&models.QueueEntry{}).
			Where("service_date = ? AND voided = ?", serviceDate, false).
			Count(&active).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка подсчёта талонов",
				Details: err.Error(),
			})
			return
		}
		if active > 0 {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "ALREADY_STARTED",
				Message: "Очередь на эту дату уже запущена",
			})
			return
		}
		day.StartedAt = time.Now()
		if err := storage.DB.Save(&day).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка обновления дня",
				Details: err.Error(),
			})
			return
		}
	case err == nil && req.Overwrite:
		// Сброс дня: аннулируем талоны вместо удаления, строки остаются для истории.
		if err := storage.DB.Model(&models.QueueEntry{}).
			Where("service_date = ? AND voided = ?", serviceDate, false).
			Update("voided", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка аннулирования талонов",
				Details: err.Error(),
			})
			return
		}
		day.Cycle++
		day.StartedAt = time.Now()
		if err := storage.DB.Save(&day).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка обновления дня",
				Details: err.Error(),
			})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		day = models.QueueDay{ServiceDate: serviceDate, StartedAt: time.Now(), Cycle: 1}
		if err := storage.DB.Create(&day).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка создания дня",
				Details: err.Error(),
			})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка чтения дня",
			Details: err.Error(),
		})
		return
	}

	invalidateDisplayCache(serviceDate)

	c.JSON(http.StatusOK, response.StartDayResponse{
		ServiceDate: serviceDate,
		StartedAt:   day.StartedAt,
		Cycle:       day.Cycle,
		Message:     "Очередь запущена",
	})
}

type CreateEntryRequest struct {
	Name        string `json:"name" form:"name" example:"Иванов Иван"`
	Phone       string `json:"phone" form:"phone" example:"+79990000000"`
	ServiceDate string `json:"service_date" form:"service_date" example:"2024-05-20"`
}

func createEntry(c *gin.Context, req CreateEntryRequest, status int) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Имя обязательно",
		})
		return
	}

	serviceDate, err := queue.ResolveDate(req.ServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE_DATE",
			Message: "Неверный формат даты обслуживания",
			Details: err.Error(),
		})
		return
	}

	lock := queue.Lock(serviceDate)
	lock.Lock()
	defer lock.Unlock()

	// Первый талон запускает день неявно.
	var day models.QueueDay
	if err := storage.DB.Where("service_date = ?", serviceDate).First(&day).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка чтения дня",
				Details: err.Error(),
			})
			return
		}
		day = models.QueueDay{ServiceDate: serviceDate, StartedAt: time.Now(), Cycle: 1}
		if err := storage.DB.Create(&day).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка создания дня",
				Details: err.Error(),
			})
			return
		}
	}

	number, err := queue.NextNumber(serviceDate)
	if errors.Is(err, queue.ErrCapacityExceeded) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "CAPACITY_EXCEEDED",
			Message: "Лимит талонов на день исчерпан",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка подсчёта номера",
			Details: err.Error(),
		})
		return
	}

	var phone *string
	if p := strings.TrimSpace(req.Phone); p != "" {
		phone = &p
	}

	entry := models.QueueEntry{
		ServiceDate: serviceDate,
		Cycle:       day.Cycle,
		QueueNumber: number,
		Name:        name,
		Phone:       phone,
	}
	if err := storage.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка выдачи талона",
			Details: err.Error(),
		})
		return
	}

	invalidateDisplayCache(serviceDate)

	c.JSON(status, response.EntryResponse{
		ID:          entry.ID,
		ServiceDate: serviceDate,
		Ticket:      queue.FormatTicket(number),
		Name:        name,
		Phone:       phone,
		CreatedAt:   entry.CreatedAt,
	})
}

// CreateEntryHandler обрабатывает выдачу талона (JSON)
// @Summary		Выдача талона
// @Description	Выдаёт следующий номер талона на дату обслуживания (по умолчанию сегодня)
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			input	body		CreateEntryRequest	true	"Имя (обязательно), телефон и дата (опционально)"
// @Success		201	{object}	response.EntryResponse	"Выданный талон"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_SERVICE_DATE, CAPACITY_EXCEEDED)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/entries [post]
func CreateEntryHandler(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Некорректное тело запроса",
			Details: err.Error(),
		})
		return
	}
	createEntry(c, req, http.StatusCreated)
}

// CreateEntryFormHandler обрабатывает выдачу талона из form-данных
// @Summary		Выдача талона (Xibo)
// @Description	То же, что POST /queue/entries, но поля принимаются как application/x-www-form-urlencoded — ограничение табло Xibo
// @Tags			queue
// @Accept			x-www-form-urlencoded
// @Produce		json
// @Param			name			formData	string	true	"Имя"
// @Param			phone			formData	string	false	"Телефон"
// @Param			service_date	formData	string	false	"Дата обслуживания YYYY-MM-DD"
// @Success		200	{object}	response.EntryResponse	"Выданный талон"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_SERVICE_DATE, CAPACITY_EXCEEDED)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/xibo [post]
func CreateEntryFormHandler(c *gin.Context) {
	req := CreateEntryRequest{
		Name:        c.PostForm("name"),
		Phone:       c.PostForm("phone"),
		ServiceDate: c.PostForm("service_date"),
	}
	createEntry(c, req, http.StatusOK)
}

// ListEntriesHandler обрабатывает запрос списка талонов
// @Summary		Список талонов
// @Description	Возвращает неаннулированные талоны на дату по возрастанию номера. Дата без талонов — пустой список, не ошибка
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			service_date	query		string	false	"Дата обслуживания YYYY-MM-DD (по умолчанию сегодня)"
// @Success		200	{array}		response.EntryResponse	"Талоны по порядку номеров"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SERVICE_DATE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/entries [get]
func ListEntriesHandler(c *gin.Context) {
	serviceDate, err := queue.ResolveDate(c.Query("service_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE_DATE",
			Message: "Неверный формат даты обслуживания",
			Details: err.Error(),
		})
		return
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

	out := make([]response.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, response.EntryResponse{
			ID:          entry.ID,
			ServiceDate: entry.ServiceDate,
			Ticket:      queue.FormatTicket(entry.QueueNumber),
			Name:        entry.Name,
			Phone:       entry.Phone,
			CreatedAt:   entry.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}
