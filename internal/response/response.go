package response

import "time"

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Имя обязательно
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	Details string `json:"details,omitempty"`
}

// StartDayResponse представляет результат запуска дня
type StartDayResponse struct {
	ServiceDate string    `json:"service_date"`
	StartedAt   time.Time `json:"started_at"`
	Cycle       int       `json:"cycle"`
	Message     string    `json:"message"`
}

// EntryResponse представляет выданный талон
type EntryResponse struct {
	ID          uint      `json:"id"`
	ServiceDate string    `json:"service_date"`
	Ticket      string    `json:"ticket" example:"001"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayItem — строка табло: номер, имя, телефон
type DisplayItem struct {
	Ticket string  `json:"ticket" example:"001"`
	Name   string  `json:"name"`
	Phone  *string `json:"phone"`
}

// DisplayResponse — снимок очереди для информационного табло
type DisplayResponse struct {
	ServiceDate string        `json:"service_date"`
	Count       int           `json:"count"`
	Queue       []DisplayItem `json:"queue"`
}
