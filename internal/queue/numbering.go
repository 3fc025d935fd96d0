package queue

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"ticket_queue/internal/models"
	"ticket_queue/internal/storage"
)

// MaxNumber — предел номеров талонов на одну дату обслуживания.
const MaxNumber = 999

// DateLayout — формат даты обслуживания.
const DateLayout = "2006-01-02"

// ErrCapacityExceeded возвращается, когда на дату уже выдано 999 талонов.
var ErrCapacityExceeded = errors.New("лимит номеров на день исчерпан")

var (
	locksMu sync.Mutex
	locks   = make(map[string]*sync.Mutex)
)

// Lock возвращает мьютекс даты обслуживания. Подсчёт номера и вставка талона
// выполняются под этим мьютексом, иначе два одновременных запроса могут
// получить одинаковый номер. Уникальный индекс (service_date, cycle,
// queue_number) остаётся страховкой на уровне базы.
func Lock(serviceDate string) *sync.Mutex {
	locksMu.Lock()
	defer locksMu.Unlock()
	m, ok := locks[serviceDate]
	if !ok {
		m = &sync.Mutex{}
		locks[serviceDate] = m
	}
	return m
}

// NextNumber считает следующий номер талона: количество неаннулированных
// записей на дату + 1. Счётчик нигде не хранится, номер всегда выводится из
// строк таблицы. Вызывающий обязан держать Lock(serviceDate).
func NextNumber(serviceDate string) (int, error) {
	var count int64
	if err := storage.DB.Model(&models.QueueEntry{}).
		Where("service_date = ? AND voided = ?", serviceDate, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	next := int(count) + 1
	if next > MaxNumber {
		return 0, ErrCapacityExceeded
	}
	return next, nil
}

// FormatTicket приводит номер к трёхзначному виду табло: 1 -> "001".
func FormatTicket(number int) string {
	return fmt.Sprintf("%03d", number)
}

// Today возвращает сегодняшнюю дату обслуживания в часовом поясе из
// QUEUE_TIMEZONE, по умолчанию — в локальном.
func Today() string {
	loc := time.Local
	if tz := os.Getenv("QUEUE_TIMEZONE"); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return time.Now().In(loc).Format(DateLayout)
}

// ResolveDate валидирует дату из запроса; пустое значение означает "сегодня".
func ResolveDate(value string) (string, error) {
	if value == "" || value == "null" {
		return Today(), nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("service_date должна быть в формате YYYY-MM-DD: %w", err)
	}
	return t.Format(DateLayout), nil
}
