package tasks

import (
	"log"
	"time"

	"ticket_queue/internal/models"
	"ticket_queue/internal/queue"
	"ticket_queue/internal/storage"

	"github.com/robfig/cron/v3"
)

// EnsureTodayStarted создаёт запись дня на сегодняшнюю дату, если её ещё нет.
// Первый талон запускает день и сам, задача лишь фиксирует started_at ровно в полночь.
func EnsureTodayStarted() {
	serviceDate := queue.Today()

	lock := queue.Lock(serviceDate)
	lock.Lock()
	defer lock.Unlock()

	var day models.QueueDay
	if err := storage.DB.Where("service_date = ?", serviceDate).First(&day).Error; err == nil {
		log.Printf("Очередь на %s уже запущена.\n", serviceDate)
		return
	}

	day = models.QueueDay{ServiceDate: serviceDate, StartedAt: time.Now(), Cycle: 1}
	if err := storage.DB.Create(&day).Error; err != nil {
		log.Println("Ошибка запуска очереди на новый день:", err)
		return
	}
	log.Printf("Очередь на %s запущена автоматически.\n", serviceDate)
}

// ReportDailyTotals пишет в лог итоги дня и возвращает, сколько талонов за
// сегодня выдано и сколько аннулировано.
func ReportDailyTotals() (issued, voided int64) {
	serviceDate := queue.Today()

	if err := storage.DB.Model(&models.QueueEntry{}).
		Where("service_date = ? AND voided = ?", serviceDate, false).
		Count(&issued).Error; err != nil {
		log.Println("Ошибка подсчёта итогов дня:", err)
		return 0, 0
	}
	storage.DB.Model(&models.QueueEntry{}).
		Where("service_date = ? AND voided = ?", serviceDate, true).
		Count(&voided)

	log.Printf("Итог дня %s: выдано %d талонов, аннулировано %d.\n", serviceDate, issued, voided)
	return issued, voided
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Запуск нового дня ровно в полночь.
	_, err := c.AddFunc("0 0 0 * * *", EnsureTodayStarted)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи EnsureTodayStarted:", err)
	}

	// Итоги дня в 23:55.
	_, err = c.AddFunc("0 55 23 * * *", func() { ReportDailyTotals() })
	if err != nil {
		log.Println("Ошибка запуска cron-задачи ReportDailyTotals:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
