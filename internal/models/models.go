package models

import (
	"time"

	"gorm.io/gorm"
)

type QueueDay struct {
	gorm.Model
	ServiceDate string    `gorm:"size:10;uniqueIndex;not null"` // Дата обслуживания в формате YYYY-MM-DD
	StartedAt   time.Time `gorm:"not null"`                     // Время запуска (или последнего сброса) очереди
	Cycle       int       `gorm:"not null;default:1"`           // Текущий цикл нумерации, увеличивается при перезаписи дня
}

type QueueEntry struct {
	gorm.Model
	ServiceDate string  `gorm:"size:10;index;not null;uniqueIndex:uq_ticket_per_cycle"`
	Cycle       int     `gorm:"not null;default:1;uniqueIndex:uq_ticket_per_cycle"`
	QueueNumber int     `gorm:"not null;uniqueIndex:uq_ticket_per_cycle"` // Номер талона 1..999 внутри цикла
	Name        string  `gorm:"size:255;not null"`
	Phone       *string `gorm:"size:32"`                      // Телефон не обязателен
	Voided      bool    `gorm:"not null;default:false;index"` // Талон аннулирован перезапуском дня, строка сохраняется для истории
}
