package models

import "time"

// User представляет учетную запись пользователя
type User struct {
	ID            int64
	Email         string
	PassHash      []byte
	CreatedAt     time.Time
	LastLogin     time.Time
	LastVisit     time.Time
	ReminderOptIn bool
}
