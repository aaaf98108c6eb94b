package models

import "time"

// ResetCode представляет одноразовый код для сброса пароля
type ResetCode struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// Valid сообщает, можно ли ещё принять код
func (c *ResetCode) Valid(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}
