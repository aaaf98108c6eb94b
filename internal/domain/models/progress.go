package models

import "time"

// ProgressEntry - отметка о прохождении одного вэйпоинта в рамках цепочки.
// Ключ (UserID, Chain, Waypoint) уникален.
type ProgressEntry struct {
	UserID    int64     `json:"user_id"`
	Chain     string    `json:"chain"`
	Waypoint  int       `json:"waypoint"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}
