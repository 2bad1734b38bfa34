package domain

import "time"

// MaxMessageLength bounds message content, matching the column limit.
const MaxMessageLength = 1000

// Message is a board entry keyed by a monotonically increasing identifier.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}
