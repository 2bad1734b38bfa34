package dto

// CreateMessageRequest payload for posting a message.
type CreateMessageRequest struct {
	Content string `json:"content"`
}
