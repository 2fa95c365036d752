package types

// Message is one entry in the message table.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// MessageRequest is the request body for posting a message.
type MessageRequest struct {
	Text string `json:"text"`
}

// MessageList is the response body for listing messages.
type MessageList struct {
	Message string    `json:"message"`
	Data    []Message `json:"data"`
}

// MessageCreated is the response body for a saved message.
type MessageCreated struct {
	Status string  `json:"status"`
	Item   Message `json:"item"`
}

// Health is the response body of the health check.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// APIError is the error body returned by the backend.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
