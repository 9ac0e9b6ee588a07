package domain

import "context"

// ChatRepository is the abstraction for any kind of database intended to
// persist the append-only chat log of the orders.
type ChatRepository interface {
	// AddMessage appends a message to the chat log of its order.
	AddMessage(ctx context.Context, message *ChatMessage) error
	// GetMessages returns all the messages of the given order sorted by
	// ascending timestamp.
	GetMessages(ctx context.Context, orderId string) ([]ChatMessage, error)
	// CountMessages returns the number of messages of the given order.
	CountMessages(ctx context.Context, orderId string) (int, error)
}
