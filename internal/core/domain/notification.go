package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a record addressed to the counterparty of an order event.
// Records are only ever created and flipped to read, never deleted.
type Notification struct {
	Id          string
	RecipientId string
	Type        string
	Message     string
	OrderId     string
	Read        bool
	CreatedAt   int64
}

// NewNotification returns an unread notification for the given recipient.
func NewNotification(recipientId, notificationType, message, orderId string) (*Notification, error) {
	if recipientId == "" {
		return nil, ErrNotificationMissingRecipient
	}
	return &Notification{
		Id:          uuid.New().String(),
		RecipientId: recipientId,
		Type:        notificationType,
		Message:     message,
		OrderId:     orderId,
		Read:        false,
		CreatedAt:   time.Now().UnixMilli(),
	}, nil
}

// MarkRead flips the read flag. Calling it on an already read notification
// is a no-op.
func (n *Notification) MarkRead() {
	n.Read = true
}
