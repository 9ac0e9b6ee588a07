package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ChatMessage is a single entry of the append-only message log scoped to one
// order. Messages are never edited or removed.
type ChatMessage struct {
	Id        string
	OrderId   string
	Sender    string
	Text      string
	Timestamp int64
}

// NewChatMessage returns a chat message after validating sender and text.
func NewChatMessage(orderId, sender, text string, timestamp int64) (*ChatMessage, error) {
	if sender == "" {
		return nil, ErrChatMissingSender
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrChatEmptyMessage
	}
	return &ChatMessage{
		Id:        uuid.New().String(),
		OrderId:   orderId,
		Sender:    sender,
		Text:      text,
		Timestamp: timestamp,
	}, nil
}

const chatGreeting = "Welcome to the trade chat. Keep all communication here and never complete the payment outside the platform."

// SeedMessageTexts returns the deterministic system messages a fresh chat
// channel is seeded with. The texts depend only on the order type, on
// whether payment details were attached at placement time and on the current
// status, so that the seed is reproducible for identical orders.
func SeedMessageTexts(o *Order) []string {
	texts := []string{chatGreeting}

	switch o.Type {
	case TradeTypeBuy:
		if o.HasPaymentDetails() {
			texts = append(texts,
				"The seller's payment details are attached to this order. Transfer the exact fiat amount using the agreed method, then mark the order as paid.",
				"The crypto amount is held in escrow and will be released once the seller confirms your payment.",
			)
		} else {
			texts = append(texts,
				"Ask the seller for their payment details before transferring any funds.",
				"The crypto amount is held in escrow and will be released once the seller confirms your payment.",
			)
		}
	case TradeTypeSell:
		if o.HasPaymentDetails() {
			texts = append(texts,
				"Your payment details were shared with the buyer. Wait for the fiat transfer before releasing the crypto amount.",
			)
		} else {
			texts = append(texts,
				"Share your payment details with the buyer, then wait for the fiat transfer before releasing the crypto amount.",
			)
		}
	}

	if statusText, ok := transitionTexts[transitionKey{o.Status.Code, o.Type}]; ok {
		texts = append(texts, statusText)
	}
	return texts
}

type transitionKey struct {
	statusCode int
	orderType  string
}

var transitionTexts = map[transitionKey]string{
	{OrderStatusCodeAwaitingRelease, TradeTypeBuy}:  "Payment marked as sent. Waiting for the seller to confirm it and release the crypto amount.",
	{OrderStatusCodeAwaitingRelease, TradeTypeSell}: "The buyer marked the payment as sent. Confirm you received it to release the crypto amount.",
	{OrderStatusCodeCompleted, TradeTypeBuy}:        "The seller released the crypto amount. This trade is complete.",
	{OrderStatusCodeCompleted, TradeTypeSell}:       "You released the crypto amount. This trade is complete.",
	{OrderStatusCodeCancelled, TradeTypeBuy}:        "This order was cancelled. No funds were exchanged.",
	{OrderStatusCodeCancelled, TradeTypeSell}:       "This order was cancelled. No funds were exchanged.",
	{OrderStatusCodeDisputeOpened, TradeTypeBuy}:    "A dispute was opened on this order. An arbitrator will review the conversation.",
	{OrderStatusCodeDisputeOpened, TradeTypeSell}:   "A dispute was opened on this order. An arbitrator will review the conversation.",
}

// TransitionMessageText returns the system message describing the current
// order status, or an empty string for pending orders.
func TransitionMessageText(o *Order) string {
	return transitionTexts[transitionKey{o.Status.Code, o.Type}]
}
