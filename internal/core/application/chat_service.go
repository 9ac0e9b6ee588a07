package application

import (
	"context"
	"time"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// ChatService manages the append-only message log scoped to one order.
// Timestamps are unix milliseconds so that the seed messages keep their
// emission order.
type ChatService interface {
	// GetMessages returns the chat log of the order, seeding it first if it
	// is read while still empty.
	GetMessages(ctx context.Context, orderId string) ([]domain.ChatMessage, error)
	AddMessage(
		ctx context.Context, orderId, sender, text string,
	) (*domain.ChatMessage, error)
	// EnsureSeeded seeds the channel of the given order unless it holds
	// messages already.
	EnsureSeeded(ctx context.Context, order *domain.Order) ([]domain.ChatMessage, error)
	CountMessages(ctx context.Context, orderId string) (int, error)
}

type chatService struct {
	repoManager ports.RepoManager
}

// NewChatService returns a ChatService backed by the given storage.
func NewChatService(repoManager ports.RepoManager) ChatService {
	return &chatService{repoManager}
}

func (s *chatService) GetMessages(
	ctx context.Context, orderId string,
) ([]domain.ChatMessage, error) {
	messages, err := s.repoManager.ChatRepository().GetMessages(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		return messages, nil
	}

	// A channel read while empty gets seeded on the spot. This covers orders
	// whose status already changed before the chat view was first opened.
	order, err := s.repoManager.OrderRepository().GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.EnsureSeeded(ctx, order)
}

func (s *chatService) AddMessage(
	ctx context.Context, orderId, sender, text string,
) (*domain.ChatMessage, error) {
	order, err := s.repoManager.OrderRepository().GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	message, err := domain.NewChatMessage(
		orderId, sender, text, time.Now().UnixMilli(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.repoManager.ChatRepository().AddMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *chatService) EnsureSeeded(
	ctx context.Context, order *domain.Order,
) ([]domain.ChatMessage, error) {
	count, err := s.repoManager.ChatRepository().CountMessages(ctx, order.Id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return s.repoManager.ChatRepository().GetMessages(ctx, order.Id)
	}

	texts := domain.SeedMessageTexts(order)
	now := time.Now().UnixMilli()
	seeded := make([]domain.ChatMessage, 0, len(texts))
	for i, text := range texts {
		message, err := domain.NewChatMessage(
			order.Id, domain.SystemSender, text, now+int64(i),
		)
		if err != nil {
			return nil, err
		}
		if err := s.repoManager.ChatRepository().AddMessage(ctx, message); err != nil {
			return nil, err
		}
		seeded = append(seeded, *message)
	}
	return seeded, nil
}

func (s *chatService) CountMessages(
	ctx context.Context, orderId string,
) (int, error) {
	return s.repoManager.ChatRepository().CountMessages(ctx, orderId)
}
