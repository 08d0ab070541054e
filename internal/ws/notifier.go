package ws

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/bidbotteam/bidbot-backend/internal/events"
	"github.com/bidbotteam/bidbot-backend/internal/logger"
)

// Событие для клиента при публикации нового предложения.
const eventSuggestionPublished = "suggestion_published"

// UserResolver отдаёт пользователей, которым принадлежит привязанный аккаунт.
type UserResolver interface {
	ListUserIDsByUpworkAccount(ctx context.Context, upworkAccountID uuid.UUID) ([]uuid.UUID, error)
}

// Notifier подписан на шину событий и транслирует уведомления
// пайплайна в WebSocket подключения владельцев аккаунта.
type Notifier struct {
	hub      *Hub
	resolver UserResolver
}

// NewNotifier создаёт нотификатор и подписывает его на шину.
func NewNotifier(hub *Hub, resolver UserResolver, bus EventBus.Bus) (*Notifier, error) {
	n := &Notifier{hub: hub, resolver: resolver}

	// Async-подписка: доставка не должна тормозить пайплайн.
	if err := bus.SubscribeAsync(events.SuggestionPublishedTopic, n.onSuggestionPublished, false); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Notifier) onSuggestionPublished(event events.SuggestionPublished) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userIDs, err := n.resolver.ListUserIDsByUpworkAccount(ctx, event.UpworkAccountID)
	if err != nil {
		logger.Log.Errorf("ws notifier: поиск получателей: %v", err)
		return
	}

	for _, userID := range userIDs {
		if err := n.hub.SendToUser(userID, eventSuggestionPublished, event.Notification); err != nil {
			logger.Log.Errorf("ws notifier: отправка пользователю %s: %v", userID, err)
		}
	}
}
