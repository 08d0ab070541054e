package events

import (
	"github.com/google/uuid"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// SuggestionPublishedTopic — топик шины для события публикации предложения.
const SuggestionPublishedTopic = "suggestion:published"

// SuggestionPublished публикуется конвейером после коммита пары
// предложение+уведомление. Подписчики (вебсокет) доставляют уведомление
// пользователям, которым принадлежит привязанный аккаунт.
type SuggestionPublished struct {
	UpworkAccountID uuid.UUID
	Suggestion      models.SuggestedJob
	Notification    models.Notification
}
