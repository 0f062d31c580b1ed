package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Notify persists an in-app notification and publishes it to the
// notification queue for email delivery. Fire-and-forget: a failure here is
// logged and swallowed, it never rolls back whatever triggered it.
func (h *Handler) Notify(userID int64, typ domain.NotificationType, title, message string, referenceID *int64) {
	n := &domain.Notification{
		UserID:      userID,
		Type:        typ,
		Title:       title,
		Message:     message,
		ReferenceID: referenceID,
	}
	if err := h.repository.CreateNotification(n); err != nil {
		slog.Error("failed to persist notification", "userID", userID, "type", typ, "error", err)
		return
	}

	user, err := h.repository.GetUserByID(userID)
	if err != nil {
		slog.Error("failed to load notification recipient", "userID", userID, "error", err)
		return
	}

	msg := domain.QueueMessage{
		Type: string(typ),
		To:   user.Email,
		Data: map[string]any{
			"fullName": user.FullName,
			"title":    title,
			"message":  message,
		},
	}
	if err := h.publishQueueMessage(msg); err != nil {
		slog.Error("failed to publish notification", "userID", userID, "type", typ, "error", err)
	}
}

func (h *Handler) publishQueueMessage(msg domain.QueueMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
