package services

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/messaging"

	"barterBack/internal/repositories"
)

var notificationTitles = map[string]string{
	"exchange_completed": "Обмен завершён",
	"new_rating":         "Новая оценка",
	"new_message":        "Новое сообщение",
}

// NotificationService delivers push notifications over FCM. Delivery is
// fire-and-forget: a failed push is logged and never surfaces to the flow
// that triggered it. With a nil client the service only logs, which keeps
// local setups working without firebase credentials.
type NotificationService struct {
	Client *messaging.Client
	Users  *repositories.UserRepository
}

func (s *NotificationService) Notify(userID int, event string, payload map[string]string) {
	go s.send(userID, event, payload)
}

func (s *NotificationService) send(userID int, event string, payload map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.Client == nil {
		log.Printf("notify (no fcm client): user=%d event=%s", userID, event)
		return
	}

	tokens, err := s.Users.GetDeviceTokens(ctx, userID)
	if err != nil {
		log.Printf("notify: fetch tokens for user=%d: %v", userID, err)
		return
	}

	title := notificationTitles[event]
	if title == "" {
		title = event
	}
	data := map[string]string{"event": event}
	for k, v := range payload {
		data[k] = v
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority_channel",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: title,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := s.Client.Send(ctx, message); err != nil {
			log.Printf("notify: send to user=%d: %v", userID, err)
		}
	}
}
