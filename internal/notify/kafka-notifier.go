package notify

import (
	"encoding/json"

	"github.com/atlasfin/backoffice/internal/interfaces"
)

const ResetPasswordEventKey = "user.reset_password"

// ResetPasswordEvent is the wire payload consumed by the mail worker.
type ResetPasswordEvent struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Link  string `json:"link"`
}

// KafkaNotifier hands reset mails to the mail worker via the event topic.
// A failed publish means the mail will never be sent, which the credential
// service surfaces as a delivery failure.
type KafkaNotifier struct {
	producer interfaces.ProducerHandler
}

func NewKafkaNotifier(producer interfaces.ProducerHandler) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) SendPasswordReset(to, name, link string) error {
	payload, err := json.Marshal(ResetPasswordEvent{
		Email: to,
		Name:  name,
		Link:  link,
	})
	if err != nil {
		return err
	}

	return n.producer.PublishMessage([]byte(ResetPasswordEventKey), payload)
}
