package mail

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/atlasfin/backoffice/internal/notify"
)

type ResetSender interface {
	SendResetEmail(to, name, link string) error
}

// MailHandler turns queue messages into outbound mail.
type MailHandler struct {
	svc ResetSender
}

func NewMailHandler(svc ResetSender) *MailHandler {
	return &MailHandler{svc: svc}
}

func (h *MailHandler) HandleMessage(message string) error {
	var event notify.ResetPasswordEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		return err
	}

	if strings.TrimSpace(event.Email) == "" {
		return errors.New("reset event missing email")
	}
	if strings.TrimSpace(event.Link) == "" {
		return errors.New("reset event missing link")
	}

	return h.svc.SendResetEmail(event.Email, event.Name, event.Link)
}
