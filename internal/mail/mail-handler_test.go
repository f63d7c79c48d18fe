package mail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sendErr error

	calls int
	to    string
	name  string
	link  string
}

func (f *fakeSender) SendResetEmail(to, name, link string) error {
	f.calls++
	f.to = to
	f.name = name
	f.link = link
	return f.sendErr
}

func TestHandleMessage_SendsMail(t *testing.T) {
	sender := &fakeSender{}
	h := NewMailHandler(sender)

	err := h.HandleMessage(`{"email":"owner@example.com","name":"Owner","link":"https://app.example.com/reset-password?token=abc"}`)

	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "owner@example.com", sender.to)
	assert.Equal(t, "Owner", sender.name)
	assert.Equal(t, "https://app.example.com/reset-password?token=abc", sender.link)
}

func TestHandleMessage_BadPayload(t *testing.T) {
	sender := &fakeSender{}
	h := NewMailHandler(sender)

	assert.Error(t, h.HandleMessage(`not json`))
	assert.Error(t, h.HandleMessage(`{"name":"Owner","link":"x"}`))
	assert.Error(t, h.HandleMessage(`{"email":"owner@example.com","name":"Owner"}`))
	assert.Zero(t, sender.calls)
}

func TestHandleMessage_PropagatesSendError(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("smtp timeout")}
	h := NewMailHandler(sender)

	err := h.HandleMessage(`{"email":"owner@example.com","name":"Owner","link":"https://x/reset-password?token=abc"}`)
	assert.Error(t, err)
}
