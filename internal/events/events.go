// Package events publishes account lifecycle events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/authd-io/apiserver/types"
)

// ChannelAccountCreated is the broker channel for signup events.
const ChannelAccountCreated = "account.created"

// AccountCreated is the payload published when a new account is registered.
type AccountCreated struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Backend defines the broker-agnostic publish operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Stream wraps a backend with a stable API for account events.
type Stream struct {
	backend Backend
}

// NewStream constructs a Stream for the provided backend.
func NewStream(backend Backend) *Stream {
	return &Stream{backend: backend}
}

// PublishAccountCreated emits an account.created event for the account.
func (s *Stream) PublishAccountCreated(ctx context.Context, account types.Account) error {
	payload, err := json.Marshal(AccountCreated{
		ID:        account.ID,
		Email:     account.Email,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	})
	if err != nil {
		return err
	}
	_, err = s.backend.Publish(ctx, ChannelAccountCreated, payload, map[string]string{
		"content-type": "application/json",
	})
	return err
}

// Close closes the underlying backend.
func (s *Stream) Close() error {
	return s.backend.Close()
}
