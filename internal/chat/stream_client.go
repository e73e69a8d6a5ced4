package chat

import (
	"context"
	"fmt"
	"time"

	stream "github.com/GetStream/stream-chat-go/v5"
)

// StreamClient is the surface this service needs from the external chat/video
// provider. The provider mirrors identity for transport only; it is never a
// source of truth for this system's state.
type StreamClient interface {
	// UpsertUser creates or updates the provider-side user. Idempotent.
	UpsertUser(ctx context.Context, id, name, image string) error
	// CreateToken mints a token the client uses to connect to the provider.
	CreateToken(userID string) (string, error)
}

type streamClient struct {
	client *stream.Client
}

// NewStreamClient builds a provider client from API credentials. Call sites
// receive the handle explicitly so tests can substitute a fake.
func NewStreamClient(apiKey, apiSecret string) (StreamClient, error) {
	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %w", err)
	}
	return &streamClient{client: client}, nil
}

func (s *streamClient) UpsertUser(ctx context.Context, id, name, image string) error {
	_, err := s.client.UpsertUser(ctx, &stream.User{
		ID:    id,
		Name:  name,
		Image: image,
	})
	return err
}

func (s *streamClient) CreateToken(userID string) (string, error) {
	return s.client.CreateToken(userID, time.Time{})
}
