package api

import (
	"context"

	"bookit/internal/domain"
)

var _ domain.ChatAPI = (*Client)(nil)

func (c *Client) ListChats(ctx context.Context) ([]domain.Chat, error) {
	var out []domain.Chat
	return out, c.get(ctx, pathChats, nil, &out)
}

// GetChat returns the chat with its full message history.
func (c *Client) GetChat(ctx context.Context, id domain.ChatID) (domain.Chat, error) {
	var out domain.Chat
	return out, c.get(ctx, join(pathChats, id.String()), nil, &out)
}

func (c *Client) CreateChat(ctx context.Context, req domain.CreateChatRequest) (domain.Chat, error) {
	var out domain.Chat
	return out, c.post(ctx, pathChats, req, &out)
}

// AddMessage is the durable half of a send; the server echoes the stored message.
func (c *Client) AddMessage(ctx context.Context, id domain.ChatID, req domain.NewMessageRequest) (domain.Message, error) {
	var out domain.Message
	return out, c.post(ctx, chatMessagesPath(id.String()), req, &out)
}

func (c *Client) MarkRead(ctx context.Context, id domain.ChatID) error {
	return c.put(ctx, chatReadPath(id.String()), nil, nil)
}
