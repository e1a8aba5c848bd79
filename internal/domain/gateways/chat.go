package gateways

import (
	"context"

	"studio-ops.backend/internal/domain/entities"
)

// ChatGateway is the outbound side of the chat platform.
// Missing channels or threads are reported as not-found AppErrors.
type ChatGateway interface {
	CreateThread(ctx context.Context, channelID, name string) (string, error)
	AddThreadMember(ctx context.Context, threadID, userID string) error
	RemoveThreadMember(ctx context.Context, threadID, userID string) error
	Send(ctx context.Context, channelID string, msg *entities.ChatMessage) (string, error)
	ClearComponents(ctx context.Context, channelID, messageID string) error
	// ReactToStarter adds an emoji to the first message of a thread.
	ReactToStarter(ctx context.Context, threadID, emoji string) error
	DeleteChannel(ctx context.Context, channelID string) error
	// VerifyThread checks that the id resolves to a thread channel.
	VerifyThread(ctx context.Context, threadID string) error
}
