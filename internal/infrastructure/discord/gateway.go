package discord

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/pkg/logger"
)

const (
	maxThreadNameLen    = 100
	threadArchiveMinute = 10080
)

// Gateway posts to Discord through a bot session
type Gateway struct {
	session Session
	open    FileOpener
}

// NewGateway creates a chat gateway
func NewGateway(session Session, open FileOpener) *Gateway {
	return &Gateway{session: session, open: open}
}

var _ gateways.ChatGateway = (*Gateway)(nil)

func (g *Gateway) CreateThread(ctx context.Context, channelID, name string) (string, error) {
	runes := []rune(name)
	if len(runes) > maxThreadNameLen {
		name = string(runes[:maxThreadNameLen])
	}
	thread, err := g.session.ThreadStart(channelID, name, discordgo.ChannelTypeGuildPublicThread, threadArchiveMinute, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err, "Channel not found")
	}
	return thread.ID, nil
}

func (g *Gateway) AddThreadMember(ctx context.Context, threadID, userID string) error {
	if err := g.session.ThreadMemberAdd(threadID, userID, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, "Thread not found")
	}
	return nil
}

func (g *Gateway) RemoveThreadMember(ctx context.Context, threadID, userID string) error {
	if err := g.session.ThreadMemberRemove(threadID, userID, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, "Thread not found")
	}
	return nil
}

func (g *Gateway) Send(ctx context.Context, channelID string, msg *entities.ChatMessage) (string, error) {
	data := &discordgo.MessageSend{
		Content:    msg.Content,
		Components: Components(msg),
		Embeds:     Embeds(msg),
	}

	files, closeFiles := g.openFiles(ctx, msg.Files)
	defer closeFiles()
	data.Files = files

	sent, err := g.session.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err, "Channel not found")
	}
	return sent.ID, nil
}

func (g *Gateway) ClearComponents(ctx context.Context, channelID, messageID string) error {
	empty := []discordgo.MessageComponent{}
	_, err := g.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Components: &empty,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return mapError(err, "Message not found")
	}
	return nil
}

// ReactToStarter looks the starter up in the parent channel first, where
// Discord keeps it for threads created from a message, then falls back to
// the oldest message inside the thread.
func (g *Gateway) ReactToStarter(ctx context.Context, threadID, emoji string) error {
	thread, err := g.session.Channel(threadID, discordgo.WithContext(ctx))
	if err != nil {
		return mapError(err, "Thread not found")
	}

	channelID, messageID := "", ""
	if thread.ParentID != "" {
		if starter, err := g.session.ChannelMessage(thread.ParentID, threadID, discordgo.WithContext(ctx)); err == nil && starter != nil {
			channelID, messageID = thread.ParentID, starter.ID
		}
	}
	if messageID == "" {
		msgs, err := g.session.ChannelMessages(threadID, 1, "", "0", "", discordgo.WithContext(ctx))
		if err != nil {
			return mapError(err, "Thread not found")
		}
		if len(msgs) == 0 {
			return domainerrors.NotFound("Starter message not found")
		}
		channelID, messageID = threadID, msgs[0].ID
	}

	if err := g.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, "Message not found")
	}
	return nil
}

func (g *Gateway) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := g.session.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, "Channel not found")
	}
	return nil
}

func (g *Gateway) VerifyThread(ctx context.Context, threadID string) error {
	ch, err := g.session.Channel(threadID, discordgo.WithContext(ctx))
	if err != nil {
		return mapError(err, "Thread not found")
	}
	if !ch.IsThread() {
		return domainerrors.BadRequest("Channel is not a thread")
	}
	return nil
}

// openFiles skips attachments that cannot be resolved so the text still goes out.
func (g *Gateway) openFiles(ctx context.Context, refs []string) ([]*discordgo.File, func()) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	if len(refs) == 0 || g.open == nil {
		return nil, closeAll
	}

	files := make([]*discordgo.File, 0, len(refs))
	for _, ref := range refs {
		name, body, err := g.open(ctx, ref)
		if err != nil {
			logger.Warn(ctx, "Attachment unavailable", zap.String("ref", ref), zap.Error(err))
			continue
		}
		closers = append(closers, body)
		files = append(files, &discordgo.File{Name: name, Reader: body})
	}
	return files, closeAll
}

func mapError(err error, notFoundMessage string) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return domainerrors.NotFound(notFoundMessage)
		case http.StatusForbidden:
			return domainerrors.NewAppError(http.StatusBadGateway, domainerrors.CodeBadRequest, "Discord rejected the request", domainerrors.ErrChatUnavailable)
		}
	}
	return domainerrors.NewAppError(http.StatusBadGateway, domainerrors.CodeInternalError, "Discord request failed", errors.Join(domainerrors.ErrChatUnavailable, err))
}
