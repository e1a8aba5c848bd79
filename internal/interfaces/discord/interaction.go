package discord

import (
	"context"
	"strconv"
	"strings"

	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

// Kind discriminates incoming interactions
type Kind int

const (
	KindCommand Kind = iota + 1
	KindSelect
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindSelect:
		return "select"
	case KindButton:
		return "button"
	}
	return "unknown"
}

// Interaction is a platform-neutral view of a slash command or component click.
// Name is the command name for commands and the custom id for components.
type Interaction struct {
	ID        string
	Kind      Kind
	Name      string
	UserID    string
	ChannelID string
	MessageID string
	Options   map[string]string
	Values    []string
	// Embeds are the cards of the message the component is attached to.
	Embeds []entities.Embed
}

// Option returns a command option or "" when absent.
func (in *Interaction) Option(name string) string {
	return strings.TrimSpace(in.Options[name])
}

// IntOption parses an optional integer option.
func (in *Interaction) IntOption(name string) (*int, error) {
	raw := in.Option(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid option " + name)
	}
	return &v, nil
}

// Value is the first selected option of a select menu.
func (in *Interaction) Value() string {
	if len(in.Values) == 0 {
		return ""
	}
	return in.Values[0]
}

// FirstEmbed returns the source message's first card, if any.
func (in *Interaction) FirstEmbed() *entities.Embed {
	if len(in.Embeds) == 0 {
		return nil
	}
	return &in.Embeds[0]
}

// Responder answers one interaction. Defer calls must come first and at most once.
type Responder interface {
	// DeferReply acknowledges a command; the answer follows with EditReply.
	DeferReply(ctx context.Context) error
	// DeferUpdate acknowledges a component click without changing its message.
	DeferUpdate(ctx context.Context) error
	Reply(ctx context.Context, msg *entities.ChatMessage) error
	// EditReply replaces the deferred answer, or the component message after DeferUpdate.
	EditReply(ctx context.Context, msg *entities.ChatMessage) error
	// Update replaces the component message in place of an acknowledgement.
	Update(ctx context.Context, msg *entities.ChatMessage) error
	// FollowUp sends an ephemeral note after the interaction was acknowledged.
	FollowUp(ctx context.Context, msg *entities.ChatMessage) error
}
