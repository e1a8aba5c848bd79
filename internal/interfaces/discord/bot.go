package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"studio-ops.backend/pkg/logger"
)

const interactionTimeout = 30 * time.Second

// Bot connects the gateway session to the interaction router
type Bot struct {
	session *discordgo.Session
	router  *Router
	timeout time.Duration
}

func NewBot(session *discordgo.Session, router *Router) *Bot {
	return &Bot{session: session, router: router, timeout: interactionTimeout}
}

// Open registers the event handlers and connects to the gateway.
func (b *Bot) Open() error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info(context.Background(), "Discord bot ready", zap.String("user", r.User.Username))
	})
	b.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		b.Handle(s, ic.Interaction)
	})
	return b.session.Open()
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// Handle dispatches one interaction with a bounded context.
func (b *Bot) Handle(session InteractionSession, i *discordgo.Interaction) {
	in := FromDiscord(i)
	if in == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	// Dispatch logs failures itself.
	_ = b.router.Dispatch(ctx, in, NewResponder(session, i))
}
