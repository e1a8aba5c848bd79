package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"studio-ops.backend/internal/domain/entities"
	chat "studio-ops.backend/internal/infrastructure/discord"
)

// InteractionSession is the subset of *discordgo.Session used to answer interactions
type InteractionSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type sessionResponder struct {
	session     InteractionSession
	interaction *discordgo.Interaction
}

// NewResponder answers i through the session
func NewResponder(session InteractionSession, i *discordgo.Interaction) Responder {
	return &sessionResponder{session: session, interaction: i}
}

func (r *sessionResponder) respond(ctx context.Context, typ discordgo.InteractionResponseType, data *discordgo.InteractionResponseData) error {
	return r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{Type: typ, Data: data}, discordgo.WithContext(ctx))
}

func (r *sessionResponder) DeferReply(ctx context.Context) error {
	return r.respond(ctx, discordgo.InteractionResponseDeferredChannelMessageWithSource, nil)
}

func (r *sessionResponder) DeferUpdate(ctx context.Context) error {
	return r.respond(ctx, discordgo.InteractionResponseDeferredMessageUpdate, nil)
}

func (r *sessionResponder) Reply(ctx context.Context, msg *entities.ChatMessage) error {
	return r.respond(ctx, discordgo.InteractionResponseChannelMessageWithSource, responseData(msg))
}

func (r *sessionResponder) Update(ctx context.Context, msg *entities.ChatMessage) error {
	return r.respond(ctx, discordgo.InteractionResponseUpdateMessage, responseData(msg))
}

func (r *sessionResponder) EditReply(ctx context.Context, msg *entities.ChatMessage) error {
	content := msg.Content
	components := chat.Components(msg)
	embeds := chat.Embeds(msg)
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
		Embeds:     &embeds,
	}, discordgo.WithContext(ctx))
	return err
}

func (r *sessionResponder) FollowUp(ctx context.Context, msg *entities.ChatMessage) error {
	_, err := r.session.FollowupMessageCreate(r.interaction, false, &discordgo.WebhookParams{
		Content: msg.Content,
		Embeds:  chat.Embeds(msg),
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	return err
}

// responseData always sets Components so an update without components clears them.
func responseData(msg *entities.ChatMessage) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    msg.Content,
		Components: chat.Components(msg),
		Embeds:     chat.Embeds(msg),
	}
}

// FromDiscord converts a gateway event; unsupported interaction types return nil.
func FromDiscord(i *discordgo.Interaction) *Interaction {
	in := &Interaction{
		ID:        i.ID,
		ChannelID: i.ChannelID,
		Options:   map[string]string{},
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		in.UserID = i.Member.User.ID
	case i.User != nil:
		in.UserID = i.User.ID
	}
	if i.Message != nil {
		in.MessageID = i.Message.ID
		in.Embeds = chat.FromEmbeds(i.Message.Embeds)
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		in.Kind = KindCommand
		in.Name = data.Name
		for _, opt := range data.Options {
			in.Options[opt.Name] = optionString(opt)
		}
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		in.Name = data.CustomID
		in.Values = data.Values
		switch data.ComponentType {
		case discordgo.ButtonComponent:
			in.Kind = KindButton
		case discordgo.SelectMenuComponent:
			in.Kind = KindSelect
		default:
			return nil
		}
	default:
		return nil
	}
	return in
}

func optionString(opt *discordgo.ApplicationCommandInteractionDataOption) string {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionString:
		return opt.StringValue()
	case discordgo.ApplicationCommandOptionInteger:
		return strconv.FormatInt(opt.IntValue(), 10)
	case discordgo.ApplicationCommandOptionBoolean:
		return strconv.FormatBool(opt.BoolValue())
	}
	return fmt.Sprint(opt.Value)
}
