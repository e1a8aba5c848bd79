package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"studio-ops.backend/internal/domain/entities"
)

var buttonStyles = map[entities.ButtonStyle]discordgo.ButtonStyle{
	entities.ButtonPrimary:   discordgo.PrimaryButton,
	entities.ButtonSecondary: discordgo.SecondaryButton,
	entities.ButtonSuccess:   discordgo.SuccessButton,
	entities.ButtonDanger:    discordgo.DangerButton,
}

// Components renders the select menu and buttons as action rows.
func Components(msg *entities.ChatMessage) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, 2)
	if msg.Select != nil {
		options := make([]discordgo.SelectMenuOption, 0, len(msg.Select.Options))
		for _, o := range msg.Select.Options {
			options = append(options, discordgo.SelectMenuOption{Label: o.Label, Value: o.Value})
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    msg.Select.CustomID,
				Placeholder: msg.Select.Placeholder,
				Options:     options,
			},
		}})
	}
	if len(msg.Buttons) > 0 {
		buttons := make([]discordgo.MessageComponent, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			style, ok := buttonStyles[b.Style]
			if !ok {
				style = discordgo.SecondaryButton
			}
			buttons = append(buttons, discordgo.Button{Label: b.Label, Style: style, CustomID: b.CustomID})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}

// Embeds renders rich cards, stamped with the current time.
func Embeds(msg *entities.ChatMessage) []*discordgo.MessageEmbed {
	if len(msg.Embeds) == 0 {
		return nil
	}
	out := make([]*discordgo.MessageEmbed, 0, len(msg.Embeds))
	for _, e := range msg.Embeds {
		embed := &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			Color:       e.Color,
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		for _, f := range e.Fields {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value})
		}
		if e.Footer != "" {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
		}
		out = append(out, embed)
	}
	return out
}

// FromEmbeds reads rich cards back from a received message.
func FromEmbeds(embeds []*discordgo.MessageEmbed) []entities.Embed {
	out := make([]entities.Embed, 0, len(embeds))
	for _, e := range embeds {
		if e == nil {
			continue
		}
		embed := entities.Embed{Title: e.Title, Description: e.Description, Color: e.Color}
		for _, f := range e.Fields {
			if f != nil {
				embed.Fields = append(embed.Fields, entities.EmbedField{Name: f.Name, Value: f.Value})
			}
		}
		if e.Footer != nil {
			embed.Footer = e.Footer.Text
		}
		out = append(out, embed)
	}
	return out
}
