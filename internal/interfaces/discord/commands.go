package discord

import (
	"context"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

func floatPtr(v float64) *float64 { return &v }

// Commands are the slash commands the bot exposes
func Commands() []*discordgo.ApplicationCommand {
	statusChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.AllProjectStatuses))
	for _, s := range entities.AllProjectStatuses {
		statusChoices = append(statusChoices, &discordgo.ApplicationCommandOptionChoice{Name: string(s), Value: string(s)})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandDone,
			Description: "Mengupdate status project menjadi done",
		},
		{
			Name:        CommandProjects,
			Description: "Melihat daftar project tim (max 10)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "status",
					Description: "Filter project berdasarkan status",
					Choices:     statusChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "team",
					Description: "Discord User ID (Admin only)",
				},
			},
		},
		{
			Name:        CommandImageProduction,
			Description: "Melihat statistik produksi gambar per minggu",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bulan",
					Description: "Bulan (1-12)",
					MinValue:    floatPtr(1),
					MaxValue:    12,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "tahun",
					Description: "Tahun",
					MinValue:    floatPtr(2020),
					MaxValue:    2030,
				},
			},
		},
		{
			Name:        CommandAskAI,
			Description: "Tanyakan pertanyaan ke AI assistant",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "question",
					Description: "Pertanyaan yang ingin kamu tanyakan",
					Required:    true,
				},
			},
		},
	}
}

// CommandSession is the subset of *discordgo.Session used to publish commands
type CommandSession interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Registrar overwrites the application's commands; an empty guild id publishes globally.
type Registrar struct {
	session CommandSession
	appID   string
	guildID string
}

func NewRegistrar(session CommandSession, appID, guildID string) *Registrar {
	return &Registrar{session: session, appID: appID, guildID: guildID}
}

func (r *Registrar) RegisterCommands(ctx context.Context) (int, error) {
	if r.appID == "" {
		return 0, domainerrors.NewAppError(http.StatusServiceUnavailable, domainerrors.CodeInternalError, "Discord application id is not configured", domainerrors.ErrNotConfigured)
	}
	created, err := r.session.ApplicationCommandBulkOverwrite(r.appID, r.guildID, Commands(), discordgo.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return len(created), nil
}
