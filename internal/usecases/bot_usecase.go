package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/utils"
)

const maxBotProjects = 10

// BotUsecase answers the chat slash commands
type BotUsecase struct {
	offeringRepo repositories.OfferingRepository
	teamRepo     repositories.TeamRepository
	projects     *ProjectUsecase
	statistics   *StatisticUsecase
	admin        AdminPolicy
	guildID      string
	now          func() time.Time
}

func NewBotUsecase(
	offeringRepo repositories.OfferingRepository,
	teamRepo repositories.TeamRepository,
	projects *ProjectUsecase,
	statistics *StatisticUsecase,
	admin AdminPolicy,
	guildID string,
) *BotUsecase {
	return &BotUsecase{
		offeringRepo: offeringRepo,
		teamRepo:     teamRepo,
		projects:     projects,
		statistics:   statistics,
		admin:        admin,
		guildID:      guildID,
		now:          time.Now,
	}
}

// SetClock overrides the time source.
func (u *BotUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Done finishes the project of the thread the command was typed in.
func (u *BotUsecase) Done(ctx context.Context, chatUserID, threadID string) (string, error) {
	if !u.admin.IsAdmin(chatUserID) {
		return "Hanya admin yang diperbolehkan", nil
	}

	offering, err := u.offeringRepo.GetByThreadID(ctx, threadID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "Offering tidak ditemukan", nil
		}
		return "", err
	}
	if offering.Status != entities.OfferingStatusAccepted {
		return "Konfirmasi dahulu offering nya 🙏", nil
	}

	done := entities.ProjectStatusDone
	if _, err := u.projects.Update(ctx, offering.ProjectID, &entities.UpdateProjectInput{Status: &done}); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "Project tidak ditemukan", nil
		}
		return "", err
	}
	return "Acc ✅", nil
}

// Projects lists the newest projects of the caller's team, or of any team for the admin.
func (u *BotUsecase) Projects(ctx context.Context, chatUserID, statusOpt, teamOpt string) string {
	isAdmin := u.admin.IsAdmin(chatUserID)
	if teamOpt != "" && !isAdmin {
		return "Hanya admin yang dapat melihat project tim lain."
	}

	filter := entities.ProjectFilter{
		WithTeam:     true,
		WithOffering: true,
		Page:         utils.ListParams{Limit: maxBotProjects, SortDesc: true},
	}
	if statusOpt != "" {
		status := entities.ProjectStatus(statusOpt)
		if !status.Valid() {
			return fmt.Sprintf("Status %q tidak dikenal.", statusOpt)
		}
		filter.Status = &status
	}

	teamName := ""
	if !isAdmin || teamOpt != "" {
		lookup := chatUserID
		if teamOpt != "" {
			lookup = teamOpt
		}
		team, err := u.teamRepo.GetByDiscordUserID(ctx, lookup)
		if err != nil {
			if !errors.Is(err, domainerrors.ErrNotFound) {
				logger.Error(ctx, "Failed to load team", zap.Error(err))
				return "Terjadi kesalahan saat mengambil data project."
			}
			if teamOpt != "" {
				return fmt.Sprintf("Tim dengan discord user id \"%s\" tidak ditemukan.", teamOpt)
			}
			return "Discord user Anda tidak terdaftar dalam sistem."
		}
		filter.TeamID = &team.ID
		teamName = team.Name
	}

	projects, _, err := u.projects.List(ctx, filter)
	if err != nil {
		logger.Error(ctx, "Failed to list projects", zap.Error(err))
		return "Terjadi kesalahan saat mengambil data project."
	}
	if len(projects) == 0 {
		return "Tidak ada project yang ditemukan."
	}

	var title string
	switch {
	case isAdmin && teamOpt == "" && statusOpt != "":
		title = fmt.Sprintf("Projects - All Teams (Status: %s)", statusOpt)
	case isAdmin && teamOpt == "":
		title = "Projects - All Teams (Terbaru)"
	case statusOpt != "":
		title = fmt.Sprintf("Projects %s (Status: %s)", teamName, statusOpt)
	default:
		title = fmt.Sprintf("Projects %s (Terbaru)", teamName)
	}

	return fmt.Sprintf("# %s\n\n%s\n\n*Menampilkan %d dari maksimal %d project*",
		title, u.formatProjects(projects), len(projects), maxBotProjects)
}

// ImageProduction renders the weekly production report; nil month or year means current.
func (u *BotUsecase) ImageProduction(ctx context.Context, month, year *int) string {
	now := u.now().In(u.statistics.Location())
	monthIndex := int(now.Month()) - 1
	if month != nil {
		monthIndex = *month - 1
	}
	y := now.Year()
	if year != nil {
		y = *year
	}

	weeks, err := u.statistics.ImageProductionPerWeek(ctx, monthIndex, y)
	if err != nil {
		logger.Error(ctx, "Failed to load image production", zap.Error(err))
		return "Terjadi kesalahan saat mengambil data produksi."
	}
	if len(weeks) == 0 {
		return "Tidak ada data produksi untuk periode tersebut."
	}

	monthName := fmt.Sprintf("%s %d", utils.IndonesianMonth(time.Month(monthIndex+1)), y)
	var b strings.Builder
	fmt.Fprintf(&b, "# Statistik Produksi Bulan %s\n\n", monthName)

	total := 0
	for i, week := range weeks {
		fmt.Fprintf(&b, "## Minggu %d (%s)\n", i+1, utils.FormatDayRangeID(week.Start, week.End))

		teams := append([]entities.TeamProduction(nil), week.Teams...)
		sort.SliceStable(teams, func(a, c int) bool { return teams[a].Count > teams[c].Count })
		for _, t := range teams {
			if t.Count > 0 {
				fmt.Fprintf(&b, "%s: **%d** gambar\n", t.Name, t.Count)
			}
		}

		weekTotal := week.Total()
		total += weekTotal
		fmt.Fprintf(&b, "\nTotal minggu: **%d** gambar\n\n", weekTotal)
	}
	fmt.Fprintf(&b, "# Total Bulan %s: **%d** gambar", monthName, total)
	return b.String()
}

func (u *BotUsecase) formatProjects(projects []*entities.Project) string {
	items := make([]string, 0, len(projects))
	for i, p := range projects {
		var b strings.Builder
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, p.Name)
		fmt.Fprintf(&b, "Status: %s\n", p.Status)
		if p.Team != nil {
			fmt.Fprintf(&b, "Team: %s\n", p.Team.Name)
		}
		client := p.ClientName.String
		if client == "" {
			client = "-"
		}
		fmt.Fprintf(&b, "Client: %s\n", client)
		fmt.Fprintf(&b, "Deadline: %s\n", utils.FormatShortDateID(p.Deadline.In(u.statistics.Location())))
		fmt.Fprintf(&b, "Fee: %s", utils.FormatRupiah(p.Fee))
		if thread := acceptedThread(p); thread != "" {
			fmt.Fprintf(&b, "\n[🔗 Open Thread](https://discord.com/channels/%s/%s)", u.guildID, thread)
		}
		items = append(items, b.String())
	}
	return strings.Join(items, "\n\n")
}

func acceptedThread(p *entities.Project) string {
	for _, o := range p.Offerings {
		if o.Status == entities.OfferingStatusAccepted && o.DiscordThreadID.Valid {
			return o.DiscordThreadID.String
		}
	}
	return ""
}
