package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/usecases"
	"studio-ops.backend/pkg/logger"
)

const (
	CommandDone            = "done"
	CommandProjects        = "projects"
	CommandImageProduction = "image-production-per-week"
	CommandAskAI           = "ask-ai"

	offeringAccept = "yes"
	offeringReject = "no"

	msgGenericFailure   = "Terjadi kesalahan, coba lagi nanti 🙏"
	msgAskFailure       = "Sorry, I encountered an error"
	msgOfferingClosed   = "Offering ini sudah tidak bisa dikonfirmasi."
	msgUnknownSelection = "Pilihan tidak dikenal."
)

type botService interface {
	Done(ctx context.Context, chatUserID, threadID string) (string, error)
	Projects(ctx context.Context, chatUserID, statusOpt, teamOpt string) string
	ImageProduction(ctx context.Context, month, year *int) string
}

type offeringService interface {
	Accept(ctx context.Context, offeringID uuid.UUID) (*entities.Offering, error)
	Reject(ctx context.Context, offeringID uuid.UUID) (*entities.Offering, error)
	ChooseTeam(ctx context.Context, projectID, teamID uuid.UUID, staleChannelID string) (*entities.Offering, error)
}

type queryService interface {
	Ask(ctx context.Context, question string) (*entities.ChatMessage, error)
	Execute(ctx context.Context, review *entities.Embed) *entities.ChatMessage
	Cancel(review *entities.Embed) *entities.ChatMessage
}

type componentClearer interface {
	ClearComponents(ctx context.Context, channelID, messageID string) error
}

// Handlers answers the bot's slash commands and message components
type Handlers struct {
	bot       botService
	offerings offeringService
	queries   queryService
	chat      componentClearer
}

func NewHandlers(bot botService, offerings offeringService, queries queryService, chat componentClearer) *Handlers {
	return &Handlers{bot: bot, offerings: offerings, queries: queries, chat: chat}
}

// Register binds every command and component to the router.
func (h *Handlers) Register(r *Router) {
	r.Command(CommandDone, h.Done)
	r.Command(CommandProjects, h.Projects)
	r.Command(CommandImageProduction, h.ImageProduction)
	r.Command(CommandAskAI, h.AskAI)

	r.ComponentPrefix(KindSelect, usecases.OfferingComponentPrefix, h.OfferingSelected)
	r.ComponentPrefix(KindSelect, usecases.ChooseTeamComponentPrefix, h.TeamChosen)
	r.Component(KindButton, usecases.ExecuteQueryComponentID, h.ExecuteQuery)
	r.Component(KindButton, usecases.CancelQueryComponentID, h.CancelQuery)
}

func text(content string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: content}
}

// Done marks the thread's project finished.
func (h *Handlers) Done(ctx context.Context, in *Interaction, r Responder) error {
	reply, err := h.bot.Done(ctx, in.UserID, in.ChannelID)
	if err != nil {
		_ = r.Reply(ctx, text(msgGenericFailure))
		return err
	}
	return r.Reply(ctx, text(reply))
}

func (h *Handlers) Projects(ctx context.Context, in *Interaction, r Responder) error {
	if err := r.DeferReply(ctx); err != nil {
		return err
	}
	reply := h.bot.Projects(ctx, in.UserID, in.Option("status"), in.Option("team"))
	return r.EditReply(ctx, text(reply))
}

func (h *Handlers) ImageProduction(ctx context.Context, in *Interaction, r Responder) error {
	if err := r.DeferReply(ctx); err != nil {
		return err
	}
	month, err := in.IntOption("bulan")
	if err != nil {
		return r.EditReply(ctx, text("Bulan harus berupa angka 1-12."))
	}
	year, err := in.IntOption("tahun")
	if err != nil {
		return r.EditReply(ctx, text("Tahun harus berupa angka."))
	}
	if month != nil && (*month < 1 || *month > 12) {
		return r.EditReply(ctx, text("Bulan harus berupa angka 1-12."))
	}
	return r.EditReply(ctx, text(h.bot.ImageProduction(ctx, month, year)))
}

// AskAI turns the question into a reviewable query card.
func (h *Handlers) AskAI(ctx context.Context, in *Interaction, r Responder) error {
	if err := r.DeferReply(ctx); err != nil {
		return err
	}
	msg, err := h.queries.Ask(ctx, in.Option("question"))
	if err != nil {
		_ = r.EditReply(ctx, text(msgAskFailure))
		return err
	}
	return r.EditReply(ctx, msg)
}

// OfferingSelected handles the yes/no confirmation of "offering/{offeringId}".
func (h *Handlers) OfferingSelected(ctx context.Context, in *Interaction, r Responder) error {
	offeringID, err := uuid.Parse(strings.TrimPrefix(in.Name, usecases.OfferingComponentPrefix))
	if err != nil {
		return domainerrors.BadRequest("Invalid offering component")
	}
	if err := r.DeferUpdate(ctx); err != nil {
		return err
	}

	choice := in.Value()
	if choice != offeringAccept && choice != offeringReject {
		return r.FollowUp(ctx, text(msgUnknownSelection))
	}
	h.clearComponents(ctx, in)

	if choice == offeringAccept {
		_, err = h.offerings.Accept(ctx, offeringID)
	} else {
		_, err = h.offerings.Reject(ctx, offeringID)
	}
	if err != nil {
		return h.componentFailure(ctx, r, err)
	}
	return nil
}

// TeamChosen re-offers the project of "choose-team/{projectId}" to the selected team.
// The thread the menu lives in is deleted once the new offering exists.
func (h *Handlers) TeamChosen(ctx context.Context, in *Interaction, r Responder) error {
	projectID, err := uuid.Parse(strings.TrimPrefix(in.Name, usecases.ChooseTeamComponentPrefix))
	if err != nil {
		return domainerrors.BadRequest("Invalid team selection component")
	}
	if err := r.DeferUpdate(ctx); err != nil {
		return err
	}
	teamID, err := uuid.Parse(in.Value())
	if err != nil {
		return r.FollowUp(ctx, text(msgUnknownSelection))
	}
	h.clearComponents(ctx, in)

	if _, err := h.offerings.ChooseTeam(ctx, projectID, teamID, in.ChannelID); err != nil {
		return h.componentFailure(ctx, r, err)
	}
	return nil
}

func (h *Handlers) ExecuteQuery(ctx context.Context, in *Interaction, r Responder) error {
	if err := r.DeferUpdate(ctx); err != nil {
		return err
	}
	return r.EditReply(ctx, h.queries.Execute(ctx, in.FirstEmbed()))
}

func (h *Handlers) CancelQuery(ctx context.Context, in *Interaction, r Responder) error {
	return r.Update(ctx, h.queries.Cancel(in.FirstEmbed()))
}

func (h *Handlers) clearComponents(ctx context.Context, in *Interaction) {
	if in.MessageID == "" {
		return
	}
	if err := h.chat.ClearComponents(ctx, in.ChannelID, in.MessageID); err != nil {
		logger.Warn(ctx, "Failed to clear components", zap.String("message", in.MessageID), zap.Error(err))
	}
}

// componentFailure tells the clicker what went wrong; conflicts are expected and not returned.
func (h *Handlers) componentFailure(ctx context.Context, r Responder, err error) error {
	if errors.Is(err, domainerrors.ErrConflict) || errors.Is(err, domainerrors.ErrInvalidTransition) {
		return r.FollowUp(ctx, text(msgOfferingClosed))
	}
	if appErr, ok := domainerrors.As(err); ok && appErr.Status < 500 {
		_ = r.FollowUp(ctx, text(appErr.Message))
		return err
	}
	_ = r.FollowUp(ctx, text(msgGenericFailure))
	return err
}
