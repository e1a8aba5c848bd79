package discord

import (
	"context"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
)

type recordingResponder struct {
	deferredReply  bool
	deferredUpdate bool
	replies        []*entities.ChatMessage
	edits          []*entities.ChatMessage
	updates        []*entities.ChatMessage
	followUps      []*entities.ChatMessage
}

func (r *recordingResponder) DeferReply(context.Context) error {
	r.deferredReply = true
	return nil
}

func (r *recordingResponder) DeferUpdate(context.Context) error {
	r.deferredUpdate = true
	return nil
}

func (r *recordingResponder) Reply(_ context.Context, msg *entities.ChatMessage) error {
	r.replies = append(r.replies, msg)
	return nil
}

func (r *recordingResponder) EditReply(_ context.Context, msg *entities.ChatMessage) error {
	r.edits = append(r.edits, msg)
	return nil
}

func (r *recordingResponder) Update(_ context.Context, msg *entities.ChatMessage) error {
	r.updates = append(r.updates, msg)
	return nil
}

func (r *recordingResponder) FollowUp(_ context.Context, msg *entities.ChatMessage) error {
	r.followUps = append(r.followUps, msg)
	return nil
}

type botStub struct {
	doneReply   string
	doneErr     error
	doneThread  string
	status      string
	team        string
	month, year *int
}

func (s *botStub) Done(_ context.Context, _, threadID string) (string, error) {
	s.doneThread = threadID
	return s.doneReply, s.doneErr
}

func (s *botStub) Projects(_ context.Context, _, statusOpt, teamOpt string) string {
	s.status, s.team = statusOpt, teamOpt
	return "# Projects"
}

func (s *botStub) ImageProduction(_ context.Context, month, year *int) string {
	s.month, s.year = month, year
	return "# Statistik"
}

type offeringStub struct {
	accepted   []uuid.UUID
	rejected   []uuid.UUID
	chosenTeam uuid.UUID
	stale      string
	err        error
}

func (s *offeringStub) Accept(_ context.Context, id uuid.UUID) (*entities.Offering, error) {
	s.accepted = append(s.accepted, id)
	return &entities.Offering{ID: id}, s.err
}

func (s *offeringStub) Reject(_ context.Context, id uuid.UUID) (*entities.Offering, error) {
	s.rejected = append(s.rejected, id)
	return &entities.Offering{ID: id}, s.err
}

func (s *offeringStub) ChooseTeam(_ context.Context, _, teamID uuid.UUID, stale string) (*entities.Offering, error) {
	s.chosenTeam, s.stale = teamID, stale
	return &entities.Offering{TeamID: teamID}, s.err
}

type queryStub struct {
	question string
	askErr   error
	executed *entities.Embed
}

func (s *queryStub) Ask(_ context.Context, question string) (*entities.ChatMessage, error) {
	s.question = question
	if s.askErr != nil {
		return nil, s.askErr
	}
	return &entities.ChatMessage{Embeds: []entities.Embed{{Title: "Review Generated SQL Query"}}}, nil
}

func (s *queryStub) Execute(_ context.Context, review *entities.Embed) *entities.ChatMessage {
	s.executed = review
	return &entities.ChatMessage{Embeds: []entities.Embed{{Title: "Result"}}}
}

func (s *queryStub) Cancel(review *entities.Embed) *entities.ChatMessage {
	return &entities.ChatMessage{Embeds: []entities.Embed{{Title: "Query Cancelled", Color: entities.ColorMuted}}}
}

type clearerStub struct {
	cleared []string
}

func (s *clearerStub) ClearComponents(_ context.Context, channelID, messageID string) error {
	s.cleared = append(s.cleared, channelID+"/"+messageID)
	return nil
}

type handlerFixture struct {
	bot       *botStub
	offerings *offeringStub
	queries   *queryStub
	chat      *clearerStub
	router    *Router
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		bot:       &botStub{doneReply: "Acc ✅"},
		offerings: &offeringStub{},
		queries:   &queryStub{},
		chat:      &clearerStub{},
		router:    NewRouter(),
	}
	NewHandlers(f.bot, f.offerings, f.queries, f.chat).Register(f.router)
	return f
}
