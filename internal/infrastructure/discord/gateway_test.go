package discord

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

type fakeSession struct {
	channels  map[string]*discordgo.Channel
	starters  map[string]*discordgo.Message
	history   map[string][]*discordgo.Message
	sent      map[string][]*discordgo.MessageSend
	edits     []*discordgo.MessageEdit
	reactions []string
	members   map[string][]string
	deleted   []string
	threadErr error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		channels: map[string]*discordgo.Channel{},
		starters: map[string]*discordgo.Message{},
		history:  map[string][]*discordgo.Message{},
		sent:     map[string][]*discordgo.MessageSend{},
		members:  map[string][]string{},
	}
}

func notFound() error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}}
}

func (f *fakeSession) Channel(id string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, notFound()
	}
	return ch, nil
}

func (f *fakeSession) ChannelDelete(id string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, notFound()
	}
	delete(f.channels, id)
	f.deleted = append(f.deleted, id)
	return ch, nil
}

func (f *fakeSession) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m, ok := f.starters[channelID+"/"+messageID]
	if !ok {
		return nil, notFound()
	}
	return m, nil
}

func (f *fakeSession) ChannelMessages(channelID string, limit int, _, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	msgs := f.history[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if _, ok := f.channels[channelID]; !ok {
		return nil, notFound()
	}
	for _, file := range data.Files {
		b, _ := io.ReadAll(file.Reader)
		file.Reader = strings.NewReader(string(b))
	}
	f.sent[channelID] = append(f.sent[channelID], data)
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, m)
	return &discordgo.Message{ID: m.ID}, nil
}

func (f *fakeSession) MessageReactionAdd(channelID, messageID, emoji string, _ ...discordgo.RequestOption) error {
	f.reactions = append(f.reactions, channelID+"/"+messageID+"/"+emoji)
	return nil
}

func (f *fakeSession) ThreadStart(channelID, name string, _ discordgo.ChannelType, _ int, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.threadErr != nil {
		return nil, f.threadErr
	}
	if _, ok := f.channels[channelID]; !ok {
		return nil, notFound()
	}
	th := &discordgo.Channel{ID: "thread-" + channelID, Name: name, ParentID: channelID, Type: discordgo.ChannelTypeGuildPublicThread}
	f.channels[th.ID] = th
	return th, nil
}

func (f *fakeSession) ThreadMemberAdd(threadID, memberID string, _ ...discordgo.RequestOption) error {
	if _, ok := f.channels[threadID]; !ok {
		return notFound()
	}
	f.members[threadID] = append(f.members[threadID], memberID)
	return nil
}

func (f *fakeSession) ThreadMemberRemove(threadID, memberID string, _ ...discordgo.RequestOption) error {
	if _, ok := f.channels[threadID]; !ok {
		return notFound()
	}
	kept := f.members[threadID][:0]
	for _, m := range f.members[threadID] {
		if m != memberID {
			kept = append(kept, m)
		}
	}
	f.members[threadID] = kept
	return nil
}

func TestGateway_CreateThreadAndMembers(t *testing.T) {
	s := newFakeSession()
	s.channels["chan"] = &discordgo.Channel{ID: "chan", Type: discordgo.ChannelTypeGuildText}
	g := NewGateway(s, nil)
	ctx := context.Background()

	id, err := g.CreateThread(ctx, "chan", strings.Repeat("x", 150))
	require.NoError(t, err)
	assert.Equal(t, "thread-chan", id)
	assert.Len(t, []rune(s.channels[id].Name), maxThreadNameLen)

	require.NoError(t, g.AddThreadMember(ctx, id, "u1"))
	require.NoError(t, g.AddThreadMember(ctx, id, "admin"))
	require.NoError(t, g.RemoveThreadMember(ctx, id, "u1"))
	assert.Equal(t, []string{"admin"}, s.members[id])

	require.NoError(t, g.VerifyThread(ctx, id))
	err = g.VerifyThread(ctx, "chan")
	appErr, ok := domainerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestGateway_MissingChannelMapsToNotFound(t *testing.T) {
	g := NewGateway(newFakeSession(), nil)
	ctx := context.Background()

	_, err := g.CreateThread(ctx, "missing", "Project")
	appErr, ok := domainerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Channel not found", appErr.Message)

	err = g.AddThreadMember(ctx, "missing", "u")
	appErr, _ = domainerrors.As(err)
	assert.Equal(t, "Thread not found", appErr.Message)

	err = g.DeleteChannel(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGateway_OtherErrorsAreChatUnavailable(t *testing.T) {
	s := newFakeSession()
	s.channels["chan"] = &discordgo.Channel{ID: "chan"}
	s.threadErr = io.ErrUnexpectedEOF
	g := NewGateway(s, nil)

	_, err := g.CreateThread(context.Background(), "chan", "P")
	assert.ErrorIs(t, err, domainerrors.ErrChatUnavailable)
	appErr, ok := domainerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestGateway_SendWithComponentsAndFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brief.png"), []byte("png"), 0o600))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	s := newFakeSession()
	s.channels["th"] = &discordgo.Channel{ID: "th"}
	g := NewGateway(s, NewFileOpener(srv.Client(), dir))

	id, err := g.Send(context.Background(), "th", &entities.ChatMessage{
		Content: "hello",
		Files:   []string{"/uploads/brief.png", srv.URL + "/a/ref.jpg", srv.URL + "/missing.png"},
		Select: &entities.SelectMenu{
			CustomID:    "offering/1",
			Placeholder: "Select an option",
			Options:     []entities.SelectOption{{Label: "Yes", Value: "yes"}},
		},
		Buttons: []entities.Button{{CustomID: "execute_query", Label: "Run", Style: entities.ButtonSuccess}},
		Embeds:  []entities.Embed{{Title: "T", Footer: "f", Fields: []entities.EmbedField{{Name: "n", Value: "v"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	sent := s.sent["th"][0]
	assert.Equal(t, "hello", sent.Content)
	require.Len(t, sent.Files, 2)
	assert.Equal(t, "brief.png", sent.Files[0].Name)
	assert.Equal(t, "ref.jpg", sent.Files[1].Name)

	require.Len(t, sent.Components, 2)
	menu := sent.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, "offering/1", menu.CustomID)
	button := sent.Components[1].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, discordgo.SuccessButton, button.Style)

	require.Len(t, sent.Embeds, 1)
	assert.Equal(t, "f", sent.Embeds[0].Footer.Text)
	assert.Equal(t, "v", sent.Embeds[0].Fields[0].Value)
}

func TestGateway_ClearComponents(t *testing.T) {
	s := newFakeSession()
	g := NewGateway(s, nil)

	require.NoError(t, g.ClearComponents(context.Background(), "th", "m1"))
	require.Len(t, s.edits, 1)
	assert.Equal(t, "m1", s.edits[0].ID)
	require.NotNil(t, s.edits[0].Components)
	assert.Empty(t, *s.edits[0].Components)
}

func TestGateway_ReactToStarter(t *testing.T) {
	t.Run("starter in parent channel", func(t *testing.T) {
		s := newFakeSession()
		s.channels["th"] = &discordgo.Channel{ID: "th", ParentID: "chan", Type: discordgo.ChannelTypeGuildPublicThread}
		s.starters["chan/th"] = &discordgo.Message{ID: "th"}
		g := NewGateway(s, nil)

		require.NoError(t, g.ReactToStarter(context.Background(), "th", "💰"))
		assert.Equal(t, []string{"chan/th/💰"}, s.reactions)
	})

	t.Run("falls back to first thread message", func(t *testing.T) {
		s := newFakeSession()
		s.channels["th"] = &discordgo.Channel{ID: "th", ParentID: "chan", Type: discordgo.ChannelTypeGuildPublicThread}
		s.history["th"] = []*discordgo.Message{{ID: "first"}}
		g := NewGateway(s, nil)

		require.NoError(t, g.ReactToStarter(context.Background(), "th", "✅"))
		assert.Equal(t, []string{"th/first/✅"}, s.reactions)
	})

	t.Run("empty thread", func(t *testing.T) {
		s := newFakeSession()
		s.channels["th"] = &discordgo.Channel{ID: "th"}
		g := NewGateway(s, nil)

		err := g.ReactToStarter(context.Background(), "th", "✅")
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

func TestNewSession_AddsBotPrefix(t *testing.T) {
	s, err := NewSession("abc")
	require.NoError(t, err)
	assert.Equal(t, "Bot abc", s.Token)

	s, err = NewSession("Bot xyz")
	require.NoError(t, err)
	assert.Equal(t, "Bot xyz", s.Token)
}

func TestEmbedsRoundTrip(t *testing.T) {
	msg := &entities.ChatMessage{Embeds: []entities.Embed{{
		Title:  "Review Generated SQL Query",
		Color:  entities.ColorInfo,
		Footer: "Review the query before execution",
		Fields: []entities.EmbedField{{Name: "Question", Value: "berapa project?"}},
	}}}

	back := FromEmbeds(append(Embeds(msg), nil))
	require.Len(t, back, 1)
	assert.Equal(t, msg.Embeds[0], back[0])
}
