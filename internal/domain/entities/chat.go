package entities

// ButtonStyle mirrors the chat platform's button colours
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// Embed colours used by bot replies
const (
	ColorInfo    = 0x0099ff
	ColorSuccess = 0x00ff00
	ColorFailure = 0xff0000
	ColorMuted   = 0x888888
)

// SelectOption is one entry of a select menu
type SelectOption struct {
	Label string
	Value string
}

// SelectMenu is a single-choice dropdown attached to a message
type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []SelectOption
}

// Button is a clickable component attached to a message
type Button struct {
	CustomID string
	Label    string
	Style    ButtonStyle
}

// EmbedField is one name/value row inside an embed
type EmbedField struct {
	Name  string
	Value string
}

// Embed is a rich card
type Embed struct {
	Title       string
	Description string
	Color       int
	Footer      string
	Fields      []EmbedField
}

// ChatMessage is a platform-neutral outgoing message.
// Files are URLs or local upload paths; the gateway resolves them.
type ChatMessage struct {
	Content string
	Files   []string
	Select  *SelectMenu
	Buttons []Button
	Embeds  []Embed
}

// HasComponents reports whether the message carries interactive parts.
func (m *ChatMessage) HasComponents() bool {
	return m.Select != nil || len(m.Buttons) > 0
}
