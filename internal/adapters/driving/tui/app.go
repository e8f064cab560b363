package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driving/tui/keymap"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driving/tui/messages"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driving/tui/styles"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// historyWindow is how many past messages are restored on startup.
const historyWindow = 50

// lineKind tags a transcript line with how it is rendered.
type lineKind int

const (
	lineUser lineKind = iota
	lineAssistant
	lineNotice
	lineError
)

// transcriptLine is one rendered unit of the conversation.
type transcriptLine struct {
	kind lineKind
	text string
}

// Chat is the conversational TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Chat struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// session scopes conversation history and selections.
	session string

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// input is the question input field.
	input textinput.Model

	// viewport scrolls the transcript.
	viewport viewport.Model

	// lines is the transcript in display order.
	lines []transcriptLine

	// status is the corpus statistics line, empty until loaded.
	status string

	// waiting is true while a question is in flight.
	waiting bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its dimensions.
	ready bool
}

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// NewChat creates the chat TUI for one conversation session.
func NewChat(ports *Ports, session string) (*Chat, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}
	if session == "" {
		session = "default"
	}

	ti := textinput.New()
	ti.Placeholder = "Ask your journal..."
	ti.CharLimit = 512
	ti.Focus()

	vp := viewport.New(80, 18)

	return &Chat{
		ports:    ports,
		ctx:      context.Background(),
		session:  session,
		styles:   styles.DefaultStyles(),
		keymap:   keymap.DefaultKeyMap(),
		input:    ti,
		viewport: vp,
		width:    80,
		height:   24,
	}, nil
}

// WithContext sets the context for the chat.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	c.ctx = ctx
	return c
}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("inkwell - journal chat"),
		c.loadHistory(),
		c.loadStatus(),
	)
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.setDimensions(msg.Width, msg.Height)
		c.ready = true
		return c, nil

	case tea.KeyMsg:
		return c.handleKeyMsg(msg)

	case messages.AnswerReceived:
		c.handleAnswer(msg)
		return c, nil

	case messages.HistoryLoaded:
		c.handleHistory(msg)
		return c, nil

	case messages.HistoryCleared:
		c.waiting = false
		if msg.Err != nil {
			c.err = msg.Err
			return c, nil
		}
		c.lines = nil
		c.refreshTranscript()
		return c, nil

	case messages.StatusLoaded:
		if msg.Err == nil && msg.Status != nil {
			c.status = fmt.Sprintf("%d entries · %d chunks · %d terms",
				msg.Status.Entries, msg.Status.Chunks, msg.Status.Terms)
		}
		return c, nil
	}

	return c, c.forward(msg)
}

// handleKeyMsg processes keyboard input.
func (c *Chat) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, c.keymap.Quit):
		return c, tea.Quit

	case keymap.Matches(keyStr, c.keymap.Clear):
		if c.waiting {
			return c, nil
		}
		c.waiting = true
		return c, c.clearHistory()

	case keymap.Matches(keyStr, c.keymap.Send):
		question := strings.TrimSpace(c.input.Value())
		if question == "" || c.waiting {
			return c, nil
		}
		c.input.SetValue("")
		c.err = nil
		c.waiting = true
		c.lines = append(c.lines, transcriptLine{kind: lineUser, text: question})
		c.refreshTranscript()
		return c, c.ask(question)
	}

	return c, c.forward(msg)
}

// forward passes a message to the input and viewport components.
func (c *Chat) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	var inputCmd tea.Cmd
	c.input, inputCmd = c.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var vpCmd tea.Cmd
	c.viewport, vpCmd = c.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return tea.Batch(cmds...)
}

// handleAnswer folds one completed ask round into the transcript.
func (c *Chat) handleAnswer(msg messages.AnswerReceived) {
	c.waiting = false

	if msg.Err != nil {
		c.err = msg.Err
		c.lines = append(c.lines, transcriptLine{kind: lineError, text: msg.Err.Error()})
		c.refreshTranscript()
		return
	}

	result := msg.Result
	c.lines = append(c.lines, transcriptLine{kind: lineAssistant, text: result.Reply.Answer})

	if result.Fallback {
		c.lines = append(c.lines, transcriptLine{
			kind: lineNotice,
			text: "generation fallback: " + result.FallbackReason,
		})
	}
	if result.Context.Degraded {
		c.lines = append(c.lines, transcriptLine{
			kind: lineNotice,
			text: "degraded context: " + result.Context.DegradedReason,
		})
	}

	c.refreshTranscript()
}

// handleHistory seeds the transcript with restored messages.
func (c *Chat) handleHistory(msg messages.HistoryLoaded) {
	if msg.Err != nil || len(msg.Messages) == 0 {
		return
	}

	restored := make([]transcriptLine, 0, len(msg.Messages))
	for i := range msg.Messages {
		kind := lineAssistant
		if msg.Messages[i].Role == domain.RoleUser {
			kind = lineUser
		}
		restored = append(restored, transcriptLine{kind: kind, text: msg.Messages[i].Content})
	}

	c.lines = append(restored, c.lines...)
	c.refreshTranscript()
}

// setDimensions resizes the components to the terminal.
func (c *Chat) setDimensions(width, height int) {
	c.width = width
	c.height = height

	c.input.Width = width - 8

	c.viewport.Width = width
	// Title, input box with border, and status bar take the rest.
	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	c.viewport.Height = vpHeight

	c.refreshTranscript()
}

// refreshTranscript re-renders the viewport content and pins the view
// to the latest turn.
func (c *Chat) refreshTranscript() {
	c.viewport.SetContent(c.renderTranscript())
	c.viewport.GotoBottom()
}

// renderTranscript renders the transcript lines for the viewport.
func (c *Chat) renderTranscript() string {
	wrap := c.viewport.Width - 2
	if wrap < 20 {
		wrap = 20
	}

	if len(c.lines) == 0 {
		return c.styles.Muted.Width(wrap).Render(
			"Ask anything about your journal. Answers are generated locally and stay on this machine.")
	}

	var b strings.Builder
	for i := range c.lines {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch c.lines[i].kind {
		case lineUser:
			b.WriteString(c.styles.UserLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(c.styles.Normal.Width(wrap).Render(c.lines[i].text))
		case lineAssistant:
			b.WriteString(c.styles.AssistantLabel.Render("Inkwell"))
			b.WriteString("\n")
			b.WriteString(c.styles.Normal.Width(wrap).Render(c.lines[i].text))
		case lineNotice:
			b.WriteString(c.styles.Warning.Width(wrap).Render(c.lines[i].text))
		case lineError:
			b.WriteString(c.styles.Error.Width(wrap).Render(c.lines[i].text))
		}
	}

	return b.String()
}

// View implements tea.Model.
func (c *Chat) View() string {
	if !c.ready {
		return "Starting inkwell..."
	}

	title := c.styles.Title.Render("Inkwell") +
		c.styles.Muted.Render("  ·  session "+c.session)

	inputWidth := c.width - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	inputBox := c.styles.InputField.Width(inputWidth).Render(c.input.View())

	return title + "\n" +
		c.viewport.View() + "\n" +
		inputBox + "\n" +
		c.statusLine()
}

// statusLine renders the bottom status bar.
func (c *Chat) statusLine() string {
	if c.waiting {
		return c.styles.StatusBar.Render("thinking...")
	}
	if c.err != nil {
		return c.styles.Error.Render(c.err.Error())
	}

	hints := make([]string, 0, 3)
	for _, b := range c.keymap.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	help := strings.Join(hints, "  ·  ")

	if c.status != "" {
		return c.styles.StatusBar.Render(c.status + "  ·  " + help)
	}
	return c.styles.StatusBar.Render(help)
}

// ask asks the assistant and reports the outcome as a message.
func (c *Chat) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := c.ports.Assistant.Ask(c.ctx, c.session, question)
		return messages.AnswerReceived{Result: result, Err: err}
	}
}

// loadHistory restores the session's recent conversation turns.
func (c *Chat) loadHistory() tea.Cmd {
	return func() tea.Msg {
		msgs, err := c.ports.Assistant.History(c.ctx, c.session, historyWindow)
		return messages.HistoryLoaded{Messages: msgs, Err: err}
	}
}

// clearHistory clears the session's conversation turns.
func (c *Chat) clearHistory() tea.Cmd {
	return func() tea.Msg {
		err := c.ports.Assistant.ClearHistory(c.ctx, c.session)
		return messages.HistoryCleared{Err: err}
	}
}

// loadStatus fetches corpus statistics for the status line.
func (c *Chat) loadStatus() tea.Cmd {
	return func() tea.Msg {
		if c.ports.Indexer == nil {
			return messages.StatusLoaded{}
		}
		status, err := c.ports.Indexer.Status(c.ctx)
		return messages.StatusLoaded{Status: status, Err: err}
	}
}
