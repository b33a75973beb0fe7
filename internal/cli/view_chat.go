package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	kashiapp "github.com/alexanderramin/kashimitra/internal/app"
	"github.com/alexanderramin/kashimitra/internal/cli/formatter"
	"github.com/alexanderramin/kashimitra/internal/domain"
	"github.com/alexanderramin/kashimitra/internal/logging"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	noticePending = "Still waiting for the last answer..."
	noticePlan    = "Build an itinerary with: kashimitra plan --days 3 --budget 5000 --interests temples"
	chatHint      = "enter send · /reset clear · ctrl+t hide · pgup/pgdn scroll · esc quit"
	chatHidden    = "Conversation hidden. Press ctrl+t to show it, or type to ask."
)

// chatResponseMsg carries a resolved answer back to the view. ID ties it to
// the Begin that started it so stale answers can be dropped.
type chatResponseMsg struct {
	id   uint64
	text string
	err  error
}

// chatView is the interactive conversation surface.
type chatView struct {
	app      *App
	conv     *kashiapp.Conversation
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
	ready  bool
	notice string
}

func newChatView(ctx context.Context, app *App) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask about ghats, food, temples..."
	ti.CharLimit = 1000

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StylePurple

	ctx, cancel := context.WithCancel(ctx)
	app.Conversation.Open()

	return &chatView{
		app:     app,
		conv:    app.Conversation,
		input:   ti,
		spinner: s,
		ctx:     ctx,
		cancel:  cancel,
		width:   formatter.DefaultWidth,
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return v, v.quit()
		case tea.KeyEnter:
			return v, v.submit()
		case tea.KeyCtrlT:
			return v, v.toggle()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case chatResponseMsg:
		if msg.err != nil {
			v.conv.Fail(msg.id, msg.err)
		} else {
			v.conv.Complete(msg.id, msg.text)
		}
		v.notice = ""
		v.refresh()
		return v, nil

	case spinner.TickMsg:
		if v.conv.State() != kashiapp.StateAwaitingResponse {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) submit() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	switch text {
	case "":
		return nil
	case "/quit", "/exit":
		return v.quit()
	case "/reset":
		v.input.Reset()
		v.conv.Reset()
		v.notice = ""
		v.refresh()
		return nil
	case "/plan":
		v.input.Reset()
		v.notice = noticePlan
		return nil
	}

	p, err := v.conv.Begin(text)
	if errors.Is(err, kashiapp.ErrRequestPending) {
		v.notice = noticePending
		return nil
	}
	if err != nil {
		v.notice = err.Error()
		return nil
	}

	v.input.Reset()
	v.notice = ""
	v.refresh()
	return tea.Batch(v.resolve(p), v.spinner.Tick)
}

// toggle hides or shows the transcript. A pending answer keeps resolving
// while hidden; the spinner restarts when it is shown again.
func (v *chatView) toggle() tea.Cmd {
	open := v.conv.Toggle()
	v.notice = ""
	v.refresh()
	if open && v.conv.State() == kashiapp.StateAwaitingResponse {
		return v.spinner.Tick
	}
	return nil
}

// resolve runs the generator off the UI goroutine.
func (v *chatView) resolve(p kashiapp.Pending) tea.Cmd {
	gen := v.app.Generator
	ctx := v.ctx
	return func() (msg tea.Msg) {
		defer logging.LogPanic("chat-resolve", func(r any) {
			msg = chatResponseMsg{id: p.ID, err: fmt.Errorf("internal error: %v", r)}
		})
		text, err := gen.Generate(ctx, p.Prompt, domain.ModeChat)
		return chatResponseMsg{id: p.ID, text: text, err: err}
	}
}

func (v *chatView) quit() tea.Cmd {
	v.cancel()
	v.conv.Close()
	return tea.Quit
}

func (v *chatView) resize(w, h int) {
	v.width = w
	v.height = h
	vpHeight := h - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !v.ready {
		v.viewport = viewport.New(w, vpHeight)
		v.ready = true
	} else {
		v.viewport.Width = w
		v.viewport.Height = vpHeight
	}
	v.input.Width = w - 4
	v.refresh()
}

func (v *chatView) refresh() {
	if !v.ready {
		return
	}
	v.viewport.SetContent(v.transcript())
	v.viewport.GotoBottom()
}

func (v *chatView) transcript() string {
	return formatter.FormatTranscript(v.conv.Transcript(), formatter.ClampWidth(v.width-2))
}

func (v *chatView) View() string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("KASHI MITRA"))
	b.WriteString(formatter.Dim("  ·  Varanasi guide"))
	b.WriteString("\n")

	switch {
	case v.conv.State() == kashiapp.StateClosed:
		b.WriteString(formatter.Dim(chatHidden))
	case v.ready:
		b.WriteString(v.viewport.View())
	default:
		b.WriteString(v.transcript())
	}
	b.WriteString("\n")

	switch {
	case v.notice != "":
		b.WriteString(formatter.Notice(v.notice))
	case v.conv.State() == kashiapp.StateAwaitingResponse:
		b.WriteString(v.spinner.View() + " " + formatter.Dim(kashiapp.PendingPlaceholder))
	default:
		b.WriteString(formatter.Dim(chatHint))
	}
	b.WriteString("\n")

	b.WriteString(formatter.StyleGuideLabel.Render("›") + " ")
	b.WriteString(v.input.View())
	return b.String()
}
