package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vtree/internal/config"
	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))
)

type keyMap struct {
	Quit key.Binding
	Up   key.Binding
	Down key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
}

// commitMsg carries a rendered commit into the program.
type commitMsg struct {
	commit  engine.Commit
	commits int // commits observed so far, including this one
	tree    string
}

// commitFeed hands commits from the engine to the program without blocking
// the cycle. Only the newest commit is kept: the view shows the latest tree.
type commitFeed struct {
	mu      sync.Mutex
	latest  commitMsg
	pending bool
	ready   chan struct{}
}

func newCommitFeed() *commitFeed {
	return &commitFeed{ready: make(chan struct{}, 1)}
}

// push replaces the pending commit and never blocks.
func (f *commitFeed) push(msg commitMsg) {
	f.mu.Lock()
	f.latest = msg
	f.pending = true
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// take returns the pending commit, if any.
func (f *commitFeed) take() (commitMsg, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.pending {
		return commitMsg{}, false
	}
	f.pending = false
	return f.latest, true
}

// forward sends pending commits to send until ctx is done.
func (f *commitFeed) forward(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.ready:
			if msg, ok := f.take(); ok {
				send(msg)
			}
		}
	}
}

// doneMsg reports that the demo stopped ticking.
type doneMsg struct {
	err error
}

type tuiModel struct {
	viewport viewport.Model
	help     help.Model
	ready    bool

	last    engine.Commit
	commits int
	tree    string
	done    bool
	err     error
	cancel  context.CancelFunc
}

func newTUIModel(cancel context.CancelFunc) *tuiModel {
	return &tuiModel{help: help.New(), cancel: cancel}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := msg.Height - 4
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.help.Width = msg.Width
		m.viewport.SetContent(m.tree)

	case commitMsg:
		m.commits = msg.commits
		m.last = msg.commit
		if msg.commit.Err == nil {
			m.tree = msg.tree
		}
		if m.ready {
			m.viewport.SetContent(m.tree)
		}

	case doneMsg:
		m.done = true
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *tuiModel) View() string {
	if !m.ready {
		return "\n  Starting..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("vtree"))
	b.WriteString(" ")
	b.WriteString(m.status())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m *tuiModel) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(m.err.Error())
	case m.last.Err != nil:
		return errorStyle.Render(fmt.Sprintf("#%d %s failed: %s", m.last.Seq, m.last.Kind, vterrors.Compact(m.last.Err)))
	case m.done:
		return doneStyle.Render(fmt.Sprintf("finished after %d commits", m.commits))
	case m.commits == 0:
		return statusStyle.Render("mounting")
	default:
		return statusStyle.Render(fmt.Sprintf("#%d %s %s", m.last.Seq, m.last.Kind, m.last.Duration.Round(time.Microsecond)))
	}
}

// runTUI drives the demo inside a bubbletea program. Engine logs are
// discarded so they do not tear the alternate screen.
func runTUI(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(cfg, io.Discard)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopRecorder, err := a.startRecorder(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newTUIModel(cancel), tea.WithAltScreen(), tea.WithContext(ctx))

	feed := newCommitFeed()
	go feed.forward(ctx, p.Send)

	term := render.NewTerminal(render.TerminalConfig{})
	commits := 0
	detach := a.engine.Observe(func(c engine.Commit) {
		commits++
		msg := commitMsg{commit: c, commits: commits}
		if c.Err == nil {
			msg.tree = term.Render(a.mem.Root())
		}
		feed.push(msg)
	})

	go func() {
		p.Send(doneMsg{err: a.demo.Run(ctx, a.root)})
	}()

	final, runErr := p.Run()
	cancel()
	a.engine.View(detach)

	if err := stopRecorder(); err != nil && runErr == nil {
		runErr = err
	}
	if errors.Is(runErr, tea.ErrProgramKilled) || errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if m, ok := final.(*tuiModel); ok && m.err != nil && runErr == nil {
		runErr = m.err
	}
	return runErr
}
