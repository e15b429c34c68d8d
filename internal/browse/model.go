// Package browse is the interactive dispatch loop: it shows one page of
// tweets, reads a line-oriented command, and runs the matching action.
// Commands address tweets by their displayed 1-based ordinal.
package browse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/birdview/internal/render"
	"github.com/glabrego/birdview/internal/session"
	"github.com/glabrego/birdview/internal/twitter"
)

type State int

const (
	// StateAwaitingCommand shows the current page and reads the next line.
	StateAwaitingCommand State = iota
	// StateDetail shows a single tweet until the user backs out.
	StateDetail
	// StateExiting terminates the loop.
	StateExiting
)

type Params struct {
	Session  *session.Session // already begun
	Fetcher  session.Fetcher  // for nested thread sessions
	Detailer Detailer
	Store    Bookmarker
}

// Model runs the {AwaitingCommand, Detail, Exiting} machine. One fetch is
// in flight at most; input other than ctrl+c is ignored while loading, so
// processing stays strictly sequential.
type Model struct {
	fetcher  session.Fetcher
	detailer Detailer
	store    Bookmarker

	// Thread views nest: the active session is the top of the stack and
	// quitting a nested view pops back to its parent page.
	stack []*session.Session

	state   State
	detail  twitter.TweetRecord
	input   textinput.Model
	status  string
	warn    bool
	loading bool
	width   int
	height  int
	theme   render.Theme

	openURLFn func(string) error
	copyFn    func(string) error
	nowFn     func() time.Time
}

func NewModel(p Params) Model {
	theme := render.Default()

	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = theme.Prompt
	input.CharLimit = 16
	input.Focus()

	return Model{
		fetcher:   p.Fetcher,
		detailer:  p.Detailer,
		store:     p.Store,
		stack:     []*session.Session{p.Session},
		input:     input,
		width:     80,
		theme:     theme,
		openURLFn: OpenURLInBrowser,
		copyFn:    CopyToClipboard,
		nowFn:     time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) session() *session.Session {
	return m.stack[len(m.stack)-1]
}

// State exposes the machine state for tests.
func (m Model) State() State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.state = StateExiting
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		if m.state == StateDetail {
			switch msg.String() {
			case "esc", "enter", "backspace", "q":
				m.state = StateAwaitingCommand
				m.detail = twitter.TweetRecord{}
			}
			return m, nil
		}
		if msg.String() == "esc" && len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
			m.status = ""
			return m, nil
		}
		if msg.String() == "enter" {
			line := m.input.Value()
			m.input.SetValue("")
			return m.dispatch(line)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.status = ""
		return m, nil

	case threadLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.stack = append(m.stack, msg.sess)
		m.setInfo("Viewing thread. q returns to the previous page.")
		return m, nil

	case detailLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.detail = msg.tweet
		m.state = StateDetail
		m.status = ""
		return m, nil

	case bookmarkSavedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		if msg.added {
			m.setInfo(fmt.Sprintf("✓ Bookmarked @%s's tweet", msg.handle))
		} else {
			m.setInfo("Already bookmarked.")
		}
		return m, nil

	case linkCopiedMsg:
		m.loading = false
		if msg.err != nil {
			m.setWarn(fmt.Sprintf("Link: %s (clipboard not available, copy manually)", msg.url))
			return m, nil
		}
		m.setInfo("✓ Copied: " + msg.url)
		return m, nil

	case linkOpenedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.setInfo("Opening " + msg.url + "...")
		return m, nil
	}

	return m, nil
}

func (m Model) dispatch(line string) (tea.Model, tea.Cmd) {
	command, err := ParseCommand(line)
	if err != nil {
		m.setWarn(fmt.Sprintf("Unknown command %s. Try b2, c2, o2, t2, a number, n, p or q.", strings.TrimSpace(line)))
		return m, nil
	}

	switch command.Kind {
	case KindNone:
		return m, nil

	case KindQuit:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
			m.status = ""
			return m, nil
		}
		m.state = StateExiting
		return m, tea.Quit

	case KindNextPage:
		if !m.session().HasNext() {
			return m.withError(session.ErrNoMorePages), nil
		}
		m.loading = true
		return m, nextPageCmd(m.session())

	case KindPrevPage:
		if err := m.session().PreviousPage(); err != nil {
			return m.withError(err), nil
		}
		m.status = ""
		return m, nil

	case KindDetail:
		tweet, err := m.session().Tweet(command.Ordinal)
		if err != nil {
			return m.withError(err), nil
		}
		m.loading = true
		return m, loadDetailCmd(m.detailer, tweet)

	case KindBookmark:
		tweet, err := m.session().Tweet(command.Ordinal)
		if err != nil {
			return m.withError(err), nil
		}
		m.loading = true
		return m, saveBookmarkCmd(m.store, tweet)

	case KindCopyLink:
		tweet, err := m.session().Tweet(command.Ordinal)
		if err != nil {
			return m.withError(err), nil
		}
		m.loading = true
		return m, copyLinkCmd(m.copyFn, tweet.URL())

	case KindOpenBrowser:
		tweet, err := m.session().Tweet(command.Ordinal)
		if err != nil {
			return m.withError(err), nil
		}
		m.loading = true
		return m, openLinkCmd(m.openURLFn, tweet.URL())

	case KindThread:
		tweet, err := m.session().Tweet(command.Ordinal)
		if err != nil {
			return m.withError(err), nil
		}
		m.loading = true
		return m, loadThreadCmd(m.fetcher, tweet.ID)
	}

	return m, nil
}

func (m Model) View() string {
	if m.state == StateExiting {
		return ""
	}

	if m.state == StateDetail {
		var b strings.Builder
		b.WriteString(m.theme.Title.Render("Tweet"))
		b.WriteString("\n\n")
		b.WriteString(render.Detail(m.detail, m.width, m.nowFn(), m.theme))
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render("esc returns to the list"))
		b.WriteString("\n")
		return b.String()
	}

	sess := m.session()

	var b strings.Builder
	title := sess.Query().Title()
	if sess.PageNumber() > 1 || sess.HasNext() {
		title += fmt.Sprintf("  (page %d)", sess.PageNumber())
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(render.Page(sess.Tweets(), m.width, m.nowFn(), m.theme))

	switch {
	case m.loading:
		b.WriteString(m.theme.Meta.Render("Loading..."))
		b.WriteString("\n")
	case m.status != "" && m.warn:
		b.WriteString(m.theme.Warn.Render(m.status))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.theme.Info.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(render.HelpBar(m.theme))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) withError(err error) Model {
	switch {
	case errors.Is(err, session.ErrInvalidOrdinal),
		errors.Is(err, session.ErrNoMorePages),
		errors.Is(err, session.ErrNoPreviousPage):
		m.setWarn(upperFirst(err.Error()))
	default:
		m.setWarn("Error: " + err.Error())
	}
	return m
}

func (m *Model) setInfo(s string) {
	m.status = s
	m.warn = false
}

func (m *Model) setWarn(s string) {
	m.status = s
	m.warn = true
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
