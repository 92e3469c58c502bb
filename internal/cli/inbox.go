package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type inboxKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Ack     key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k inboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Ack, k.Refresh, k.Quit}
}

func (k inboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var inboxKeys = inboxKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Ack:     key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "acknowledge")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type inboxLoadedMsg struct {
	views []contract.NotificationView
	err   error
}

type inboxAckedMsg struct {
	id  string
	err error
}

// inboxModel lists notifications in a table and acknowledges the selected row.
type inboxModel struct {
	ctx   context.Context
	svc   service.NotificationService
	actor domain.Actor
	limit int
	now   func() time.Time

	views  []contract.NotificationView
	table  table.Model
	help   help.Model
	status string
	err    error
}

func newInboxModel(ctx context.Context, svc service.NotificationService, actor domain.Actor, limit int, now func() time.Time) inboxModel {
	t := table.New(
		table.WithColumns(inboxColumns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(lipgloss.Color("#3c3836"))
	t.SetStyles(styles)

	return inboxModel{
		ctx:   ctx,
		svc:   svc,
		actor: actor,
		limit: limit,
		now:   now,
		table: t,
		help:  help.New(),
	}
}

func inboxColumns() []table.Column {
	return []table.Column{
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Deal", Width: 24},
		{Title: "Signal", Width: 48},
		{Title: "When", Width: 12},
	}
}

func (m inboxModel) Init() tea.Cmd {
	return m.load()
}

func (m inboxModel) load() tea.Cmd {
	return func() tea.Msg {
		views, err := m.svc.List(m.ctx, m.actor, m.limit)
		return inboxLoadedMsg{views: views, err: err}
	}
}

func (m inboxModel) ack(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.Acknowledge(m.ctx, m.actor, id)
		return inboxAckedMsg{id: id, err: err}
	}
}

func (m inboxModel) selected() (contract.NotificationView, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.views) {
		return contract.NotificationView{}, false
	}
	return m.views[i], true
}

func (m inboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inboxLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.views = msg.views
			m.table.SetRows(m.rows())
		}
		return m, nil

	case inboxAckedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = "Acknowledged " + formatter.TruncID(msg.id)
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, inboxKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, inboxKeys.Refresh):
			m.status = "Refreshing..."
			return m, m.load()
		case key.Matches(msg, inboxKeys.Ack):
			v, ok := m.selected()
			if !ok {
				return m, nil
			}
			if v.Status == string(domain.NotificationAcknowledged) {
				m.status = "Already acknowledged"
				return m, nil
			}
			return m, m.ack(v.ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m inboxModel) rows() []table.Row {
	now := m.now()
	rows := make([]table.Row, 0, len(m.views))
	for _, v := range m.views {
		deal := v.DealName
		if deal == "" {
			deal = "(no open deal)"
		}
		status := "new"
		if v.Status == string(domain.NotificationAcknowledged) {
			status = "ack"
		}
		rows = append(rows, table.Row{
			strings.ToUpper(v.Priority),
			status,
			deal,
			v.Summary,
			formatter.RelativeDateFrom(v.HappenedAt, now),
		})
	}
	return rows
}

func (m inboxModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Signal inbox"))
	b.WriteString("\n\n")

	if len(m.views) == 0 && m.err == nil {
		b.WriteString(formatter.Dim("No notifications yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if v, ok := m.selected(); ok {
		fmt.Fprintf(&b, "\n%s %s\n", formatter.Bold("Next:"), v.RecommendedAction)
	}
	if m.err != nil {
		fmt.Fprintf(&b, "\n%s\n", formatter.StyleRed.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		fmt.Fprintf(&b, "\n%s\n", formatter.Dim(m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(inboxKeys))
	return b.String()
}
