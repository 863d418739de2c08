// Package tui implements the interactive review flow for pending
// transactions.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F4B942")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F4B942"))

	incomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	expenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type pendingLoadedMsg struct {
	transactions []model.WalletTransaction
	walletNames  map[int64]string
	categories   map[int64]string
	err          error
}

type actionDoneMsg struct {
	err error
}

// Model is the bubbletea model for the review flow.
type Model struct {
	wallets     *ledger.WalletService
	categories  *ledger.CategoryService
	ctx         context.Context
	lastError   error
	walletNames map[int64]string
	catNames    map[int64]string
	pending     []model.WalletTransaction
	keymap      KeyMap
	help        help.Model
	cursor      int
	confirmed   int
	deleted     int
	width       int
	quitting    bool
	ready       bool
}

// NewModel creates the review model.
func NewModel(ctx context.Context, wallets *ledger.WalletService, categories *ledger.CategoryService) Model {
	return Model{
		ctx:        ctx,
		wallets:    wallets,
		categories: categories,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
	}
}

// Init loads the pending transactions.
func (m Model) Init() tea.Cmd {
	return m.loadPending
}

func (m Model) loadPending() tea.Msg {
	pending, err := m.wallets.ListPendingTransactions(m.ctx)
	if err != nil {
		return pendingLoadedMsg{err: err}
	}

	walletNames := make(map[int64]string)
	wallets, err := m.wallets.ListWallets(m.ctx, true)
	if err != nil {
		return pendingLoadedMsg{err: err}
	}
	for _, w := range wallets {
		walletNames[w.ID] = w.Name
	}

	catNames := make(map[int64]string)
	cats, err := m.categories.ListCategories(m.ctx, true)
	if err != nil {
		return pendingLoadedMsg{err: err}
	}
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}

	return pendingLoadedMsg{
		transactions: pending,
		walletNames:  walletNames,
		categories:   catNames,
	}
}

func (m Model) confirmCurrent() tea.Cmd {
	id := m.pending[m.cursor].ID
	return func() tea.Msg {
		return actionDoneMsg{err: m.wallets.ConfirmTransaction(m.ctx, id)}
	}
}

func (m Model) deleteCurrent() tea.Cmd {
	id := m.pending[m.cursor].ID
	return func() tea.Msg {
		return actionDoneMsg{err: m.wallets.DeleteTransaction(m.ctx, id)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case pendingLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.pending = msg.transactions
		m.walletNames = msg.walletNames
		m.catNames = msg.categories
		m.ready = true
		if len(m.pending) == 0 {
			m.quitting = true
			return m, tea.Quit
		}

	case actionDoneMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.pending = append(m.pending[:m.cursor], m.pending[m.cursor+1:]...)
		if m.cursor >= len(m.pending) && m.cursor > 0 {
			m.cursor--
		}
		if len(m.pending) == 0 {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.pending)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Skip):
		if m.cursor < len(m.pending)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Confirm):
		if len(m.pending) > 0 {
			m.confirmed++
			return m, m.confirmCurrent()
		}

	case key.Matches(msg, m.keymap.Delete):
		if len(m.pending) > 0 {
			m.deleted++
			return m, m.deleteCurrent()
		}
	}
	return m, nil
}

// View renders the pending transaction list.
func (m Model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Pending transactions (%d)", len(m.pending))))
	b.WriteString("\n")

	for i, txn := range m.pending {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		amount := incomeStyle.Render("+" + txn.Amount.String())
		if txn.Type == model.TypeExpense {
			amount = expenseStyle.Render("-" + txn.Amount.String())
		}

		line := fmt.Sprintf("%s%s  %-10s %s  %s %s",
			cursor,
			txn.Date.Format("2006-01-02"),
			amount,
			m.walletNames[txn.WalletID],
			subtleStyle.Render(m.catNames[txn.CategoryID]),
			txn.Description,
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.lastError != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.lastError.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

// Confirmed returns how many transactions were confirmed this session.
func (m Model) Confirmed() int { return m.confirmed }

// Deleted returns how many transactions were deleted this session.
func (m Model) Deleted() int { return m.deleted }

// Run starts the review flow and blocks until the user quits or every
// pending transaction has been handled. It returns how many transactions
// were confirmed and deleted.
func Run(ctx context.Context, wallets *ledger.WalletService, categories *ledger.CategoryService) (confirmed, deleted int, err error) {
	program := tea.NewProgram(NewModel(ctx, wallets, categories))
	final, err := program.Run()
	if err != nil {
		return 0, 0, fmt.Errorf("review flow failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected model type %T", final)
	}
	if m.lastError != nil {
		return m.confirmed, m.deleted, m.lastError
	}
	return m.confirmed, m.deleted, nil
}
