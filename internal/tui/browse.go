// Package tui is the interactive browser over the task file.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todotxt/internal/model"
	"github.com/Makepad-fr/todotxt/internal/ui"
)

// Store is what the browser needs from the record store.
type Store interface {
	Records() ([]model.Record, error)
	Add(text string) (model.Record, error)
	Remove(index uint64) error
	SetDone(index uint64, done bool) error
}

// listItem adapts a Record to bubbles/list.Item
type listItem struct {
	rec model.Record
}

func (i listItem) Title() string       { return i.rec.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.rec.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	box := ui.MutedStyle.Render(ui.BoxUnchecked)
	text := it.rec.Text
	if it.rec.Done {
		box = ui.SuccessStyle.Render(ui.BoxChecked)
		text = ui.DoneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", ui.MutedStyle.Render(fmt.Sprintf("%2d.", it.rec.Index)), box, text)
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type browser struct {
	store Store
	list  list.Model

	adding bool
	ti     textinput.Model
	status string // last error, shown under the list

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/undone"))
	removeBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
)

func newBrowser(s Store) (browser, error) {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{toggleBind, addBind, removeBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{toggleBind, addBind, removeBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item..."
	ti.CharLimit = 200

	b := browser{store: s, list: l, ti: ti, width: 80, height: 24}
	if err := b.reload(); err != nil {
		return browser{}, err
	}
	return b, nil
}

// reload re-reads the store and keeps the cursor in range.
func (b *browser) reload() error {
	recs, err := b.store.Records()
	if err != nil {
		return err
	}
	items := make([]list.Item, 0, len(recs))
	done := 0
	for _, r := range recs {
		items = append(items, listItem{rec: r})
		if r.Done {
			done++
		}
	}
	cursor := b.list.Index()
	b.list.SetItems(items)
	if cursor >= len(items) && len(items) > 0 {
		b.list.Select(len(items) - 1)
	}
	b.list.Title = fmt.Sprintf("Todos   %s %d  %s %d  %s %d",
		ui.SuccessStyle.Render("✔"), done,
		ui.PendingStyle.Render("•"), len(recs)-done,
		ui.AccentStyle.Render("Total"), len(recs),
	)
	return nil
}

func (b *browser) selected() (model.Record, bool) {
	it, ok := b.list.SelectedItem().(listItem)
	if !ok {
		return model.Record{}, false
	}
	return it.rec, true
}

// apply runs one store operation and refreshes the list from disk.
func (b *browser) apply(op func() error) {
	b.status = ""
	if err := op(); err != nil {
		b.status = err.Error()
	}
	if err := b.reload(); err != nil {
		b.status = err.Error()
	}
}

// Run starts the browser and blocks until the user quits.
func Run(s Store) error {
	b, err := newBrowser(s)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}

func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		b.width, b.height = ws.Width, ws.Height
		return b, nil
	}

	// add mode
	if b.adding {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter":
				text := strings.TrimSpace(b.ti.Value())
				if text == "" {
					b.status = "Item cannot be empty"
					return b, nil
				}
				b.apply(func() error {
					_, err := b.store.Add(text)
					return err
				})
				if n := len(b.list.Items()); n > 0 {
					b.list.Select(n - 1)
				}
				b.stopAdding()
				return b, nil
			case "esc":
				b.stopAdding()
				return b, nil
			case "ctrl+c":
				return b, tea.Quit
			}
		}
		var cmd tea.Cmd
		b.ti, cmd = b.ti.Update(msg)
		return b, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "esc", "ctrl+c":
			return b, tea.Quit
		case " ":
			if rec, ok := b.selected(); ok {
				b.apply(func() error { return b.store.SetDone(rec.Index, !rec.Done) })
			}
			return b, nil
		case "d":
			if rec, ok := b.selected(); ok {
				b.apply(func() error { return b.store.Remove(rec.Index) })
			}
			return b, nil
		case "a":
			b.adding = true
			b.status = ""
			b.ti.SetValue("")
			b.ti.Focus()
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b *browser) stopAdding() {
	b.adding = false
	b.ti.SetValue("")
	b.ti.Blur()
}

func (b browser) View() string {
	listHeight := b.height - 4
	if b.adding {
		listHeight = b.height - 8
	}
	if b.status != "" {
		listHeight--
	}
	b.list.SetSize(b.width-4, listHeight)

	content := b.list.View()
	if b.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render("Add new item\n"+b.ti.View())
	}
	if b.status != "" {
		content += "\n" + ui.ErrorStyle.Render(b.status)
	}
	return ui.PanelString([]string{content})
}
