package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reportview/internal/config"
	"reportview/internal/engine"
)

func initialModel(ctx context.Context, cfg *config.Config, v *engine.View) *Model {
	m := &Model{
		ctx:    ctx,
		cfg:    cfg,
		view:   v,
		styles: NewStyles(cfg.Theme == config.ThemeDark),
		keymap: DefaultKeyMap(),
		input:  textinput.New(),
		spin:   spinner.New(),
	}
	m.spin.Spinner = spinner.Dot
	m.input.CharLimit = 256
	m.input.SetSuggestions(v.Table.Tokens())

	m.tbl = table.New(table.WithFocused(true), table.WithHeight(20))
	// Remove default padding to make width math exact
	ts := table.DefaultStyles()
	ts.Header = m.styles.TableStyles.Header.PaddingRight(1)
	ts.Cell = m.styles.TableStyles.Cell.PaddingRight(1)
	ts.Selected = m.styles.TableStyles.Selected
	m.tbl.SetStyles(ts)
	m.maxCols = 6
	m.selColIdx = 0
	// Populate columns and the first page before the first WindowSizeMsg
	m.refreshTable()
	return m
}

// Run drives the interactive viewer until quit or context cancellation.
func Run(ctx context.Context, cfg *config.Config, v *engine.View) error {
	m := initialModel(ctx, cfg, v)
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UseStdin {
		// The document came over stdin; take key input from the terminal
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return nil }
