// Package tui provides the Bubble Tea screens of the battle: the manual
// battle board, the stored runs scoreboard and the SSH server that serves
// them.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-battle/internal/autoplay"
	"github.com/vovakirdan/tile-battle/internal/battle"
	"github.com/vovakirdan/tile-battle/internal/config"
	"github.com/vovakirdan/tile-battle/internal/core"
	"github.com/vovakirdan/tile-battle/internal/match3"
	"github.com/vovakirdan/tile-battle/internal/puzzles"
	"github.com/vovakirdan/tile-battle/internal/storage"
)

// Options configures a manual battle.
type Options struct {
	Config     config.EngineConfig
	Enemy      string // empty uses the configured enemy
	Seed       int64
	Difficulty string // label stored with the run
	Puzzle     *puzzles.Puzzle
	Store      *storage.Store // nil disables saving
	Logger     *log.Logger
	Renderer   *lipgloss.Renderer
}

// Model is the Bubble Tea model for a manual battle: the player moves a
// cursor, picks a tile and swaps it with a neighbour.
type Model struct {
	opts   Options
	seed   int64
	battle *battle.Battle
	logger *log.Logger
	theme  Theme
	keys   KeyMap
	help   help.Model

	turn     int
	cursor   match3.Pos
	picked   *match3.Pos
	hint     *match3.Move
	last     *battle.TurnReport
	status   string
	over     bool
	saved    bool
	quitting bool
}

// NewModel creates a model with a fresh battle.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := Model{
		opts:   opts,
		logger: opts.Logger,
		theme:  NewTheme(opts.Renderer, opts.Config.RosterKinds()),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if err := m.reset(opts.Seed); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reset starts a new battle from seed.
func (m *Model) reset(seed int64) error {
	bcfg, err := battle.ConfigFrom(m.opts.Config, m.opts.Enemy)
	if err != nil {
		return err
	}
	engine := match3.NewSeeded(m.opts.Config.EngineParams(), seed)
	b := battle.New(engine, bcfg, nil, m.logger)
	if m.opts.Puzzle != nil {
		if err := b.SetBoard(m.opts.Puzzle.Board(engine.IDs(), bcfg.Roster)); err != nil {
			return err
		}
	}

	m.seed = seed
	m.battle = b
	m.turn = 1
	m.cursor = match3.P(0, 0)
	m.picked, m.hint, m.last = nil, nil, nil
	m.status = ""
	m.over, m.saved = false, false

	m.prepare()
	return nil
}

// prepare readies the board for the current turn and ends the battle when
// no move is left.
func (m *Model) prepare() {
	reshuffled, err := m.battle.Prepare(m.turn)
	switch {
	case errors.Is(err, battle.ErrNoMoves):
		m.finish("no legal move left")
	case err != nil:
		m.status = err.Error()
		m.over = true
	case reshuffled:
		m.status = "board reshuffled: no legal move was left"
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if !m.over && m.turn > 1 {
			m.save()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if err := m.reset(m.seed + 1); err != nil {
			m.status = err.Error()
		}
		return m, nil
	}

	if m.over {
		return m, nil
	}

	if dx, dy, ok := m.keys.direction(msg); ok {
		b := m.battle.Board()
		m.cursor = match3.P(core.Clamp(m.cursor.X+dx, 0, b.W-1), core.Clamp(m.cursor.Y+dy, 0, b.H-1))
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.picked = nil

	case key.Matches(msg, m.keys.Hint):
		moves := match3.PossibleMoves(m.battle.Board())
		if len(moves) > 0 {
			hint := autoplay.Greedy{}.Choose(m.battle.Board(), moves)
			m.hint = &hint
			m.status = fmt.Sprintf("try %v with %v", hint.A, hint.B)
		}

	case key.Matches(msg, m.keys.Select):
		m.selectCell()
	}
	return m, nil
}

// selectCell picks the cursor cell, or swaps it with the picked one when
// they are neighbours.
func (m *Model) selectCell() {
	switch {
	case m.picked == nil:
		p := m.cursor
		m.picked = &p
		m.status = ""
	case *m.picked == m.cursor:
		m.picked = nil
	case m.picked.Adjacent(m.cursor):
		m.play(match3.Move{A: *m.picked, B: m.cursor})
	default:
		p := m.cursor
		m.picked = &p
	}
}

// play feeds a move to the battle and advances the turn when it was legal.
func (m *Model) play(mv match3.Move) {
	m.picked = nil
	r, err := m.battle.Play(m.turn, mv)
	if err != nil {
		m.status = m.theme.Bad.Render(moveError(err))
		return
	}

	m.hint = nil
	m.last = &r
	m.status = ""
	m.turn++
	if m.turn > m.battle.Config().Turns {
		m.finish("all turns played")
		return
	}
	m.prepare()
}

// moveError explains why a swap was rejected.
func moveError(err error) string {
	switch {
	case errors.Is(err, match3.ErrNoMatch):
		return "that swap makes no match"
	case errors.Is(err, match3.ErrImmovable):
		return "rock and steel cannot be swapped"
	case errors.Is(err, match3.ErrEmptyCell):
		return "that cell is empty"
	case errors.Is(err, match3.ErrNotAdjacent):
		return "tiles must be neighbours"
	}
	return err.Error()
}

// finish ends the battle and stores the run.
func (m *Model) finish(reason string) {
	m.over = true
	m.status = reason
	m.picked, m.hint = nil, nil
	m.save()
}

// save stores the run once. Errors are reported in the status line.
func (m *Model) save() {
	if m.saved || m.opts.Store == nil {
		return
	}
	s := m.battle.Summary()
	if s.Turns == 0 {
		return
	}
	difficulty := m.opts.Difficulty
	if difficulty == "" {
		difficulty = "config"
	}
	id, err := m.opts.Store.SaveRun(storage.Run{
		Seed:           m.seed,
		Policy:         s.Policy,
		Enemy:          s.Enemy,
		Difficulty:     difficulty,
		Turns:          s.Turns,
		Score:          s.Score,
		Cleared:        s.Cleared,
		MaxCascade:     s.MaxCascade,
		Reshuffles:     s.Reshuffles,
		SteelDestroyed: s.SteelDestroyed,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		m.status += " (run not saved)"
		return
	}
	m.saved = true
	m.logger.Info("run saved", "id", id, "score", s.Score)
}

// View renders the battle screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.battle.Summary()
	cfg := m.battle.Config()
	var sb strings.Builder

	turn := min(m.turn, cfg.Turns)
	sb.WriteString(m.theme.Title.Render(fmt.Sprintf("Tile Battle vs %s", cfg.Enemy.ID)))
	sb.WriteString(m.theme.Dim.Render(fmt.Sprintf("  turn %d/%d  seed %d", turn, cfg.Turns, m.seed)))
	sb.WriteString("\n")

	sb.WriteString(m.theme.RenderBoard(m.battle.Board(), boardView{
		cursor: m.cursor,
		picked: m.picked,
		hint:   m.hint,
	}))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d\n",
		m.theme.Label.Render("Score"), s.Score,
		m.theme.Label.Render("Cleared"), s.Cleared,
		m.theme.Label.Render("Best cascade"), s.MaxCascade,
	))
	if m.last != nil {
		line := fmt.Sprintf("last turn: +%d, %d cleared, cascade %d", m.last.Score, m.last.Cleared, m.last.Cascade)
		if m.last.SteelDestroyed > 0 {
			line += fmt.Sprintf(", %d steel broken", m.last.SteelDestroyed)
		}
		if m.last.Interference {
			line += fmt.Sprintf(", %s interfered", cfg.Enemy.ID)
		}
		sb.WriteString(m.theme.Dim.Render(line))
		sb.WriteString("\n")
	}

	if m.over {
		sb.WriteString(m.theme.Good.Render(fmt.Sprintf("Battle over: %s. Final score %d.", m.status, s.Score)))
		sb.WriteString("\n")
	} else if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.Dim.Render(m.help.View(m.keys)))
	return sb.String()
}

// Summary returns the battle totals so far.
func (m Model) Summary() battle.Summary {
	return m.battle.Summary()
}

// Over reports whether the battle has ended.
func (m Model) Over() bool {
	return m.over
}

// Run starts the Bubble Tea program for a manual battle and returns the
// final summary.
func Run(opts Options) (battle.Summary, error) {
	model, err := NewModel(opts)
	if err != nil {
		return battle.Summary{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return battle.Summary{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Summary(), nil
	}
	return model.Summary(), nil
}
