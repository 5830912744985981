package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/atomicstack/snek-console/internal/backend"
	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/state"
	"github.com/atomicstack/snek-console/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Config describes user-provided application options.
type Config struct {
	URL          string
	Session      string
	HistoryDB    string
	HistoryLimit int
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	endpoint, err := Endpoint(cfg.URL, cfg.Session, uuid.NewString())
	if err != nil {
		return err
	}

	history, db, err := openHistory(cfg.HistoryDB, cfg.HistoryLimit)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cfg.HistoryLimit > 0 {
				if err := db.Trim(cfg.HistoryLimit); err != nil {
					logging.Error(err)
				}
			}
			db.Close()
		}()
	}

	session, err := backend.Dial(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("connect to host: %w", err)
	}
	defer session.Close()

	opts := ui.Options{
		Session:    session,
		History:    history,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Context:    ctx,
	}
	if db != nil {
		opts.HistoryDB = db
	}
	model := ui.NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Endpoint adds the session name and a per-process client id to the host
// URL, keeping any query parameters already present.
func Endpoint(raw, session, client string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse host url: %w", err)
	}
	q := u.Query()
	q.Set("session", session)
	if client != "" {
		q.Set("client", client)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// openHistory loads the persisted history when path is set. The returned
// store is always usable; the database is nil when persistence is off.
func openHistory(path string, limit int) (state.HistoryStore, *state.HistoryDB, error) {
	if path == "" {
		return state.NewHistoryStore(), nil, nil
	}
	db, err := state.OpenHistoryDB(path)
	if err != nil {
		return nil, nil, err
	}
	if limit == 0 {
		return state.NewHistoryStore(), db, nil
	}
	past, err := db.Load(limit)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return state.NewHistoryStore(past...), db, nil
}
