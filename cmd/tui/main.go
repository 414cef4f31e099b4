// Package main runs the invite form in the terminal.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/festy23/team_invite/internal/app"
	"github.com/festy23/team_invite/internal/config"
	"github.com/festy23/team_invite/internal/invite/model"
	"github.com/festy23/team_invite/internal/invite/store"
	"github.com/festy23/team_invite/internal/invite/tui"
	"github.com/festy23/team_invite/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "invite: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Logger.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// The terminal belongs to the form, so logs only go to a file.
	sugar := zap.NewNop().Sugar()
	if cfg.Logger.IsFile() {
		if sugar, err = logger.NewWithConfig(cfg.Logger); err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
	}
	defer func() { _ = sugar.Sync() }()

	s := store.New(app.NewReducer(cfg.Invite))
	unsubscribe := s.Subscribe(func(state model.FormState) {
		sugar.Debugw("form state changed",
			"members", len(state.Team),
			"error", state.Error,
			"success", state.Success,
		)
	})
	defer unsubscribe()

	final, err := tea.NewProgram(tui.New(s)).Run()
	if err != nil {
		return fmt.Errorf("run form: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		for _, email := range m.State().Team {
			fmt.Println(email)
		}
	}
	return nil
}
