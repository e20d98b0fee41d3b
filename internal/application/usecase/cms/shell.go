package cms

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type Mode string

const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

type ShellState struct {
	Mode    Mode            `json:"mode"`
	Section section.Section `json:"section"`
}

// Shell switches the site between the public portfolio and the editor.
//
// Entering Editing needs nothing but a request, so the editor is open to
// anyone who can reach the server. Do not expose it publicly.
type Shell struct {
	mu      sync.Mutex
	mode    Mode
	section section.Section
	logger  logger.Logger
}

func NewShell(startEditing bool, log logger.Logger) *Shell {
	mode := ModeViewing
	if startEditing {
		mode = ModeEditing
	}
	return &Shell{mode: mode, section: section.Profile, logger: log}
}

func (s *Shell) State() ShellState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ShellState{Mode: s.mode, Section: s.section}
}

// EnterEditing reports whether the mode changed.
func (s *Shell) EnterEditing(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeEditing {
		return false
	}
	s.mode = ModeEditing
	s.logger.Info("Entered CMS", zap.String("section", string(s.section)))
	return true
}

// ExitEditing reports whether the mode changed.
func (s *Shell) ExitEditing(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeViewing {
		return false
	}
	s.mode = ModeViewing
	s.logger.Info("Left CMS")
	return true
}

// RequireEditing rejects editor operations while the portfolio is shown.
func (s *Shell) RequireEditing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeEditing {
		return apperror.NewInvalidState("editors are only available while editing")
	}
	return nil
}

// SelectSection returns the previously selected section.
func (s *Shell) SelectSection(ctx context.Context, sec section.Section) (section.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeEditing {
		return s.section, apperror.NewInvalidState("sections can only be switched while editing")
	}
	prev := s.section
	s.section = sec
	return prev, nil
}
