package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/internal/ui"
)

// Shell runs the Model and implements the correlator's Navigator by posting
// messages into the bubbletea event loop.
type Shell struct {
	program *tea.Program
}

func New(ctrl ui.Controller, sim ui.Simulator, testSubject string, opts ...tea.ProgramOption) *Shell {
	model := NewModel(ctrl, sim, testSubject)
	return &Shell{program: tea.NewProgram(model, opts...)}
}

// Navigate blocks until the event loop accepts the message, or returns at
// once if the program has exited.
func (s *Shell) Navigate(view domain.View) {
	s.program.Send(viewMsg{view: view})
}

func (s *Shell) ShowError(message string) {
	s.program.Send(errorMsg{message: message})
}

// Run blocks until the user quits or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.program.Quit()
		case <-stop:
		}
	}()
	_, err := s.program.Run()
	return err
}
