package services

import (
	"github.com/rs/zerolog"

	"time-picker/internal/clock"
	"time-picker/internal/picker"
	"time-picker/internal/schedule"
)

// session is one picker driven frame by frame on behalf of a service call.
type session struct {
	controller *picker.Controller
	queue      *schedule.Queue
	changes    []picker.ChangeEvent
}

func newSession(clk clock.Clock, logger zerolog.Logger, attrs picker.Attributes) *session {
	s := &session{queue: schedule.NewQueue()}
	s.controller = picker.NewController(picker.Dependencies{
		Clock:     clk,
		Scheduler: s.queue,
		Logger:    &logger,
	})
	s.controller.ApplyAttributes(attrs)
	s.controller.SetChangeListener(func(e picker.ChangeEvent) bool {
		s.changes = append(s.changes, e)
		return true
	})
	return s
}

// typeText focuses the picker and enters text as one input event.
func (s *session) typeText(text string) {
	s.controller.HandleFocus(false)
	s.controller.HandleInput(text)
}

// blur leaves the input and runs the deferred commit.
func (s *session) blur() {
	s.controller.HandleBlur()
	s.queue.Flush()
}
