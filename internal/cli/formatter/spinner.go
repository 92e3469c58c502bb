package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on w while a slow call (an LLM round trip) runs.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frame), Dim(s.message))
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	<-s.done
}

// StartSpinner starts a spinner on w and returns its stop function.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
