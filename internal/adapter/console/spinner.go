package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"| ", "/ ", "- ", "\\ "}

// Spinner animates a loading indicator while a blocking call runs. It only
// writes to the terminal and has no effect on the call's result.
type Spinner struct {
	w        io.Writer
	enabled  bool
	interval time.Duration

	mutex  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSpinner(w io.Writer, enabled bool) *Spinner {
	return &Spinner{w: w, enabled: enabled, interval: 100 * time.Millisecond}
}

func (s *Spinner) Start(message string) {
	if !s.enabled {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, message, s.done)
}

// Stop ends the animation and waits for it to clear its line.
func (s *Spinner) Stop() {
	s.mutex.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mutex.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Spinner) run(ctx context.Context, message string, done chan<- struct{}) {
	defer close(done)

	green := color.New(color.FgGreen).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", green(message), green(spinnerFrames[i%len(spinnerFrames)]))

		select {
		case <-ctx.Done():
			fmt.Fprintf(s.w, "\r%s\n", blue("Done!"+spaces(len(message))))
			return
		case <-ticker.C:
		}
	}
}

func spaces(n int) string {
	return fmt.Sprintf("%*s", n, "")
}
