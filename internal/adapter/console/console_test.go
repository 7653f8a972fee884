package console

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestSpinner_Disabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, false)

	s.Start("loading")
	s.Stop()

	assert.Empty(t, buf.String())
}

func TestSpinner_StartStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, true)
	s.interval = time.Millisecond

	s.Start("loading")
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "loading")
	assert.Contains(t, out, "Done!")

	// Stop is idempotent.
	s.Stop()
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, true)
	assert.NotPanics(t, s.Stop)
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, true)

	p.Start(3, "Fetching rates")
	p.Advance()
	p.Advance()
	p.Advance()
	p.Finish()

	assert.Contains(t, buf.String(), "Fetching rates")
	assert.Contains(t, buf.String(), "3/3")
}

func TestProgressBar_Disabled(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, false)

	p.Start(3, "Fetching rates")
	p.Advance()
	p.Finish()

	assert.Empty(t, buf.String())
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Note("Starting")
	p.Result("1 USD = 279.50 PKR")
	p.Error("boom")

	assert.Equal(t, "Starting\n1 USD = 279.50 PKR\nboom\n", buf.String())
}
