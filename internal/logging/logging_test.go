package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
		Enable()
	})
	return &buf
}

func TestLevels(t *testing.T) {
	buf := capture(t)

	Debugf("hidden %d", 1)
	Infof("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")

	SetVerbose(true)
	Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")

	SetLevel("error")
	Warn("quiet warning")
	Errorf("loud %s", "error")
	assert.NotContains(t, buf.String(), "quiet warning")
	assert.Contains(t, buf.String(), "loud error")
}

func TestDisable(t *testing.T) {
	buf := capture(t)

	Disable()
	Info("dropped")
	Enable()
	Info("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestLoggerAttrs(t *testing.T) {
	buf := capture(t)

	With("session", "abc").Infof("exchange %s", "done")
	assert.Contains(t, buf.String(), "exchange done")
	assert.Contains(t, buf.String(), "session=abc")
}
