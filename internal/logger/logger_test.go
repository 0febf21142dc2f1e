package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output to a buffer and returns a cleanup
// function restoring the previous writer.
func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false
	mu.Unlock()
	reconfigure()

	cleanup := func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}
	return buf, cleanup
}

func TestLevelFiltering(t *testing.T) {
	t.Run("DebugLevelShowsAllMessages", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("DEBUG")
		defer SetLevel("INFO")

		Debug("debug message")
		Info("info message")
		Warn("warn message")
		Error("error message")

		out := buf.String()
		assert.Contains(t, out, "debug message")
		assert.Contains(t, out, "info message")
		assert.Contains(t, out, "warn message")
		assert.Contains(t, out, "error message")
	})

	t.Run("ErrorLevelSuppressesLowerLevels", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("ERROR")
		defer SetLevel("INFO")

		Debug("debug message")
		Info("info message")
		Warn("warn message")
		Error("error message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.NotContains(t, out, "warn message")
		assert.Contains(t, out, "error message")
	})

	t.Run("InvalidLevelIgnored", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("BOGUS")
		Info("still info")
		assert.Contains(t, buf.String(), "still info")
	})
}

func TestStructuredFields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	Error("remote call failed", Command("CHECK_LEASES"), Status(-5))

	out := buf.String()
	assert.Contains(t, out, "remote call failed")
	assert.Contains(t, out, "command=CHECK_LEASES")
	assert.Contains(t, out, "status=-5")
}

func TestJSONFormat(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetFormat("json")
	defer SetFormat("text")

	Info("json output", Host("meta1"), Port(20000))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "json output", record["msg"])
	assert.Equal(t, "meta1", record[KeyHost])
	assert.Equal(t, float64(20000), record[KeyPort])
}

func TestTextFormatLayout(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	Warn("layout check")

	line := strings.TrimRight(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(line, "["), "expected timestamp prefix, got %q", line)
	assert.Contains(t, line, "[WARN]")
	assert.True(t, strings.HasSuffix(line, "layout check"))
}

func TestErrAttr(t *testing.T) {
	assert.Equal(t, KeyError, Err(assert.AnError).Key)
	assert.True(t, Err(nil).Equal(Err(nil)))
}
