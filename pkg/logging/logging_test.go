package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: "", want: LevelInfo},
		{input: "warning", want: LevelWarn},
		{input: " error ", want: LevelError},
		{input: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitForCLI_FiltersAndTagsSubsystem(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)
	defer InitForCLI(LevelWarn, os.Stderr)

	Debug("Source", "hidden %d", 1)
	Info("Source", "loaded %s", "metadata.json")
	Error("Render", errors.New("boom"), "failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "loaded metadata.json")
	assert.Contains(t, out, "subsystem=Source")
	assert.Contains(t, out, "subsystem=Render")
	assert.Contains(t, out, "error=boom")
}

func TestLogLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", LogLevel(42).String())
}
