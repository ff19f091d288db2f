package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"line", "ana@test.com\n", "ana@test.com", nil},
		{"trimmed", "  Ana  \r\n", "Ana", nil},
		{"partial line before EOF", "tail", "tail", nil},
		{"empty input", "", "", io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.in)), "Enter email", &out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Enter email\n> ", out.String())
		})
	}
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origRP, origIT := readPassword, isTerminal
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		readPassword = origRP
		isTerminal = origIT
	})
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, nil)

	var out bytes.Buffer
	got, err := GetPassword(bufio.NewReader(strings.NewReader(" 123456 \r\n")), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte(" 123456 "), got)
	assert.Equal(t, "Enter password\n> ", out.String())
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("secret"), nil)

	var out bytes.Buffer
	got, err := GetPassword(bufio.NewReader(strings.NewReader("")), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	boom := errors.New("tty closed")
	stubTerminal(t, true, nil, boom)

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), "Enter password", io.Discard)
	assert.ErrorIs(t, err, boom)
}
