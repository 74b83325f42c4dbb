package prompt

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const question = "Do you want to proceed with database creation? (y/N): "

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"  y  \n", true},
		{"y", true},
		{"\r\ny\n", false},
		{"n\n", false},
		{"N\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(context.Background(), strings.NewReader(tt.input), &out, question)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, question, out.String())
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, stderrors.New("input/output error")
}

func TestConfirm_ReadError(t *testing.T) {
	got, err := Confirm(context.Background(), failingReader{}, &bytes.Buffer{}, question)

	require.Error(t, err)
	assert.False(t, got)
	assert.Contains(t, err.Error(), "failed to read answer")
}

func TestConfirm_Cancelled(t *testing.T) {
	// A pipe nobody writes to blocks like an idle terminal
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	got, err := Confirm(ctx, r, &bytes.Buffer{}, question)

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, got)
}
