package iocli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout перехватывает stdout на время вызова fn
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestStdio_Println(t *testing.T) {
	out := captureStdout(t, func() {
		NewStdio().Println("hello", "world")
	})
	assert.Equal(t, "hello world\n", out)
}

func TestStdio_Printf(t *testing.T) {
	out := captureStdout(t, func() {
		NewStdio().Printf("%-8s %d\n", "messages", 3)
	})
	assert.Equal(t, "messages 3\n", out)
}

func TestStdio_ReadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain line", input: "yes\n", want: "yes"},
		{name: "surrounding whitespace trimmed", input: "  y  \n", want: "y"},
		{name: "empty line", input: "\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, err := os.Pipe()
			require.NoError(t, err)

			go func() {
				_, _ = w.Write([]byte(tt.input))
				_ = w.Close()
			}()

			oldStdin := os.Stdin
			defer func() { os.Stdin = oldStdin }()
			os.Stdin = r

			// Prompt уходит в stdout, гасим его чтобы не шуметь в выводе теста
			var got string
			_ = captureStdout(t, func() {
				got, err = NewStdio().ReadInput("> ")
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
