// Package prompt asks the operator for confirmation on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type answer struct {
	line string
	err  error
}

// Confirm writes question to out and reads one line from in. Only "y" or
// "Y" confirms; an empty answer or end of input declines.
//
// Confirm returns ctx.Err() as soon as ctx is done. The pending read is
// abandoned and finishes in the background.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprint(out, question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	done := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		done <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-done:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", a.err)
		}
		return strings.EqualFold(strings.TrimSpace(a.line), "y"), nil
	}
}
