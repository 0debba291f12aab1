// Package prompt asks the user for line-based input until it validates.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when input ends before a valid answer was given
var ErrNoInput = errors.New("no more input")

// Validator turns a raw answer into a value; ok=false asks again
type Validator[T any] func(raw string) (value T, ok bool)

// Prompter reads answers from in and writes questions to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask writes question and re-asks until validate accepts the answer
func Ask[T any](p *Prompter, question string, validate Validator[T]) (T, error) {
	var zero T
	for {
		if _, err := fmt.Fprintf(p.out, "%s ", question); err != nil {
			return zero, err
		}

		line, err := p.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return zero, ErrNoInput
			}
			return zero, fmt.Errorf("read answer: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if value, ok := validate(line); ok {
			return value, nil
		}
		if errors.Is(err, io.EOF) {
			return zero, ErrNoInput
		}
	}
}
