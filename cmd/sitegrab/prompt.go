package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/sitegrab"
)

// Ensure Prompter implements sitegrab.Resumer at compile time.
var _ sitegrab.Resumer = (*Prompter)(nil)

// Prompter reads operator answers one line at a time. A single goroutine
// owns the reader, so a prompt abandoned on cancellation leaves the next
// line for the following prompt.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	lines chan answer
	once  sync.Once
}

type answer struct {
	text string
	err  error
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, lines: make(chan answer)}
}

func (p *Prompter) read() {
	sc := bufio.NewScanner(p.in)
	for sc.Scan() {
		p.lines <- answer{text: sc.Text()}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	p.lines <- answer{err: err}
	close(p.lines)
}

// Ask writes prompt and returns the next input line. It returns io.EOF once
// input is exhausted and ctx.Err() if ctx is cancelled first.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	p.once.Do(func() { go p.read() })

	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case a, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return a.text, a.err
	}
}

// WaitForOperator prints instructions and blocks until the operator presses
// Enter.
func (p *Prompter) WaitForOperator(ctx context.Context, instructions string) error {
	fmt.Fprintln(p.out, instructions)
	_, err := p.Ask(ctx, "")
	return err
}
