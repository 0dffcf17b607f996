// Package authorizer decides whether exported videos may be written to the library.
package authorizer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/clipmerge/pkg/ports"
)

// Mode selects an authorizer implementation.
type Mode string

const (
	ModePrompt  Mode = "prompt"
	ModeGranted Mode = "granted"
	ModeDenied  Mode = "denied"
)

// Valid reports whether the mode is known.
func (m Mode) Valid() bool {
	return m == ModePrompt || m == ModeGranted || m == ModeDenied
}

// New returns the authorizer for mode. Prompting uses the process's stdin and stdout.
func New(mode Mode) (ports.Authorizer, error) {
	switch mode {
	case ModeGranted:
		return NewStatic(ports.AuthorizationGranted), nil
	case ModeDenied:
		return NewStatic(ports.AuthorizationDenied), nil
	case ModePrompt, "":
		return NewPrompt(), nil
	}
	return nil, fmt.Errorf("authorizer: unknown mode %q", mode)
}

// Static returns a fixed decision.
type Static struct {
	status ports.AuthorizationStatus
}

// NewStatic creates an authorizer that always answers status.
func NewStatic(status ports.AuthorizationStatus) *Static {
	return &Static{status: status}
}

// Authorize returns the configured decision.
func (s *Static) Authorize(ctx context.Context) (ports.Grant, error) {
	if err := ctx.Err(); err != nil {
		return ports.Grant{}, err
	}
	return ports.NewGrant(s.status, time.Now()), nil
}

// Prompt asks on the terminal the first time and remembers the answer.
// A non-interactive session is treated as a denial.
type Prompt struct {
	in          io.Reader
	out         io.Writer
	interactive bool

	mu      sync.Mutex
	decided *ports.Grant
}

// NewPrompt creates a Prompt bound to stdin and stdout.
func NewPrompt() *Prompt {
	fd := os.Stdin.Fd()
	return NewPromptWith(os.Stdin, os.Stdout, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// NewPromptWith creates a Prompt over arbitrary streams.
func NewPromptWith(in io.Reader, out io.Writer, interactive bool) *Prompt {
	return &Prompt{in: in, out: out, interactive: interactive}
}

// Authorize returns the remembered decision or asks for one.
func (p *Prompt) Authorize(ctx context.Context) (ports.Grant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.decided != nil {
		return *p.decided, nil
	}

	status := ports.AuthorizationDenied
	if p.interactive {
		answer, err := p.ask(ctx)
		if err != nil {
			return ports.Grant{}, err
		}
		if isYes(answer) {
			status = ports.AuthorizationGranted
		}
	}

	grant := ports.NewGrant(status, time.Now())
	p.decided = &grant
	return grant, nil
}

func (p *Prompt) ask(ctx context.Context) (string, error) {
	fmt.Fprint(p.out, l10n.T("Save the video to the library? [y/N]: "))

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err == io.EOF {
			return "", nil
		}
		return r.line, r.err
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
