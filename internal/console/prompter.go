package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/preston-bernstein/vmhl-standings/internal/app/standings"
)

// Prompter owns the terminal. It reads input lines for the command loop and for
// confirmations, and prints notifications. It satisfies standings.Notifier and
// standings.Confirmer.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	lines chan string
	once  sync.Once
	mu    sync.Mutex
}

// NewPrompter builds a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, lines: make(chan string)}
}

func (p *Prompter) start() {
	p.once.Do(func() {
		go func() {
			scanner := bufio.NewScanner(p.in)
			for scanner.Scan() {
				p.lines <- scanner.Text()
			}
			close(p.lines)
		}()
	})
}

// ReadLine prints prompt and waits for the next input line. It returns io.EOF
// when input ends and ctx.Err() when ctx is cancelled first.
func (p *Prompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	p.start()
	p.Printf("%s", prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// Confirm asks a yes/no question. Anything but y or yes declines.
func (p *Prompter) Confirm(ctx context.Context, prompt string) bool {
	answer, err := p.ReadLine(ctx, prompt+" [y/N]: ")
	if err != nil {
		p.Printf("\n")
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Notify prints a notification on its own line.
func (p *Prompter) Notify(_ context.Context, n standings.Notification) {
	if n.Level == standings.LevelError && n.Err != nil {
		p.Printf("[%s] %s: %v\n", n.Title, n.Message, n.Err)
		return
	}
	p.Printf("[%s] %s\n", n.Title, n.Message)
}

// Printf writes to the output stream.
func (p *Prompter) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// Writer exposes the output stream for table rendering.
func (p *Prompter) Writer() io.Writer {
	return lockedWriter{p: p}
}

type lockedWriter struct {
	p *Prompter
}

func (w lockedWriter) Write(b []byte) (int, error) {
	w.p.mu.Lock()
	defer w.p.mu.Unlock()
	return w.p.out.Write(b)
}
