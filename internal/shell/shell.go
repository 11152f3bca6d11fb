// Package shell runs the interactive command loop: it reads lines, hands
// each command to its handler and prints the reply.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/addressbook/internal/book"
	"github.com/mmynk/addressbook/internal/metrics"
	"github.com/mmynk/addressbook/internal/models"
	"github.com/mmynk/addressbook/internal/service"
	"github.com/mmynk/addressbook/internal/storage"
)

const (
	prompt         = "Enter a command: "
	welcome        = "Welcome to the assistant bot!"
	goodbye        = "Good bye!"
	invalidCommand = "Invalid command."
)

// ErrSave marks a failure to persist the address book at the end of a
// session. It is the only error that ends Run abnormally.
var ErrSave = errors.New("save address book")

// Shell is one interactive session over an address book.
type Shell struct {
	in       io.Reader
	out      io.Writer
	book     *book.AddressBook
	store    storage.Store
	handlers map[string]service.Handler
	metrics  *metrics.Metrics
}

// New creates a Shell. handlers is the command table, usually
// ContactService.Handlers wrapped with middleware. m may be nil.
func New(in io.Reader, out io.Writer, b *book.AddressBook, store storage.Store, handlers map[string]service.Handler, m *metrics.Metrics) *Shell {
	return &Shell{
		in:       in,
		out:      out,
		book:     b,
		store:    store,
		handlers: handlers,
		metrics:  m,
	}
}

// ParseInput splits a line into a lower-cased command and its arguments.
// An empty or blank line yields an empty command.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Run reads commands until "exit", "close", end of input or ctx is done,
// then saves the address book. Command failures are printed and never end
// the session; only a failed save is returned, wrapped in ErrSave.
func (s *Shell) Run(ctx context.Context) error {
	s.println(welcome)
	s.updateGauge()

	// Lines have no length limit.
	reader := bufio.NewReader(s.in)
	for {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprint(s.out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(s.out)
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				slog.Error("Failed to read input", "error", err)
			}
			break
		}

		command, args := ParseInput(line)
		if command == "" {
			continue
		}
		if command == "exit" || command == "close" {
			break
		}
		s.println(s.dispatch(ctx, command, args))
		s.updateGauge()
	}

	// Save with a context that outlives an interrupted session.
	if err := s.store.Save(context.WithoutCancel(ctx), s.book); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	slog.Info("Address book saved", "contacts", s.book.Len())
	s.println(goodbye)
	return nil
}

// dispatch runs one command and renders its result or error as text.
func (s *Shell) dispatch(ctx context.Context, command string, args []string) string {
	handler, ok := s.handlers[command]
	if !ok {
		slog.Debug("Unknown command", "command", command)
		if s.metrics != nil {
			s.metrics.CommandsTotal.WithLabelValues("unknown", metrics.OutcomeUnknownCommand).Inc()
		}
		return invalidCommand
	}

	msg, err := handler(ctx, args)
	if err == nil {
		return msg
	}
	var userErr *models.UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return "Something went wrong: " + err.Error()
}

func (s *Shell) updateGauge() {
	if s.metrics != nil {
		s.metrics.Contacts.Set(float64(s.book.Len()))
	}
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}
