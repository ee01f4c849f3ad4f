package cli

import (
	"bufio"
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/spendlog/formatter"
	"github.com/robinvdvleuten/spendlog/ledger"
	"github.com/robinvdvleuten/spendlog/loader"
	"github.com/robinvdvleuten/spendlog/output"
)

const (
	commandPrompt = "What do you want to do (add / view / delete / find / view_categories / exit)? "
	addPrompt     = "Enter the record(s) (category description amount): "
	deletePrompt  = "Which record do you want to delete?: "
	findPrompt    = "Enter the categories to find: "
	balancePrompt = "How much money do you have? "
)

// Session is one run of the ledger against a records file: it loads the
// file, applies commands to the in-memory ledger and saves on exit.
type Session struct {
	Filename  string
	Ledger    *ledger.Ledger
	Loader    Store
	Formatter *formatter.Formatter
	Logger    zerolog.Logger

	in      *bufio.Reader
	readErr error
	out     io.Writer
	errOut  io.Writer
	styles  *output.Styles

	// loadErr is set when the records file exists but could not be read.
	// Saving over it would replace its content with the session's records.
	loadErr error

	// prompter asks for the starting balance. When nil the answer is read
	// from the session input like any other line.
	prompter func(title string) (string, error)
}

// Store reads and writes records files.
type Store interface {
	Load(ctx context.Context, filename string) (*loader.Result, error)
	Save(ctx context.Context, filename string, lg *ledger.Ledger) error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLoader sets the store used to read and save the records file.
func WithLoader(l Store) SessionOption {
	return func(s *Session) {
		s.Loader = l
	}
}

// WithFormatter sets the formatter for view and find output.
func WithFormatter(f *formatter.Formatter) SessionOption {
	return func(s *Session) {
		s.Formatter = f
	}
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.Logger = logger
	}
}

// WithPrompter asks for the starting balance with prompt instead of reading
// it from the session input.
func WithPrompter(prompt func(title string) (string, error)) SessionOption {
	return func(s *Session) {
		s.prompter = prompt
	}
}

// NewSession creates a session for filename reading commands from in.
// Results go to out and diagnostics to errOut.
func NewSession(filename string, in io.Reader, out, errOut io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		Filename:  filename,
		Ledger:    ledger.New(nil, 0),
		Loader:    loader.New(),
		Formatter: formatter.New(),
		Logger:    zerolog.Nop(),
		in:        bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		styles:    output.NewStyles(out),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open loads the records file. Rejected lines are reported and skipped. A
// file that cannot be read is reported and the session starts empty. When
// askBalance is set and the file has no usable balance, the user is asked
// for one.
func (s *Session) Open(ctx context.Context, askBalance bool) *loader.Result {
	result, err := s.Loader.Load(ctx, s.Filename)
	if err != nil {
		printError(s.errOut, err.Error())
		s.loadErr = err
		result = &loader.Result{
			Filename: s.Filename,
			Ledger:   ledger.New(s.Ledger.Tree(), 0),
		}
	}

	if len(result.Diagnostics) > 0 {
		renderer := NewErrorRenderer(result.Source)
		_, _ = fmt.Fprintln(s.errOut, renderer.RenderAll(result.Diagnostics))
		_, _ = fmt.Fprintln(s.errOut)
		printWarning(s.errOut, fmt.Sprintf("%d line(s) in %s skipped", len(result.Diagnostics), s.Filename))
	}

	s.Ledger = result.Ledger

	if !result.NeedsBalance() {
		return result
	}

	if !result.Missing && err == nil {
		printWarning(s.errOut, fmt.Sprintf("%s has no valid balance line", s.Filename))
	}

	if askBalance {
		s.Ledger.SetBalance(s.askBalance())
	}

	return result
}

func (s *Session) askBalance() int64 {
	var answer string
	if s.prompter != nil {
		var err error
		answer, err = s.prompter(strings.TrimSpace(balancePrompt))
		if err != nil {
			printError(s.errOut, err.Error())
		}
	} else {
		answer, _ = s.readLine(balancePrompt)
	}

	balance, err := strconv.ParseInt(strings.TrimSpace(answer), 10, 64)
	if err != nil {
		printError(s.errOut, "Invalid value for money. Set to 0 by default.")
		return 0
	}
	return balance
}

// readLine prints prompt and reads one line of input, however long. It
// reports false at end of input or when reading fails.
func (s *Session) readLine(prompt string) (string, bool) {
	_, _ = fmt.Fprint(s.out, prompt)

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		if !stdErrors.Is(err, io.EOF) {
			s.readErr = err
		}
		_, _ = fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Run reads and dispatches commands until exit or end of input, both of
// which save the ledger. Command failures are reported and the loop goes
// on; only a failure to read input or to save is returned. The ledger is
// saved before a read failure is returned.
func (s *Session) Run(ctx context.Context) error {
	for {
		command, ok := s.readLine(commandPrompt)
		if !ok {
			if s.readErr != nil {
				return stdErrors.Join(fmt.Errorf("failed to read command: %w", s.readErr), s.Save(ctx))
			}
			command = "exit"
		}

		done, err := s.Dispatch(ctx, command)
		if done {
			return err
		}
		if err != nil {
			printError(s.errOut, err.Error())
		}
	}
}

// Dispatch runs a single interactive command. done reports whether the
// session has ended. A panic inside the command is returned as an error.
func (s *Session) Dispatch(ctx context.Context, command string) (done bool, err error) {
	command = strings.TrimSpace(command)

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error().Str("command", command).Interface("panic", r).Msg("command panicked")
			done, err = false, fmt.Errorf("%s failed: %v", command, r)
		}
	}()

	s.Logger.Debug().Str("command", command).Msg("dispatch")

	switch command {
	case "add":
		text, _ := s.readLine(addPrompt)
		s.Add(text)
	case "view":
		err = s.View()
	case "delete":
		description, _ := s.readLine(deletePrompt)
		if err = s.Delete(description); stdErrors.Is(err, ledger.ErrRecordNotFound) {
			err = nil
		}
	case "find":
		query, _ := s.readLine(findPrompt)
		err = s.Find(query)
	case "view_categories":
		err = s.Categories()
	case "exit":
		return true, s.Save(ctx)
	default:
		err = fmt.Errorf("invalid command %q, try again", command)
	}

	return false, err
}

// Add adds every valid entry in text and reports the rejected ones.
func (s *Session) Add(text string) ([]ledger.Record, []error) {
	added, errs := s.Ledger.Add(text)

	renderer := NewErrorRenderer([]byte(text))
	for _, err := range errs {
		_, _ = fmt.Fprintln(s.errOut, renderer.Render(err))
	}

	if len(added) > 0 {
		printSuccess(s.out, fmt.Sprintf("Added %d record(s), now you have %s dollars.",
			len(added), s.styles.Amount(s.Ledger.Current())))
	}

	s.Logger.Debug().
		Int("records", len(added)).
		Int("diagnostics", len(errs)).
		Msg("added records")

	return added, errs
}

// View writes every record with the running balance.
func (s *Session) View() error {
	return s.Formatter.FormatView(s.out, s.Ledger)
}

// Delete removes the most recent record with description.
func (s *Session) Delete(description string) error {
	description = strings.TrimSpace(description)

	record, err := s.Ledger.Delete(description)
	if stdErrors.Is(err, ledger.ErrRecordNotFound) {
		printWarning(s.errOut, "Record not found.")
		return err
	}
	if err != nil {
		return err
	}

	printSuccess(s.out, fmt.Sprintf("Deleted %s %s %s",
		s.styles.Category(record.Category), record.Description, s.styles.Amount(record.Amount)))
	return nil
}

// Find writes the records filed under query or beneath it.
func (s *Session) Find(query string) error {
	result := s.Ledger.Find(strings.TrimSpace(query))
	if len(result.Records) == 0 {
		printInfof(s.out, "No records found for the specified categories.")
		return nil
	}
	return s.Formatter.FormatFind(s.out, result)
}

// Categories writes the category tree.
func (s *Session) Categories() error {
	return s.Ledger.Tree().Render(s.out)
}

// Save writes the ledger back to the records file. When the records file
// could not be read at open, it is left alone and the ledger goes to
// RecoveryFilename instead.
func (s *Session) Save(ctx context.Context) error {
	filename := s.Filename
	if s.loadErr != nil {
		filename = s.RecoveryFilename()
	}

	if err := s.Loader.Save(ctx, filename, s.Ledger); err != nil {
		return err
	}

	if s.loadErr != nil {
		printWarning(s.errOut, fmt.Sprintf("%s could not be read and was left unchanged", s.Filename))
	}
	printSuccess(s.out, fmt.Sprintf("Records saved to %s", pathStyle.Render(filename)))
	return nil
}

// RecoveryFilename is where Save writes when the records file could not be
// read.
func (s *Session) RecoveryFilename() string {
	return s.Filename + ".recovered"
}
