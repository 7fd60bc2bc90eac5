package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Session is an interactive conversation about one portfolio summary.
type Session struct {
	w       io.Writer
	r       *bufio.Reader
	analyst Analyst
	summary string

	// Render formats answers before printing, e.g. markdown to terminal.
	// Nil prints answers as is.
	Render func(string) string
}

// NewSession creates a Session reading questions from r and writing answers to w.
func NewSession(w io.Writer, r io.Reader, analyst Analyst, summary string) *Session {
	return &Session{
		w:       w,
		r:       bufio.NewReader(r),
		analyst: analyst,
		summary: summary,
	}
}

const prompt = "assist> "

// Run prints a comprehensive analysis, then answers questions until "bye"
// or the end of input. prompts are asked first, as if typed.
func (s *Session) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(s.w, "Welcome to pfa portfolio assist. Type 'bye' to exit.")
	if err := s.answer(ctx, ""); err != nil {
		return err
	}

	// REPL loop
	for {
		// Print the prompt
		fmt.Fprint(s.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				fmt.Fprintln(s.w)
				continue
			}
			fmt.Fprintln(s.w, input)
		} else {
			var err error
			input, err = s.r.ReadString('\n')
			if err != nil && (err != io.EOF || strings.TrimSpace(input) == "") {
				if err == io.EOF {
					fmt.Fprintln(s.w)
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
			input = strings.TrimSpace(input)
		}

		switch input {
		case "":
			continue
		case "bye":
			return nil
		}
		if err := s.answer(ctx, input); err != nil {
			return err
		}
	}
}

// answer asks the analyst and prints the result. Analyst failures are
// reported to the user, only a canceled context stops the session.
func (s *Session) answer(ctx context.Context, question string) error {
	text, err := s.analyst.Analyze(ctx, s.summary, question)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		zerolog.Ctx(ctx).Warn().Err(err).Str("question", question).Msg("analysis failed")
		fmt.Fprintf(s.w, "Error: %v\n", err)
		return nil
	}
	if s.Render != nil {
		text = s.Render(text)
	}
	fmt.Fprintln(s.w, text)
	return nil
}
