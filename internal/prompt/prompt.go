// Package prompt asks the user for the values not given on the command line.
package prompt

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcncl/proptyper/internal/errors"
	"github.com/mcncl/proptyper/internal/parser"
)

// InvalidJSONMessage is shown when the collected text is not a JSON value
const InvalidJSONMessage = "Please enter a valid JSON string"

// Prompter reads answers line by line from in and writes questions to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the next line without its terminator. io.EOF is returned
// only when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(stderrors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func inputClosed(question string, err error) error {
	return errors.NewInputError(fmt.Sprintf("no answer to '%s'", question), err)
}

// Input asks question until validate accepts the trimmed answer. A nil
// validate accepts anything.
func (p *Prompter) Input(question string, validate func(string) error) (string, error) {
	for {
		p.printf("? %s: ", question)
		line, err := p.readLine()
		if err != nil {
			return "", inputClosed(question, err)
		}
		answer := strings.TrimSpace(line)
		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			p.printf(">> %v\n", err)
			continue
		}
		return answer, nil
	}
}

// Select asks question and returns one of choices. The answer may be the
// choice's number or its name in any case.
func (p *Prompter) Select(question string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", errors.NewInputError("no choices to select from", errors.ErrInvalidSource)
	}
	for {
		p.printf("? %s\n", question)
		for i, c := range choices {
			p.printf("  %d) %s\n", i+1, c)
		}
		p.printf("Choose [1-%d]: ", len(choices))

		line, err := p.readLine()
		if err != nil {
			return "", inputClosed(question, err)
		}
		if choice, ok := match(strings.TrimSpace(line), choices); ok {
			return choice, nil
		}
		p.printf(">> Please choose one of: %s\n", strings.Join(choices, ", "))
	}
}

func match(answer string, choices []string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], true
	}
	for _, c := range choices {
		if strings.EqualFold(answer, c) {
			return c, true
		}
	}
	return "", false
}

// JSON collects lines until they form exactly one JSON value and returns the
// text. A blank line after invalid text, or the end of input, reports
// InvalidJSONMessage; the former starts over.
func (p *Prompter) JSON(question string) (string, error) {
	p.printf("? %s:\n", question)

	var buf strings.Builder
	for {
		line, err := p.readLine()
		if err != nil {
			if buf.Len() > 0 {
				p.printf(">> %s\n", InvalidJSONMessage)
				return "", errors.NewInputError(InvalidJSONMessage, errors.ErrInvalidJSON)
			}
			return "", inputClosed(question, err)
		}

		if strings.TrimSpace(line) == "" {
			if strings.TrimSpace(buf.String()) != "" {
				p.printf(">> %s\n", InvalidJSONMessage)
				buf.Reset()
			}
			continue
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		if text := buf.String(); parser.Valid(text) {
			return strings.TrimSpace(text), nil
		}
	}
}
