package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mcncl/proptyper/internal/config"
)

// Formatter tidies generated files before they are written
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig())
}

// NewFormatterWithConfig creates a Formatter that indents JSON with the
// configured render indent
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{indent: cfg.Render.Indent}
}

// Format formats code according to the output format it was generated for
func (f *Formatter) Format(code, format string) (string, error) {
	switch format {
	case config.FormatJSONSchema:
		return f.FormatJSON(code)
	case config.FormatPropTypes, "":
		return f.FormatJS(code)
	default:
		return "", fmt.Errorf("unknown output format '%s'", format)
	}
}

// FormatJS normalizes line endings, strips trailing whitespace, collapses
// runs of blank lines and ends the file with a single newline. Brackets
// must balance.
func (f *Formatter) FormatJS(code string) (string, error) {
	// Handle empty input
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	code = strings.ReplaceAll(code, "\r\n", "\n")
	if err := checkBrackets(code); err != nil {
		return "", fmt.Errorf("failed to parse JavaScript: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(code), "\n")
	result := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n") + "\n", nil
}

// FormatJSON pretty-prints a JSON document
func (f *Formatter) FormatJSON(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(code), "", f.indent); err != nil {
		return "", fmt.Errorf("failed to parse JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// checkBrackets verifies that (), [] and {} pair up outside of string
// literals and line comments
func checkBrackets(code string) error {
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	var stack []byte
	line := 1

	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '\n':
			line++
		case c == '/' && i+1 < len(code) && code[i+1] == '/':
			for i < len(code) && code[i] != '\n' {
				i++
			}
			line++
		case c == '\'' || c == '"' || c == '`':
			end, err := skipString(code, i)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			i = end
		case c == '(' || c == '[' || c == '{':
			stack = append(stack, c)
		case c == ')' || c == ']' || c == '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				return fmt.Errorf("line %d: unexpected '%c'", line, c)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed '%c'", stack[len(stack)-1])
	}
	return nil
}

// skipString returns the index of the quote closing the literal opened at start
func skipString(code string, start int) (int, error) {
	quote := code[start]
	for i := start + 1; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case quote:
			return i, nil
		case '\n':
			if quote != '`' {
				return 0, fmt.Errorf("unterminated string literal")
			}
		}
	}
	return 0, fmt.Errorf("unterminated string literal")
}
