package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

// ParseQuestionList extracts a flat list of question strings from the model
// output. The prompt asks for a Python-style bracketed list, but models drift,
// so a line-based list (numbered or dashed) is accepted as a fallback.
func ParseQuestionList(raw string) ([]string, error) {
	if questions, ok := parseBracketedList(raw); ok {
		return questions, nil
	}

	if questions, ok := parseLineList(raw); ok {
		return questions, nil
	}

	return nil, fmt.Errorf("%w: no recognizable list in response", entity.ErrQuestionsParse)
}

// parseBracketedList handles the requested format: [...] with single- or
// double-quoted items. Escaped quotes inside items are unescaped.
func parseBracketedList(raw string) ([]string, bool) {
	open := strings.Index(raw, "[")
	close := strings.LastIndex(raw, "]")
	if open < 0 || close <= open {
		return nil, false
	}

	body := raw[open+1 : close]
	var (
		questions []string
		current   strings.Builder
		quote     rune
		escaped   bool
		inString  bool
	)

	for _, r := range body {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case inString && r == '\\':
			escaped = true
		case inString && r == quote:
			inString = false
			if q := strings.TrimSpace(current.String()); q != "" {
				questions = append(questions, q)
			}
			current.Reset()
		case inString:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			inString = true
			quote = r
		}
	}

	if len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

// parseLineList treats each non-empty line as one question, stripping list
// markers ("1.", "1)", "-", "•") from the front.
func parseLineList(raw string) ([]string, bool) {
	var questions []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = stripListMarker(line)
		if line == "" {
			continue
		}
		// A question must end with a question mark, otherwise the line is
		// most likely commentary around the list.
		if !strings.HasSuffix(line, "?") {
			continue
		}
		questions = append(questions, line)
	}

	if len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func stripListMarker(line string) string {
	i := 0
	for i < len(line) && unicode.IsDigit(rune(line[i])) {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}

	for _, marker := range []string{"- ", "• ", "* "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):])
		}
	}

	return line
}
