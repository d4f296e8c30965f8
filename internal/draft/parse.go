package draft

import (
	"fmt"
	"strings"
)

// separators accepted between a button label and its URL, tried in order.
// The spaced variants win over the bare dash so that labels containing
// hyphens still parse.
var separators = []string{" - ", " — ", " – ", " | ", "|", "-"}

// InvalidLineError reports the first line of a batch that could not be
// parsed as a button.
type InvalidLineError struct {
	Line string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("invalid button line: %q", e.Line)
}

// ErrNoButtons is returned when a batch contains no parsable lines.
var ErrNoButtons = fmt.Errorf("no button lines found")

// ParseButtonLine parses one "label SEP url" line. A line is valid iff it
// contains one of the recognized separators and both trimmed sides are
// non-empty. URLs are accepted as-is; no scheme validation is performed.
func ParseButtonLine(line string) (Button, error) {
	for _, sep := range separators {
		idx := strings.Index(line, sep)
		if idx < 0 {
			continue
		}
		label := strings.TrimSpace(line[:idx])
		url := strings.TrimSpace(line[idx+len(sep):])
		if label == "" || url == "" {
			break
		}
		return Button{Label: label, URL: url}, nil
	}
	return Button{}, &InvalidLineError{Line: strings.TrimSpace(line)}
}

// ParseButtons parses a multi-line message into buttons. Blank lines are
// ignored; the first invalid line aborts the whole batch so the operator can
// fix it, and an otherwise empty batch is rejected.
func ParseButtons(text string) ([]Button, error) {
	var buttons []Button
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		btn, err := ParseButtonLine(line)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, btn)
	}
	if len(buttons) == 0 {
		return nil, ErrNoButtons
	}
	return buttons, nil
}
