package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoTANs means the entry carries no TAN attribute to select from.
var ErrNoTANs = errors.New("entry has no TAN codes")

// ErrCancelled means the user dismissed an interactive prompt.
var ErrCancelled = errors.New("cancelled")

// TANList splits the TAN attribute into its ordered codes. Blank lines and
// surrounding whitespace are dropped; indices into the list are 1-based.
func (e *Entry) TANList() []string {
	if e.TANs == "" {
		return nil
	}
	var codes []string
	for _, line := range strings.Split(e.TANs, "\n") {
		if code := strings.TrimSpace(line); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// ParseTANIndex validates a 1-based index entered by the user against a list
// of n codes.
func ParseTANIndex(input string, n int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", strings.TrimSpace(input))
	}
	if idx < 1 || idx > n {
		return 0, fmt.Errorf("index %d out of range 1-%d", idx, n)
	}
	return idx, nil
}

// SelectTAN runs the bounded selection loop: prompt for a 1-based index,
// re-prompt while the input is invalid, abort on cancel. prompt receives the
// attempt count (0 for the first ask) and reports ok=false when dismissed.
func SelectTAN(codes []string, prompt func(attempt int) (string, bool)) (string, error) {
	if len(codes) == 0 {
		return "", ErrNoTANs
	}
	for attempt := 0; ; attempt++ {
		input, ok := prompt(attempt)
		if !ok {
			return "", ErrCancelled
		}
		idx, err := ParseTANIndex(input, len(codes))
		if err != nil {
			continue
		}
		return codes[idx-1], nil
	}
}
