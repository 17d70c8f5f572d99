package benchmark

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ParamPlaceholder in an argument template is replaced by the parameter value.
const ParamPlaceholder = "{n}"

// SplitCommand splits a command line using shell quoting rules into the
// executable and its fixed leading arguments.
func SplitCommand(cmdline string) (string, []string, error) {
	words, err := shellquote.Split(cmdline)
	if err != nil {
		return "", nil, fmt.Errorf("invalid command %q: %w", cmdline, err)
	}
	if len(words) == 0 {
		return "", nil, errors.New("empty command")
	}
	return words[0], words[1:], nil
}

// ArgsBuilder returns a function producing the arguments for a parameter:
// the fixed arguments followed by templates with ParamPlaceholder substituted.
func ArgsBuilder(fixed, templates []string) func(param int) []string {
	fixed = slices.Clone(fixed)
	templates = slices.Clone(templates)

	return func(param int) []string {
		n := strconv.Itoa(param)
		args := make([]string, 0, len(fixed)+len(templates))
		args = append(args, fixed...)
		for _, t := range templates {
			args = append(args, strings.ReplaceAll(t, ParamPlaceholder, n))
		}
		return args
	}
}
