package benchmark

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseParams parses a parameter list such as "1-13" or "1-5,8,10-12".
// Values must be positive and appear only once.
func ParseParams(list string) ([]int, error) {
	var params []int
	seen := make(map[int]bool)

	add := func(v int) error {
		if v < 1 {
			return fmt.Errorf("parameter %d must be positive", v)
		}
		if seen[v] {
			return fmt.Errorf("parameter %d listed twice", v)
		}
		seen[v] = true
		params = append(params, v)
		return nil
	}

	for part := range strings.SplitSeq(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			v, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid parameter %q: %w", part, err)
			}
			if err := add(v); err != nil {
				return nil, err
			}
			continue
		}

		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", part, err)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", part, err)
		}
		if to < from {
			return nil, fmt.Errorf("invalid range %q: end before start", part)
		}
		for v := from; v <= to; v++ {
			if err := add(v); err != nil {
				return nil, err
			}
		}
	}

	if len(params) == 0 {
		return nil, errors.New("no parameters specified")
	}
	return params, nil
}

// FormatParams renders params compactly, collapsing consecutive runs into ranges.
func FormatParams(params []int) string {
	var parts []string
	for i := 0; i < len(params); {
		j := i
		for j+1 < len(params) && params[j+1] == params[j]+1 {
			j++
		}
		if j > i {
			parts = append(parts, fmt.Sprintf("%d-%d", params[i], params[j]))
		} else {
			parts = append(parts, strconv.Itoa(params[i]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}

// ParamsValue is a pflag.Value holding a parameter list in ParseParams syntax.
type ParamsValue struct {
	Params []int
}

func NewParamsValue(defaults []int) *ParamsValue {
	return &ParamsValue{Params: defaults}
}

func (v *ParamsValue) String() string {
	if v == nil {
		return ""
	}
	return FormatParams(v.Params)
}

func (v *ParamsValue) Set(s string) error {
	params, err := ParseParams(s)
	if err != nil {
		return err
	}
	v.Params = params
	return nil
}

func (v *ParamsValue) Type() string {
	return "params"
}
