package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ResultSet maps parameter values to their collected samples, in the order the
// parameters were first attempted.
//
// It encodes as a JSON (or YAML) object whose keys are the parameter values as
// text and whose values are arrays of raw microsecond samples.
type ResultSet struct {
	runs  []*ParameterRun
	index map[int]int
}

func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[int]int)}
}

// Begin records that param is being attempted. It is a no-op if param already has an entry.
func (rs *ResultSet) Begin(param int) {
	if rs.index == nil {
		rs.index = make(map[int]int)
	}
	if _, ok := rs.index[param]; ok {
		return
	}
	rs.index[param] = len(rs.runs)
	rs.runs = append(rs.runs, &ParameterRun{Param: param, Samples: []float64{}})
}

// Append adds a sample to param, creating the entry if needed.
func (rs *ResultSet) Append(param int, sample float64) {
	rs.Begin(param)
	run := rs.runs[rs.index[param]]
	run.Samples = append(run.Samples, sample)
}

// Get returns a copy of the run for param.
func (rs *ResultSet) Get(param int) (ParameterRun, bool) {
	i, ok := rs.index[param]
	if !ok {
		return ParameterRun{}, false
	}
	return copyRun(rs.runs[i]), true
}

// Runs returns copies of all runs in insertion order.
func (rs *ResultSet) Runs() []ParameterRun {
	out := make([]ParameterRun, 0, len(rs.runs))
	for _, r := range rs.runs {
		out = append(out, copyRun(r))
	}
	return out
}

// Len returns the number of parameters attempted.
func (rs *ResultSet) Len() int {
	return len(rs.runs)
}

// SampleCount returns the total number of samples across all parameters.
func (rs *ResultSet) SampleCount() int {
	n := 0
	for _, r := range rs.runs {
		n += len(r.Samples)
	}
	return n
}

func copyRun(r *ParameterRun) ParameterRun {
	return ParameterRun{Param: r.Param, Samples: slices.Clone(r.Samples)}
}

func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range rs.runs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(r.Param)))
		buf.WriteByte(':')

		samples := r.Samples
		if samples == nil {
			samples = []float64{}
		}
		data, err := json.Marshal(samples)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("result set: expected object, got %v", tok)
	}

	out := NewResultSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var samples []float64
		if err := dec.Decode(&samples); err != nil {
			return fmt.Errorf("result set: parameter %q: %w", key, err)
		}
		if err := out.add(key, samples); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*rs = *out
	return nil
}

func (rs *ResultSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range rs.runs {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(r.Param)}

		value := &yaml.Node{}
		samples := r.Samples
		if samples == nil {
			samples = []float64{}
		}
		if err := value.Encode(samples); err != nil {
			return nil, err
		}
		value.Style = yaml.FlowStyle

		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

func (rs *ResultSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("result set: expected mapping at line %d", node.Line)
	}

	out := NewResultSet()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value

		var samples []float64
		if err := node.Content[i+1].Decode(&samples); err != nil {
			return fmt.Errorf("result set: parameter %q: %w", key, err)
		}
		if err := out.add(key, samples); err != nil {
			return err
		}
	}

	*rs = *out
	return nil
}

func (rs *ResultSet) add(key string, samples []float64) error {
	param, err := strconv.Atoi(key)
	if err != nil {
		return fmt.Errorf("result set: invalid parameter %q: %w", key, err)
	}
	if _, dup := rs.index[param]; dup {
		return fmt.Errorf("result set: duplicate parameter %d", param)
	}

	rs.Begin(param)
	rs.runs[rs.index[param]].Samples = append(rs.runs[rs.index[param]].Samples, samples...)
	return nil
}
