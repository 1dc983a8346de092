package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-kratos/kratos/v2/encoding"
	"gopkg.in/yaml.v3"

	"github.com/go-tangra/go-tangra-specs/internal/codec"
	"github.com/go-tangra/go-tangra-specs/internal/convert"
	"github.com/go-tangra/go-tangra-specs/internal/record"
)

// CSVHeader is the first row of every CSV report.
var CSVHeader = []string{"Property", "Value"}

// WriteCSV writes the flattened report as a two-column table.
func WriteCSV(w io.Writer, v record.Value) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range convert.Rows(v) {
		if err := cw.Write(row[:]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the nested report with four-space indentation.
func WriteJSON(w io.Writer, v record.Value) error {
	c := encoding.GetCodec(codec.Name)
	if c == nil {
		return fmt.Errorf("codec %q not registered", codec.Name)
	}
	data, err := c.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteYAML writes the nested report keeping key order.
func WriteYAML(w io.Writer, v record.Value) error {
	node, err := yamlNode(v)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(4)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

func yamlNode(v record.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case record.KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.Fields() {
			child, err := yamlNode(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Key, err)
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
			n.Content = append(n.Content, key, child)
		}
		return n, nil
	case record.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range v.Items() {
			child, err := yamlNode(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	default:
		return yamlScalar(v.Interface()), nil
	}
}

func yamlScalar(v any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch s := v.(type) {
	case nil:
		n.Tag, n.Value = "!!null", "null"
	case string:
		n.Tag, n.Value = "!!str", s
	case bool:
		n.Tag, n.Value = "!!bool", strconv.FormatBool(s)
	case float32:
		n.Tag, n.Value = "!!float", yamlFloat(float64(s))
	case float64:
		n.Tag, n.Value = "!!float", yamlFloat(s)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n.Tag, n.Value = "!!int", convert.Text(s)
	default:
		n.Tag, n.Value = "!!str", convert.Text(s)
	}
	return n
}

// yamlFloat keeps whole numbers recognisable as floats ("3.0", not "3").
func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return record.FormatFloat(f)
}

// WriteTOML writes the nested report as TOML. TOML tables have no key order,
// so keys are emitted in the encoder's order.
func WriteTOML(w io.Writer, v record.Value) error {
	if v.Kind() != record.KindMapping {
		return fmt.Errorf("toml: top-level %s is not a table", v.Kind())
	}
	return toml.NewEncoder(w).Encode(v.Plain())
}
