package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/reportpager/model"
)

var (
	// ErrUnknownFormat is returned when a report's encoding cannot be
	// determined from its name or content.
	ErrUnknownFormat = errors.New("format: unknown report format")

	// ErrEmptyDocument is returned for a file with no content.
	ErrEmptyDocument = errors.New("format: empty document")
)

// ReadReport reads and decodes the report at path. The format is taken
// from the extension, falling back to the content.
func ReadReport(path string) (model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Report{}, fmt.Errorf("reading report: %w", err)
	}
	f := Detect(path)
	if f == Unknown {
		f = DetectFromContent(data)
	}
	report, err := DecodeReport(data, f)
	if err != nil {
		return model.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

// DecodeReport decodes data as a model.Report or as a bare list of
// sections, which yields a Report with only Sections set. Unknown selects
// the format from the content.
func DecodeReport(data []byte, f Format) (model.Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Report{}, ErrEmptyDocument
	}
	if f == Unknown {
		f = DetectFromContent(data)
	}

	switch f {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	default:
		return model.Report{}, ErrUnknownFormat
	}
}

func decodeJSON(data []byte) (model.Report, error) {
	var report model.Report
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(data, &report.Sections); err != nil {
			return model.Report{}, fmt.Errorf("decoding JSON sections: %w", err)
		}
		return report, nil
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return model.Report{}, fmt.Errorf("decoding JSON report: %w", err)
	}
	return report, nil
}

func decodeYAML(data []byte) (model.Report, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Report{}, fmt.Errorf("decoding YAML report: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return model.Report{}, ErrEmptyDocument
	}

	var report model.Report
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&report.Sections); err != nil {
			return model.Report{}, fmt.Errorf("decoding YAML sections: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(&report); err != nil {
			return model.Report{}, fmt.Errorf("decoding YAML report: %w", err)
		}
	case yaml.ScalarNode:
		if root.ShortTag() == "!!null" {
			return model.Report{}, ErrEmptyDocument
		}
		return model.Report{}, fmt.Errorf("decoding YAML report: unexpected %s at top level", root.ShortTag())
	default:
		return model.Report{}, fmt.Errorf("decoding YAML report: unexpected %s at top level", root.ShortTag())
	}
	return report, nil
}

// Encode writes v as indented JSON or as YAML.
func Encode(v any, f Format) ([]byte, error) {
	switch f {
	case JSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
		return append(out, '\n'), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, ErrUnknownFormat
	}
}
