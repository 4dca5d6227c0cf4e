// Package format detects and decodes the report files read by the
// reportpager command.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported report encoding.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a JSON document.
	JSON
	// YAML indicates a YAML document.
	YAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		return ""
	}
}

// Parse converts a format name such as "json" or "yml" to a Format.
func Parse(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON
	case "yaml", "yml":
		return YAML
	default:
		return Unknown
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Unknown
	}
}

// DetectFromContent inspects the leading bytes of a document. A document
// opening with '{' or '[' is JSON; one opening with a YAML directive,
// document marker, comment, or a "key:" line is YAML.
// Returns Unknown if the format cannot be determined.
func DetectFromContent(data []byte) Format {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	switch data[0] {
	case '{', '[':
		return JSON
	case '%', '#':
		return YAML
	}
	if bytes.HasPrefix(data, []byte("---")) || bytes.HasPrefix(data, []byte("- ")) {
		return YAML
	}

	line := data
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if i := bytes.IndexByte(line, ':'); i > 0 && (i == len(line)-1 || line[i+1] == ' ' || line[i+1] == '\r') {
		return YAML
	}

	return Unknown
}

// DetectFromReader reads up to 512 bytes from r and calls DetectFromContent.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	head := make([]byte, 512)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromContent(head[:n]), nil
}
