package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML seed document. Unknown fields are rejected so a
// typo does not silently drop data.
func ParseYAML(data []byte) (*Seed, error) {
	return LoadYAML(bytes.NewReader(data))
}

// LoadYAML decodes a YAML seed from r
func LoadYAML(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Seed
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadYAMLFile reads a YAML seed from path
func LoadYAMLFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadYAML(f)
}

// WriteYAML encodes s as a YAML seed document
func WriteYAML(w io.Writer, s *Seed) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode seed: %w", err)
	}
	return enc.Close()
}
