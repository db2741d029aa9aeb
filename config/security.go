package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/ringbuf/errors"
)

// Limits on configuration input.
const (
	maxConfigSize = 1 << 20
	maxNesting    = 32
	maxEnvVarLen  = 4096
	maxPathLen    = 4096
)

// checkPath accepts JSON and YAML files only. A relative path must stay
// inside the working directory once resolved.
func checkPath(path string) error {
	switch {
	case path == "":
		return fmt.Errorf("%w: empty path", errors.ErrMissingConfig)
	case len(path) > maxPathLen:
		return fmt.Errorf("%w: path is %d bytes, limit %d", errors.ErrInvalidConfig, len(path), maxPathLen)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("%w: %s is not a .json, .yaml or .yml file", errors.ErrInvalidConfig, path)
	}

	if filepath.IsAbs(path) {
		return nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s leaves the working directory", errors.ErrInvalidConfig, path)
	}
	return nil
}

// readConfigFile reads a regular file of at most maxConfigSize bytes.
func readConfigFile(path string) ([]byte, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", errors.ErrInvalidConfig, path)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d",
			errors.ErrResourceExhausted, path, info.Size(), maxConfigSize)
	}

	return os.ReadFile(path)
}

// writeConfigFile writes data readable by the owner only.
func writeConfigFile(path string, data []byte) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if len(data) > maxConfigSize {
		return fmt.Errorf("%w: %d bytes, limit %d", errors.ErrResourceExhausted, len(data), maxConfigSize)
	}
	return os.WriteFile(path, data, 0o600)
}

// checkEnvValue bounds an override taken from the environment.
func checkEnvValue(key, value string) error {
	if len(value) > maxEnvVarLen {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", errors.ErrInvalidConfig, key, len(value), maxEnvVarLen)
	}
	if strings.ContainsRune(value, 0) {
		return fmt.Errorf("%w: %s contains a NUL byte", errors.ErrInvalidConfig, key)
	}
	return nil
}

// checkJSONNesting walks the token stream and fails once objects and arrays
// nest deeper than maxNesting.
func checkJSONNesting(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", errors.ErrParsingFailed, err)
		}
		d, ok := tok.(json.Delim)
		if !ok {
			continue
		}
		switch d {
		case '{', '[':
			if depth++; depth > maxNesting {
				return fmt.Errorf("%w: nesting deeper than %d", errors.ErrInvalidConfig, maxNesting)
			}
		default:
			depth--
		}
	}
}

// checkYAMLNesting applies the same limit to a parsed YAML document.
func checkYAMLNesting(doc *yaml.Node) error {
	var walk func(n *yaml.Node, depth int) error
	walk = func(n *yaml.Node, depth int) error {
		if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
			depth++
		}
		if depth > maxNesting {
			return fmt.Errorf("%w: nesting deeper than %d", errors.ErrInvalidConfig, maxNesting)
		}
		for _, c := range n.Content {
			if err := walk(c, depth); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(doc, 0)
}
