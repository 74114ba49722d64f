// Package report renders duplicate groups for the result consumer.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fdup/fdup/internal/dupes"
)

// Format selects how duplicate groups are rendered.
type Format string

const (
	// FormatText prints one path per line with a blank line between
	// groups.
	FormatText Format = "text"
	// FormatJSON prints an indented JSON array of path arrays.
	FormatJSON Format = "json"
	// FormatYAML prints a YAML list of path lists.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or yaml)", s)
	}
}

// Write renders groups to w in the given format. Groups are written in
// the order given; no ordering is imposed here.
func Write(w io.Writer, format Format, groups []dupes.Group) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(groups); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, group := range groups {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			for _, path := range group {
				if _, err := fmt.Fprintln(w, path); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
