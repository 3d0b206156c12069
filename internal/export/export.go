// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package export writes a collection in formats other tools can read.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mtreilly/arc-cards/internal/deck"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatAnki     Format = "anki"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatAnki}

// ParseFormat accepts a format name, case-insensitively. "md" and "apkg"
// are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "anki", "apkg":
		return FormatAnki, nil
	}
	return "", fmt.Errorf("unsupported format: %s (choose json, yaml, markdown, anki)", s)
}

// Binary reports whether the format must go to a file rather than a terminal.
func (f Format) Binary() bool { return f == FormatAnki }

// Options tunes the exporters.
type Options struct {
	// DeckName titles the Markdown document and names the Anki deck.
	DeckName string
	// Now stamps generated output. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.DeckName == "" {
		o.DeckName = "Arc Cards"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Write encodes cards to w.
func Write(w io.Writer, f Format, cards deck.Collection, opts Options) error {
	opts = opts.withDefaults()
	switch f {
	case FormatJSON:
		data, err := deck.Encode(cards)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		return writeYAML(w, cards)
	case FormatMarkdown:
		_, err := w.Write(markdown(cards, opts))
		return err
	case FormatAnki:
		return NewAnkiExporter(opts.DeckName, opts.Now).Export(cards, w)
	}
	return fmt.Errorf("unsupported format: %s", f)
}

func writeYAML(w io.Writer, cards deck.Collection) error {
	if cards == nil {
		cards = deck.Collection{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cards); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// markdown renders one section per card, question as heading.
func markdown(cards deck.Collection, opts Options) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", opts.DeckName)
	fmt.Fprintf(&buf, "Generated: %s\n\n", opts.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Total cards: %d\n\n---\n\n", len(cards))

	for _, c := range cards {
		fmt.Fprintf(&buf, "## %s\n\n", oneLine(c.Question))
		buf.WriteString(c.Answer)
		buf.WriteString("\n\n---\n\n")
	}
	return buf.Bytes()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
