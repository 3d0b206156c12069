// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseDrafts reads cards to import from JSON or YAML. The document is
// either a list of {question, answer} objects or a mapping with such a
// list under "cards". Other fields, including ids, are ignored so imported
// cards always get fresh ids.
func ParseDrafts(data []byte) ([]Draft, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var list []Draft
	listErr := yaml.Unmarshal(data, &list)
	if listErr == nil {
		return list, nil
	}

	var doc struct {
		Cards []Draft `yaml:"cards"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cards: %w", listErr)
	}
	return doc.Cards, nil
}
