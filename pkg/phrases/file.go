package phrases

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads additional phrase lists from a YAML file. The file may
// define any subset of the list keys:
//
//	greetings:
//	  - "namaste"
//	greeting_vocab:
//	  - "namaste"
//	genuine:
//	  - "order delivered"
//	scam_keywords:
//	  - "crypto giveaway"
//
// The returned Lists contain only the file's entries; callers merge them
// onto DefaultLists.
func LoadFile(path string) (Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lists{}, fmt.Errorf("read phrase file: %w", err)
	}

	var lists Lists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return Lists{}, fmt.Errorf("parse phrase file %s: %w", path, err)
	}
	return lists, nil
}
