package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed defaults.json
var embedded []byte

// Static returns the built-in rule set used when no store is reachable
// the content is fixed so validation stays deterministic offline
func Static() Set {
	rs, err := parseEmbedded()
	if err != nil {
		// embedded data is part of the binary, failing to parse it is a build defect
		panic(err)
	}
	return NewSet(rs)
}

func parseEmbedded() ([]Rule, error) {
	var rs []Rule
	if err := json.Unmarshal(embedded, &rs); err != nil {
		return nil, fmt.Errorf("rules: parse defaults.json: %w", err)
	}
	return rs, nil
}
