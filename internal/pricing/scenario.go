package pricing

import (
	"encoding/json"
	"os"
)

// Scenario is the JSON shape of a replay input file.
type Scenario struct {
	Name  string `json:"name"`
	Ticks []Tick `json:"ticks"`
}

func LoadScenarioJSON(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
