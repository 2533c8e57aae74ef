package model

import (
	"encoding/json"
	"fmt"
)

// overallProgressKey is the JSON key holding the derived percentage,
// stored alongside the per-stage maps.
const overallProgressKey = "overallProgress"

// RoadmapProgress holds the completion state of every roadmap leaf,
// keyed by stage ID and then task key.
type RoadmapProgress struct {
	Stages          map[string]map[string]bool
	OverallProgress float64
}

// MarshalJSON flattens the stages next to overallProgress, e.g.
// {"step1":{"fundamentals":true,...},...,"overallProgress":25}.
func (p RoadmapProgress) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Stages)+1)
	for stage, tasks := range p.Stages {
		out[stage] = tasks
	}
	out[overallProgressKey] = p.OverallProgress
	return json.Marshal(out)
}

// UnmarshalJSON reads the flattened form written by MarshalJSON.
func (p *RoadmapProgress) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Stages = make(map[string]map[string]bool, len(raw))
	p.OverallProgress = 0
	for k, v := range raw {
		if k == overallProgressKey {
			if err := json.Unmarshal(v, &p.OverallProgress); err != nil {
				return fmt.Errorf("decoding %s: %w", overallProgressKey, err)
			}
			continue
		}
		var tasks map[string]bool
		if err := json.Unmarshal(v, &tasks); err != nil {
			return fmt.Errorf("decoding stage %s: %w", k, err)
		}
		p.Stages[k] = tasks
	}
	return nil
}
