package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/store"
)

// StoreKey is the key holding the serialized roadmap progress.
const StoreKey = "dsaProgress"

// NewProgress returns progress with every leaf of Schema unchecked.
func NewProgress() model.RoadmapProgress {
	p := model.RoadmapProgress{Stages: make(map[string]map[string]bool, len(Schema))}
	for _, stage := range Schema {
		leaves := make(map[string]bool, len(stage.Leaves))
		for _, l := range stage.Leaves {
			leaves[l.Key] = false
		}
		p.Stages[stage.ID] = leaves
	}
	return p
}

// normalize maps p onto Schema: unknown stages and leaves are dropped,
// missing ones default to false, and the overall percentage is recomputed.
func normalize(p model.RoadmapProgress) model.RoadmapProgress {
	out := NewProgress()
	for stageID, leaves := range out.Stages {
		for key := range leaves {
			leaves[key] = p.Stages[stageID][key]
		}
	}
	out.OverallProgress = OverallCompletion(out)
	return out
}

// clone deep-copies p so callers' maps are never mutated.
func clone(p model.RoadmapProgress) model.RoadmapProgress {
	out := model.RoadmapProgress{
		Stages:          make(map[string]map[string]bool, len(p.Stages)),
		OverallProgress: p.OverallProgress,
	}
	for stageID, leaves := range p.Stages {
		cp := make(map[string]bool, len(leaves))
		for k, v := range leaves {
			cp[k] = v
		}
		out.Stages[stageID] = cp
	}
	return out
}

// StageCompletion returns the percentage of completed leaves in stage.
func StageCompletion(p model.RoadmapProgress, stageID string) float64 {
	stage, ok := FindStage(stageID)
	if !ok || len(stage.Leaves) == 0 {
		return 0
	}
	done := 0
	for _, l := range stage.Leaves {
		if p.Stages[stageID][l.Key] {
			done++
		}
	}
	return float64(done) / float64(len(stage.Leaves)) * 100
}

// OverallCompletion returns the percentage of completed leaves across all
// stages.
func OverallCompletion(p model.RoadmapProgress) float64 {
	done, total := 0, 0
	for _, stage := range Schema {
		for _, l := range stage.Leaves {
			total++
			if p.Stages[stage.ID][l.Key] {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

// Tracker persists roadmap progress. Every mutation recomputes the overall
// percentage and writes through to the store.
type Tracker struct {
	store store.Store
}

// NewTracker creates a Tracker backed by s.
func NewTracker(s store.Store) *Tracker {
	return &Tracker{store: s}
}

// Load reads the stored progress. Missing or unreadable data yields fresh
// progress.
func (t *Tracker) Load(ctx context.Context) (model.RoadmapProgress, error) {
	raw, ok, err := t.store.Get(ctx, StoreKey)
	if err != nil {
		return model.RoadmapProgress{}, fmt.Errorf("loading roadmap progress: %w", err)
	}
	if !ok {
		return NewProgress(), nil
	}

	var p model.RoadmapProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("roadmap: discarding unreadable progress: %v", err)
		return NewProgress(), nil
	}
	return normalize(p), nil
}

// SetTaskState marks a leaf completed or not. Stage/leaf pairs outside
// Schema are ignored.
func (t *Tracker) SetTaskState(
	ctx context.Context,
	p model.RoadmapProgress,
	stageID string,
	key string,
	completed bool,
) (model.RoadmapProgress, error) {
	if !hasLeaf(stageID, key) {
		return p, nil
	}

	next := normalize(clone(p))
	next.Stages[stageID][key] = completed
	next.OverallProgress = OverallCompletion(next)

	if err := t.save(ctx, next); err != nil {
		return p, err
	}
	return next, nil
}

// Toggle flips a leaf.
func (t *Tracker) Toggle(
	ctx context.Context,
	p model.RoadmapProgress,
	stageID string,
	key string,
) (model.RoadmapProgress, error) {
	return t.SetTaskState(ctx, p, stageID, key, !p.Stages[stageID][key])
}

// Reset removes stored progress and returns a fresh, unchecked roadmap.
func (t *Tracker) Reset(ctx context.Context) (model.RoadmapProgress, error) {
	if err := t.store.Remove(ctx, StoreKey); err != nil {
		return model.RoadmapProgress{}, fmt.Errorf("resetting roadmap progress: %w", err)
	}
	return NewProgress(), nil
}

func (t *Tracker) save(ctx context.Context, p model.RoadmapProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling roadmap progress: %w", err)
	}
	if err := t.store.Set(ctx, StoreKey, string(data)); err != nil {
		return fmt.Errorf("saving roadmap progress: %w", err)
	}
	return nil
}
