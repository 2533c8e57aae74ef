package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/store"
	"github.com/Devdeep8/let-s-do-it/tests/testutil"
)

func loadProgress(t *testing.T, tr *Tracker) model.RoadmapProgress {
	t.Helper()
	p, err := tr.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func TestSchemaShape(t *testing.T) {
	if len(Schema) != 4 {
		t.Fatalf("len(Schema) = %d, want 4", len(Schema))
	}
	seen := make(map[string]bool)
	for _, stage := range Schema {
		if len(stage.Leaves) != 3 {
			t.Errorf("stage %s has %d leaves, want 3", stage.ID, len(stage.Leaves))
		}
		for _, l := range stage.Leaves {
			if seen[l.Key] {
				t.Errorf("duplicate leaf key %s", l.Key)
			}
			seen[l.Key] = true
		}
	}
}

func TestLoadFreshProgress(t *testing.T) {
	tr := NewTracker(testutil.NewTestStore(t))
	p := loadProgress(t, tr)

	if p.OverallProgress != 0 {
		t.Errorf("OverallProgress = %v, want 0", p.OverallProgress)
	}
	for _, stage := range Schema {
		for _, l := range stage.Leaves {
			done, ok := p.Stages[stage.ID][l.Key]
			if !ok || done {
				t.Errorf("%s.%s = %v (present %v), want false", stage.ID, l.Key, done, ok)
			}
		}
	}
}

func TestThreeOfTwelveIsTwentyFivePercent(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(testutil.NewTestStore(t))
	p := loadProgress(t, tr)

	var err error
	for _, key := range []string{"fundamentals", "taskManagementAPI", "leetcodeProblems"} {
		p, err = tr.SetTaskState(ctx, p, "step1", key, true)
		if err != nil {
			t.Fatalf("SetTaskState(%s): %v", key, err)
		}
	}

	if p.OverallProgress != 25 {
		t.Errorf("OverallProgress = %v, want 25", p.OverallProgress)
	}
	if got := StageCompletion(p, "step1"); got != 100 {
		t.Errorf("StageCompletion(step1) = %v, want 100", got)
	}
	if got := StageCompletion(p, "step2"); got != 0 {
		t.Errorf("StageCompletion(step2) = %v, want 0", got)
	}

	reloaded := loadProgress(t, tr)
	if !reflect.DeepEqual(reloaded, p) {
		t.Errorf("reloaded = %+v, want %+v", reloaded, p)
	}
}

func TestToggleFlipsLeaf(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(testutil.NewTestStore(t))
	p := loadProgress(t, tr)

	p, err := tr.Toggle(ctx, p, "step3", "openSource")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !p.Stages["step3"]["openSource"] {
		t.Fatal("openSource not set after first toggle")
	}
	p, err = tr.Toggle(ctx, p, "step3", "openSource")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if p.Stages["step3"]["openSource"] {
		t.Error("openSource still set after second toggle")
	}
	if p.OverallProgress != 0 {
		t.Errorf("OverallProgress = %v, want 0", p.OverallProgress)
	}
}

func TestUnknownLeafIsIgnored(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	tr := NewTracker(s)
	p := loadProgress(t, tr)

	tests := []struct {
		name  string
		stage string
		key   string
	}{
		{"unknown stage", "step9", "fundamentals"},
		{"unknown key", "step1", "nope"},
		{"key from another stage", "step1", "networking"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.SetTaskState(ctx, p, tt.stage, tt.key, true)
			if err != nil {
				t.Fatalf("SetTaskState: %v", err)
			}
			if !reflect.DeepEqual(got, p) {
				t.Errorf("progress changed: %+v", got)
			}
		})
	}

	if _, ok, err := s.Get(ctx, StoreKey); err != nil || ok {
		t.Errorf("Get(%s) = ok %v err %v, want nothing written", StoreKey, ok, err)
	}
}

func TestSetTaskStateDoesNotMutateInput(t *testing.T) {
	tr := NewTracker(testutil.NewTestStore(t))
	p := loadProgress(t, tr)

	if _, err := tr.SetTaskState(context.Background(), p, "step2", "urlShortener", true); err != nil {
		t.Fatalf("SetTaskState: %v", err)
	}
	if p.Stages["step2"]["urlShortener"] {
		t.Error("input progress was mutated")
	}
}

func TestLoadNormalizesStoredProgress(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	stored := `{"step1":{"fundamentals":true,"legacy":true},"step7":{"x":true},"overallProgress":99}`
	if err := s.Set(ctx, StoreKey, stored); err != nil {
		t.Fatalf("Set: %v", err)
	}

	p := loadProgress(t, NewTracker(s))

	if _, ok := p.Stages["step7"]; ok {
		t.Error("unknown stage step7 kept")
	}
	if _, ok := p.Stages["step1"]["legacy"]; ok {
		t.Error("unknown leaf legacy kept")
	}
	if !p.Stages["step1"]["fundamentals"] {
		t.Error("fundamentals lost")
	}
	if _, ok := p.Stages["step4"]["networking"]; !ok {
		t.Error("missing leaf step4.networking not filled in")
	}
	want := 100.0 / 12
	if math.Abs(p.OverallProgress-want) > 1e-9 {
		t.Errorf("OverallProgress = %v, want %v", p.OverallProgress, want)
	}
}

func TestLoadUnreadableFallsBackToFresh(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	if err := s.Set(ctx, StoreKey, "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	p := loadProgress(t, NewTracker(s))
	if !reflect.DeepEqual(p, NewProgress()) {
		t.Errorf("Load = %+v, want fresh progress", p)
	}
}

func TestPersistedShape(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	tr := NewTracker(s)
	p := loadProgress(t, tr)
	if _, err := tr.SetTaskState(ctx, p, "step4", "portfolio", true); err != nil {
		t.Fatalf("SetTaskState: %v", err)
	}

	raw, ok, err := s.Get(ctx, StoreKey)
	if err != nil || !ok {
		t.Fatalf("Get = ok %v err %v", ok, err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("stored value is not an object: %v", err)
	}
	for _, k := range []string{"step1", "step2", "step3", "step4", "overallProgress"} {
		if _, ok := doc[k]; !ok {
			t.Errorf("stored value missing %q: %s", k, raw)
		}
	}
	var step4 map[string]bool
	if err := json.Unmarshal(doc["step4"], &step4); err != nil {
		t.Fatalf("step4: %v", err)
	}
	if !step4["portfolio"] {
		t.Errorf("step4.portfolio = false in %s", raw)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	tr := NewTracker(s)
	p := loadProgress(t, tr)
	if _, err := tr.SetTaskState(ctx, p, "step1", "fundamentals", true); err != nil {
		t.Fatalf("SetTaskState: %v", err)
	}

	p, err := tr.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if p.OverallProgress != 0 {
		t.Errorf("OverallProgress after reset = %v", p.OverallProgress)
	}
	if _, ok, _ := s.Get(ctx, StoreKey); ok {
		t.Error("progress still stored after reset")
	}
}

type failingStore struct {
	store.Store
}

var errReadOnly = errors.New("read-only")

func (failingStore) Set(context.Context, string, string) error { return errReadOnly }

func TestFailedWriteReturnsPreviousProgress(t *testing.T) {
	s := testutil.NewTestStore(t)
	tr := NewTracker(failingStore{Store: s})
	p := loadProgress(t, tr)

	got, err := tr.SetTaskState(context.Background(), p, "step1", "fundamentals", true)
	if !errors.Is(err, errReadOnly) {
		t.Fatalf("err = %v, want read-only", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("progress changed despite failed write: %+v", got)
	}
}
