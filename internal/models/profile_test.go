package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProfileCheck(t *testing.T) {
	tests := []struct {
		name    string
		profile BusinessProfile
		wantErr bool
	}{
		{"empty profile", BusinessProfile{}, false},
		{"valid enums", BusinessProfile{Stage: StageSeed, Currency: "EUR", IPStatus: IPGranted, ProductStage: ProductBeta}, false},
		{"unknown stage", BusinessProfile{Stage: "series_z"}, true},
		{"bad currency", BusinessProfile{Currency: "DOLLARS"}, true},
		{"unknown ip status", BusinessProfile{IPStatus: "licensed"}, true},
		{"unknown regulatory status", BusinessProfile{RegulatoryStatus: "maybe"}, true},
		{"unknown product stage", BusinessProfile{ProductStage: "shipping"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Check()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedProfile) {
				t.Errorf("expected ErrMalformedProfile, got %v", err)
			}
		})
	}
}

func TestProfileCloneIsDeep(t *testing.T) {
	orig := BusinessProfile{
		Sector:    "technology",
		Revenue:   Int64(100),
		Scenarios: []ScenarioProjection{{Name: "base", Probability: 1, Multiple: Float(3)}},
		SAFEs:     []SAFEInstrument{{Investment: 10, ValuationCap: Int64(1000)}},
	}
	c := orig.Clone()
	if diff := cmp.Diff(orig, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	*c.Revenue = 200
	*c.Scenarios[0].Multiple = 9
	*c.SAFEs[0].ValuationCap = 1
	if *orig.Revenue != 100 || *orig.Scenarios[0].Multiple != 3 || *orig.SAFEs[0].ValuationCap != 1000 {
		t.Error("mutating the clone changed the original")
	}
}

func TestProfileWithLeavesReceiverUntouched(t *testing.T) {
	orig := BusinessProfile{Stage: StageIdeation}
	next := orig.With(func(p *BusinessProfile) {
		p.Stage = StageSeed
		p.TeamSize = Int(4)
	})
	if orig.Stage != StageIdeation || orig.TeamSize != nil {
		t.Errorf("receiver modified: %+v", orig)
	}
	if next.Stage != StageSeed || *next.TeamSize != 4 {
		t.Errorf("update not applied: %+v", next)
	}
}

func TestStageOrder(t *testing.T) {
	stages := Stages()
	for i := 1; i < len(stages); i++ {
		if stages[i-1].Rank() >= stages[i].Rank() {
			t.Errorf("%s should rank before %s", stages[i-1], stages[i])
		}
	}
	if Stage("unknown").Rank() != -1 {
		t.Error("unknown stage should rank -1")
	}
}

func TestFlexibleDate(t *testing.T) {
	var req ValuationRequest
	if err := json.Unmarshal([]byte(`{"profile":{},"as_of":"2024-03-31T15:04:05Z"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := req.AsOf.Format("2006-01-02"); got != "2024-03-31" {
		t.Errorf("expected 2024-03-31, got %s", got)
	}
	out, err := json.Marshal(req.AsOf)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2024-03-31"` {
		t.Errorf("expected plain date, got %s", out)
	}

	if err := json.Unmarshal([]byte(`{"profile":{},"as_of":"31/03/2024"}`), &req); err == nil {
		t.Error("expected an error for an unsupported date format")
	}
}
