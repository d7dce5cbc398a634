package benchmarks

import "github.com/camayank/startupvaluator/internal/models"

// StageProfile carries the venture-return conventions for a funding stage.
// TypicalRaise is USD minor units; MarketCapture is the share of the
// addressable market a company at this stage is assumed to reach by exit;
// zero means market size alone is no exit basis (ideation).
// ScorecardScale adjusts a benchmark average pre-money valuation (quoted for
// seed rounds) to the stage.
type StageProfile struct {
	Stage          models.Stage
	TargetROI      float64
	YearsToExit    int
	TypicalRaise   int64
	MarketCapture  float64
	ScorecardScale float64
}

var stageProfiles = map[models.Stage]StageProfile{
	models.StageIdeation: {Stage: models.StageIdeation, TargetROI: 30, YearsToExit: 8, TypicalRaise: 25_000_000, MarketCapture: 0, ScorecardScale: 0.25},
	models.StagePreSeed:  {Stage: models.StagePreSeed, TargetROI: 20, YearsToExit: 7, TypicalRaise: 75_000_000, MarketCapture: 0.01, ScorecardScale: 0.5},
	models.StageSeed:     {Stage: models.StageSeed, TargetROI: 10, YearsToExit: 6, TypicalRaise: 250_000_000, MarketCapture: 0.02, ScorecardScale: 1},
	models.StageSeriesA:  {Stage: models.StageSeriesA, TargetROI: 6, YearsToExit: 5, TypicalRaise: 1_000_000_000, MarketCapture: 0.03, ScorecardScale: 2.5},
	models.StageGrowth:   {Stage: models.StageGrowth, TargetROI: 3, YearsToExit: 4, TypicalRaise: 3_000_000_000, MarketCapture: 0.05, ScorecardScale: 6},
}

// ForStage returns the stage profile, false for unknown stages
func ForStage(stage models.Stage) (StageProfile, bool) {
	p, ok := stageProfiles[stage]
	return p, ok
}
