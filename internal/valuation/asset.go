package valuation

import (
	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// AssetBased is net asset value plus declared intangible (IP) value
type AssetBased struct{}

func (AssetBased) ID() models.MethodID { return models.MethodAssetBased }

func (AssetBased) DependsOn() []string {
	return []string{"asset_value", "liabilities", "intangible_value"}
}

func (a AssetBased) Compute(p *models.BusinessProfile, _ *benchmarks.Snapshot) models.MethodResult {
	if p.AssetValue == nil {
		return unapplicable(a.ID(), p, "asset_value is required")
	}

	var liabilities, intangible int64
	if p.Liabilities != nil {
		liabilities = *p.Liabilities
	}
	if p.IntangibleValue != nil {
		intangible = *p.IntangibleValue
	}

	var t trail
	t.money("asset_value", *p.AssetValue)
	t.money("liabilities", liabilities)
	t.money("intangible_value", intangible)
	return applicable(a.ID(), p, money.Add(money.Sub(*p.AssetValue, liabilities), intangible), t)
}
