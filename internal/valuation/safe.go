package valuation

import (
	"fmt"
	"math"

	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// ConvertSAFEs computes the dilution outstanding SAFEs produce when they
// convert against preMoney. Each SAFE converts at the lower of its cap and the
// discounted valuation; ownership is shares issued over fully-diluted shares.
// The conversion is nil when the result is not applicable.
func ConvertSAFEs(p *models.BusinessProfile, preMoney int64) (models.MethodResult, *models.SAFEConversion) {
	id := models.MethodSAFEConversion
	if len(p.SAFEs) == 0 {
		return unapplicable(id, p, "no outstanding SAFE instruments"), nil
	}
	if preMoney <= 0 {
		return unapplicable(id, p, "no valuation to convert against"), nil
	}

	conv := &models.SAFEConversion{PreMoneyValuation: preMoney}
	var t trail
	t.money("pre_money_valuation", preMoney)

	// shares issued per existing share, summed across SAFEs
	var issued float64
	ratios := make([]float64, len(p.SAFEs))
	for i, s := range p.SAFEs {
		if s.Investment <= 0 {
			return unapplicablef(id, p, "SAFE %d has no investment amount", i+1), nil
		}
		valuation, basis := conversionValuation(s, preMoney)
		if valuation <= 0 {
			return unapplicablef(id, p, "SAFE %d converts at a non-positive valuation", i+1), nil
		}
		ratios[i] = money.Ratio(s.Investment, valuation)
		issued += ratios[i]
		conv.Lines = append(conv.Lines, models.SAFEConversionLine{
			Index:               i + 1,
			Investment:          s.Investment,
			ConversionValuation: valuation,
			Basis:               basis,
		})
	}

	fullyDiluted := 1 + issued
	for i := range conv.Lines {
		own := round6(ratios[i] / fullyDiluted)
		conv.Lines[i].Ownership = own
		prefix := fmt.Sprintf("safe_%d.", i+1)
		t.money(prefix+"investment", conv.Lines[i].Investment)
		t.money(prefix+"conversion_valuation", conv.Lines[i].ConversionValuation)
		t.add(prefix+"basis", conv.Lines[i].Basis)
		t.num(prefix+"ownership", own)
	}
	conv.TotalOwnership = round6(issued / fullyDiluted)
	conv.ExistingRetained = round6(1 / fullyDiluted)
	t.num("total_safe_ownership", conv.TotalOwnership)
	t.num("existing_retained", conv.ExistingRetained)

	return applicable(id, p, preMoney, t), conv
}

func conversionValuation(s models.SAFEInstrument, preMoney int64) (int64, string) {
	valuation, basis := preMoney, "valuation"
	if s.Discount != nil && *s.Discount > 0 {
		if d := money.Scale(preMoney, 1-*s.Discount); d < valuation {
			valuation, basis = d, "discount"
		}
	}
	if s.ValuationCap != nil && *s.ValuationCap > 0 && *s.ValuationCap < valuation {
		valuation, basis = *s.ValuationCap, "cap"
	}
	return valuation, basis
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
