package valuation

import (
	"github.com/camayank/startupvaluator/internal/models"
)

// Registry is the fixed, ordered set of standalone methods
type Registry struct {
	methods []Method
}

// NewRegistry creates a registry; result order follows argument order
func NewRegistry(methods ...Method) *Registry {
	return &Registry{methods: methods}
}

// DefaultRegistry registers every standalone method. safe_conversion is a
// post-processing step and is applied by ConvertSAFEs instead.
func DefaultRegistry() *Registry {
	return NewRegistry(
		DCF{},
		Comparables{},
		Scorecard{},
		Berkus{},
		VCMethod{},
		FirstChicago{},
		AssetBased{},
	)
}

// Methods returns the registered methods in order
func (r *Registry) Methods() []Method {
	out := make([]Method, len(r.methods))
	copy(out, r.methods)
	return out
}

// IDs returns the registered method ids in order
func (r *Registry) IDs() []models.MethodID {
	out := make([]models.MethodID, len(r.methods))
	for i, m := range r.methods {
		out[i] = m.ID()
	}
	return out
}
