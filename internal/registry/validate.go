package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/ctxlog"
)

// ValidateModel checks that every library, axiom and heuristic the model
// refers to has been registered. All problems are reported at once.
func (r *Registry) ValidateModel(ctx context.Context, m *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, name := range m.Libraries {
		if _, ok := r.libraries[name]; !ok {
			errs = append(errs, fmt.Sprintf("unknown library '%s' (available: %s)", name, strings.Join(r.Libraries(), ", ")))
		}
	}
	for _, a := range m.Axioms {
		if _, ok := r.axioms[a.Kind]; !ok {
			errs = append(errs, fmt.Sprintf("unknown axiom '%s' (available: %s)", a.Kind, strings.Join(r.Axioms(), ", ")))
		}
	}
	for _, h := range m.Heuristics {
		if _, ok := r.heuristics[h.Kind]; !ok {
			errs = append(errs, fmt.Sprintf("unknown heuristic '%s' (available: %s)", h.Kind, strings.Join(r.Heuristics(), ", ")))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("model validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Model validated against registry.")
	return nil
}
