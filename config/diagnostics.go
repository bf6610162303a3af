package config

import (
	"github.com/Knetic/govaluate"

	"github.com/microhh-go/landsurface/surferr"
)

// DomainGuard evaluates a user-configured govaluate expression against a
// named set of surface-field values, following io.go's
// govaluate.NewEvaluableExpressionWithFunctions pattern. A guard lets an
// operator flag a DomainViolation earlier than the bare NaN/Inf check, e.g.
// "ustar < 0 || wl > wl_max".
type DomainGuard struct {
	expr *govaluate.EvaluableExpression
}

// NewDomainGuard compiles expr; an empty string disables the guard (Check
// always passes).
func NewDomainGuard(expr string) (*DomainGuard, error) {
	if expr == "" {
		return &DomainGuard{}, nil
	}
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, surferr.New(surferr.ConfigInvalid, "config.NewDomainGuard", err)
	}
	return &DomainGuard{expr: e}, nil
}

// Check evaluates the guard against the given named values and returns a
// DomainViolation if it evaluates truthy.
func (g *DomainGuard) Check(values map[string]interface{}) error {
	if g.expr == nil {
		return nil
	}
	result, err := g.expr.Evaluate(values)
	if err != nil {
		return surferr.New(surferr.ConfigInvalid, "config.DomainGuard.Check", err)
	}
	if tripped, ok := result.(bool); ok && tripped {
		return surferr.New(surferr.DomainViolation, "config.DomainGuard.Check", nil)
	}
	return nil
}
