package sqlast

import "github.com/jacobbishopxy/fabrix/ferror"

// FilterBuilder assembles an Expression sequence under the legal grammar
// from spec §4.4:
//
//	Init          -> Simple | Nest | Opposition
//	Simple | Nest -> Conjunction | end
//	Conjunction   -> Simple | Nest | Opposition
//	Opposition    -> Simple | Nest
//
// i.e. two conditions (or nests) in a row must be joined by And/Or, and a
// bare Not must be immediately followed by the condition it negates. Any
// other ordering returns ferror.InvalidArgumentError at the offending call,
// rather than deferring to a build-time validation pass.
type FilterBuilder struct {
	exprs []Expression
	state builderState
	err   error
}

type builderState uint8

const (
	stateInit builderState = iota
	stateTerm // last pushed a Simple or Nest
	stateConj // last pushed a Conjunction
	stateOpp  // last pushed an Opposition
)

// NewFilterBuilder starts a new filter expression.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{state: stateInit}
}

// Where appends a leaf Condition.
func (b *FilterBuilder) Where(c Condition) *FilterBuilder {
	return b.pushTerm(Simple(c))
}

// Group appends a parenthesized sub-expression, built by fn on a fresh
// FilterBuilder.
func (b *FilterBuilder) Group(fn func(*FilterBuilder)) *FilterBuilder {
	inner := NewFilterBuilder()
	fn(inner)
	expr, err := inner.Build()
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	return b.pushTerm(Nest(expr.Nested()...))
}

func (b *FilterBuilder) pushTerm(e Expression) *FilterBuilder {
	if b.err != nil {
		return b
	}
	switch b.state {
	case stateInit, stateConj, stateOpp:
		b.exprs = append(b.exprs, e)
		b.state = stateTerm
	default:
		b.err = ferror.NewInvalidArgument("filter expression: expected a conjunction or opposition before a new condition")
	}
	return b
}

// And joins the next condition with AND.
func (b *FilterBuilder) And() *FilterBuilder { return b.pushConjunction(ConjunctionExpr(And)) }

// Or joins the next condition with OR.
func (b *FilterBuilder) Or() *FilterBuilder { return b.pushConjunction(ConjunctionExpr(Or)) }

func (b *FilterBuilder) pushConjunction(e Expression) *FilterBuilder {
	if b.err != nil {
		return b
	}
	if b.state != stateTerm {
		b.err = ferror.NewInvalidArgument("filter expression: conjunction must follow a condition or group")
		return b
	}
	b.exprs = append(b.exprs, e)
	b.state = stateConj
	return b
}

// Not negates the following condition or group.
func (b *FilterBuilder) Not() *FilterBuilder {
	if b.err != nil {
		return b
	}
	switch b.state {
	case stateInit, stateConj:
		b.exprs = append(b.exprs, Opposition())
		b.state = stateOpp
	default:
		b.err = ferror.NewInvalidArgument("filter expression: Not must start a clause or follow a conjunction")
	}
	return b
}

// Build finalizes the expression sequence, validating it ends on a term
// (not dangling on a Conjunction or Opposition).
func (b *FilterBuilder) Build() (Expression, error) {
	if b.err != nil {
		return Expression{}, b.err
	}
	if b.state != stateTerm {
		return Expression{}, ferror.NewInvalidArgument("filter expression: incomplete, must end on a condition or group")
	}
	return Nest(b.exprs...), nil
}
