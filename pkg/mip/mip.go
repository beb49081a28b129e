// Package mip defines a minimal mixed-integer-programming capability:
// boolean and bounded-integer variables, linear constraints with lower and
// upper bounds, a linear objective, and a time-limited solve returning a
// status plus per-variable values. Any backend implementing Backend is
// substitutable; the wave solver never talks to a concrete engine
// directly.
package mip

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Status is the outcome of a solve, collapsed to the four cases the wave
// solver branches on. Timeouts without an incumbent, unbounded models and
// backend faults all surface as StatusOther.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusFeasible:
		return "Feasible"
	case StatusInfeasible:
		return "Infeasible"
	case StatusOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Var is an opaque handle to a model variable.
type Var int

type varDef struct {
	name    string
	lo, hi  float64
	boolean bool
}

// Term is one coefficient of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Constraint is a linear row lb <= sum(coef * var) <= ub. Equalities are
// encoded with lb == ub.
type Constraint struct {
	lb, ub float64
	coefs  map[Var]float64
}

// SetCoef sets the coefficient of v in the row, replacing any previous
// value.
func (c *Constraint) SetCoef(v Var, coef float64) {
	c.coefs[v] = coef
}

// Bounds returns the row's lower and upper bounds.
func (c *Constraint) Bounds() (lo, hi float64) { return c.lb, c.ub }

// Coef returns the coefficient of v, or 0 when v is absent from the row.
func (c *Constraint) Coef(v Var) float64 { return c.coefs[v] }

// Terms returns the row's non-zero terms in unspecified order.
func (c *Constraint) Terms() []Term {
	terms := make([]Term, 0, len(c.coefs))
	for v, coef := range c.coefs {
		if coef != 0 {
			terms = append(terms, Term{Var: v, Coef: coef})
		}
	}
	return terms
}

// Objective is the model's linear objective.
type Objective struct {
	coefs    map[Var]float64
	maximize bool
}

// SetCoef sets the objective coefficient of v.
func (o *Objective) SetCoef(v Var, coef float64) { o.coefs[v] = coef }

// SetMaximize marks the objective for maximization.
func (o *Objective) SetMaximize() { o.maximize = true }

// SetMinimize marks the objective for minimization.
func (o *Objective) SetMinimize() { o.maximize = false }

// IsMaximize reports the optimization direction.
func (o *Objective) IsMaximize() bool { return o.maximize }

// Coef returns the objective coefficient of v, or 0 when absent.
func (o *Objective) Coef(v Var) float64 { return o.coefs[v] }

// Terms returns the objective's non-zero terms in unspecified order.
func (o *Objective) Terms() []Term {
	terms := make([]Term, 0, len(o.coefs))
	for v, coef := range o.coefs {
		if coef != 0 {
			terms = append(terms, Term{Var: v, Coef: coef})
		}
	}
	return terms
}

// Model accumulates variables, constraints and the objective.
type Model struct {
	vars []varDef
	cons []*Constraint
	obj  Objective
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{obj: Objective{coefs: make(map[Var]float64)}}
}

// BoolVar adds a boolean (0/1) variable and returns its handle.
func (m *Model) BoolVar(name string) Var {
	m.vars = append(m.vars, varDef{name: name, lo: 0, hi: 1, boolean: true})
	return Var(len(m.vars) - 1)
}

// IntVar adds a bounded integer variable and returns its handle.
func (m *Model) IntVar(lo, hi float64, name string) Var {
	m.vars = append(m.vars, varDef{name: name, lo: lo, hi: hi})
	return Var(len(m.vars) - 1)
}

// Constraint adds a linear row with the given bounds. Use math.Inf for a
// one-sided row.
func (m *Model) Constraint(lb, ub float64) *Constraint {
	c := &Constraint{lb: lb, ub: ub, coefs: make(map[Var]float64)}
	m.cons = append(m.cons, c)
	return c
}

// Objective returns the model's objective for coefficient assignment.
func (m *Model) Objective() *Objective { return &m.obj }

// NumVars returns the number of variables added so far.
func (m *Model) NumVars() int { return len(m.vars) }

// VarName returns the name given to v.
func (m *Model) VarName(v Var) string { return m.vars[v].name }

// VarBounds returns v's domain bounds.
func (m *Model) VarBounds(v Var) (lo, hi float64) { return m.vars[v].lo, m.vars[v].hi }

// IsBool reports whether v was added as a boolean variable.
func (m *Model) IsBool(v Var) bool { return m.vars[v].boolean }

// Constraints returns the model's rows.
func (m *Model) Constraints() []*Constraint { return m.cons }

// Validate checks the model is solvable in principle: at least one
// variable, and finite, ordered domain bounds. Row bounds may be infinite
// on either side.
func (m *Model) Validate() error {
	if len(m.vars) == 0 {
		return fmt.Errorf("model has no variables")
	}
	for i, v := range m.vars {
		if math.IsInf(v.lo, 0) || math.IsInf(v.hi, 0) {
			return fmt.Errorf("variable %q (index %d) has an infinite bound", v.name, i)
		}
	}
	return nil
}

// Result carries a solve outcome: the status, the assigned value of every
// variable (indexed by Var) and the objective value. Values is only
// meaningful for StatusOptimal and StatusFeasible.
type Result struct {
	Status    Status
	Values    []float64
	Objective float64
}

// Value returns the assigned value of v, or 0 when out of range.
func (r *Result) Value(v Var) float64 {
	if int(v) < 0 || int(v) >= len(r.Values) {
		return 0
	}
	return r.Values[v]
}

// Backend solves models. Implementations must honor the time limit and the
// context, returning StatusFeasible with the incumbent when interrupted
// mid-search, or StatusOther when no usable assignment exists.
type Backend interface {
	Solve(ctx context.Context, m *Model, timeLimit time.Duration) (*Result, error)
}
