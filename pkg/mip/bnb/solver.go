// Package bnb provides a pure-Go branch-and-bound backend for the mip
// capability. It searches depth-first over the boolean variables, runs
// interval propagation over every linear row to a fixed point, and prunes
// with an optimistic objective bound. Bounded integer variables are
// branched by domain bisection, but in practice the models built by the
// wave solver pin them through zero-bound equality rows, so propagation
// fixes them as soon as the booleans are decided.
package bnb

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/vroliveira/wavepick/pkg/mip"
)

const eps = 1e-6

// Config tunes the search.
type Config struct {
	// MaxNodes caps the number of explored nodes; the search stops with
	// the incumbent (if any) once exceeded. Zero means unlimited.
	MaxNodes int
}

// Solver is a branch-and-bound mip.Backend.
type Solver struct {
	config Config
}

// New creates a solver with default configuration.
func New() *Solver {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a solver with custom configuration.
func NewWithConfig(config Config) *Solver {
	return &Solver{config: config}
}

type row struct {
	lb, ub float64
	terms  []mip.Term
}

type search struct {
	rows     []row
	objCoefs []float64 // normalized to maximization
	boolVars []int
	intVars  []int

	deadline time.Time
	maxNodes int
	ctx      context.Context

	nodes    int
	stopped  bool
	hasBest  bool
	bestObj  float64
	bestLo   []int64
}

// Solve runs the search. A non-positive time limit means the budget is
// already exhausted and yields StatusOther immediately.
func (s *Solver) Solve(ctx context.Context, m *mip.Model, timeLimit time.Duration) (*mip.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if timeLimit <= 0 {
		return &mip.Result{Status: mip.StatusOther}, nil
	}

	n := m.NumVars()
	lo := make([]int64, n)
	hi := make([]int64, n)
	for i := 0; i < n; i++ {
		vlo, vhi := m.VarBounds(mip.Var(i))
		lo[i] = int64(math.Ceil(vlo - eps))
		hi[i] = int64(math.Floor(vhi + eps))
		if lo[i] > hi[i] {
			return &mip.Result{Status: mip.StatusInfeasible}, nil
		}
	}

	sr := &search{
		rows:     normalizeRows(m),
		objCoefs: normalizeObjective(m),
		deadline: time.Now().Add(timeLimit),
		maxNodes: s.config.MaxNodes,
		ctx:      ctx,
	}
	for i := 0; i < n; i++ {
		if m.IsBool(mip.Var(i)) {
			sr.boolVars = append(sr.boolVars, i)
		} else {
			sr.intVars = append(sr.intVars, i)
		}
	}

	sr.explore(lo, hi)

	status := mip.StatusInfeasible
	switch {
	case sr.stopped && sr.hasBest:
		status = mip.StatusFeasible
	case sr.stopped:
		status = mip.StatusOther
	case sr.hasBest:
		status = mip.StatusOptimal
	}

	res := &mip.Result{Status: status}
	if sr.hasBest {
		res.Values = make([]float64, n)
		for i, v := range sr.bestLo {
			res.Values[i] = float64(v)
		}
		res.Objective = sr.bestObj
		if !m.Objective().IsMaximize() {
			res.Objective = -sr.bestObj
		}
	}
	return res, nil
}

// normalizeRows snapshots the model's rows with deterministically ordered
// terms.
func normalizeRows(m *mip.Model) []row {
	rows := make([]row, 0, len(m.Constraints()))
	for _, c := range m.Constraints() {
		lb, ub := c.Bounds()
		terms := c.Terms()
		sort.Slice(terms, func(i, j int) bool { return terms[i].Var < terms[j].Var })
		rows = append(rows, row{lb: lb, ub: ub, terms: terms})
	}
	return rows
}

// normalizeObjective returns per-variable objective coefficients, negated
// for minimization so the search always maximizes.
func normalizeObjective(m *mip.Model) []float64 {
	coefs := make([]float64, m.NumVars())
	sign := 1.0
	if !m.Objective().IsMaximize() {
		sign = -1.0
	}
	for _, t := range m.Objective().Terms() {
		coefs[t.Var] = sign * t.Coef
	}
	return coefs
}

func (sr *search) explore(lo, hi []int64) {
	if sr.stopped {
		return
	}
	sr.nodes++
	if sr.maxNodes > 0 && sr.nodes > sr.maxNodes {
		sr.stopped = true
		return
	}
	if sr.nodes%64 == 0 && (time.Now().After(sr.deadline) || sr.ctx.Err() != nil) {
		sr.stopped = true
		return
	}

	if !sr.propagate(lo, hi) {
		return
	}
	if sr.hasBest && sr.upperBound(lo, hi) <= sr.bestObj+eps {
		return
	}

	branch := sr.pickBranchVar(lo, hi)
	if branch < 0 {
		obj := 0.0
		for i, c := range sr.objCoefs {
			obj += c * float64(lo[i])
		}
		if !sr.hasBest || obj > sr.bestObj+eps {
			sr.hasBest = true
			sr.bestObj = obj
			sr.bestLo = append([]int64(nil), lo...)
		}
		return
	}

	loA, hiA := cloneBounds(lo, hi)
	loB, hiB := cloneBounds(lo, hi)
	mid := lo[branch] + (hi[branch]-lo[branch])/2
	hiA[branch] = mid
	loB[branch] = mid + 1

	// Explore the objective-preferred half first.
	if sr.objCoefs[branch] > 0 {
		sr.explore(loB, hiB)
		sr.explore(loA, hiA)
	} else {
		sr.explore(loA, hiA)
		sr.explore(loB, hiB)
	}
}

// pickBranchVar returns the first undecided boolean, then the first
// undecided integer, or -1 when the assignment is complete.
func (sr *search) pickBranchVar(lo, hi []int64) int {
	for _, i := range sr.boolVars {
		if lo[i] < hi[i] {
			return i
		}
	}
	for _, i := range sr.intVars {
		if lo[i] < hi[i] {
			return i
		}
	}
	return -1
}

// upperBound is the optimistic objective value reachable within the
// current domains.
func (sr *search) upperBound(lo, hi []int64) float64 {
	bound := 0.0
	for i, c := range sr.objCoefs {
		if c > 0 {
			bound += c * float64(hi[i])
		} else {
			bound += c * float64(lo[i])
		}
	}
	return bound
}

// propagate tightens variable domains against every row until a fixed
// point, returning false on a proven empty domain or violated row.
func (sr *search) propagate(lo, hi []int64) bool {
	for changed := true; changed; {
		changed = false
		for _, r := range sr.rows {
			sumMin, sumMax := 0.0, 0.0
			for _, t := range r.terms {
				tmin, tmax := termRange(t.Coef, lo[t.Var], hi[t.Var])
				sumMin += tmin
				sumMax += tmax
			}
			if sumMin > r.ub+eps || sumMax < r.lb-eps {
				return false
			}

			for _, t := range r.terms {
				i := t.Var
				if lo[i] == hi[i] {
					continue
				}
				tmin, tmax := termRange(t.Coef, lo[i], hi[i])
				restMin := sumMin - tmin
				restMax := sumMax - tmax

				// Only a finite row side can tighten a domain side.
				if finiteFrom(t.Coef, r, true) {
					var newHi int64
					if t.Coef > 0 {
						newHi = int64(math.Floor((r.ub-restMin)/t.Coef + eps))
					} else {
						newHi = int64(math.Floor((r.lb-restMax)/t.Coef + eps))
					}
					if newHi < hi[i] {
						hi[i] = newHi
						changed = true
					}
				}
				if finiteFrom(t.Coef, r, false) {
					var newLo int64
					if t.Coef > 0 {
						newLo = int64(math.Ceil((r.lb-restMax)/t.Coef - eps))
					} else {
						newLo = int64(math.Ceil((r.ub-restMin)/t.Coef - eps))
					}
					if newLo > lo[i] {
						lo[i] = newLo
						changed = true
					}
				}
				if lo[i] > hi[i] {
					return false
				}
			}
		}
	}
	return true
}

// finiteFrom reports whether the row side that produced the candidate
// bound is finite; tightening from an infinite side is meaningless.
func finiteFrom(coef float64, r row, upper bool) bool {
	if coef > 0 {
		if upper {
			return !math.IsInf(r.ub, 1)
		}
		return !math.IsInf(r.lb, -1)
	}
	if upper {
		return !math.IsInf(r.lb, -1)
	}
	return !math.IsInf(r.ub, 1)
}

func termRange(coef float64, lo, hi int64) (tmin, tmax float64) {
	a, b := coef*float64(lo), coef*float64(hi)
	if a <= b {
		return a, b
	}
	return b, a
}

func cloneBounds(lo, hi []int64) ([]int64, []int64) {
	return append([]int64(nil), lo...), append([]int64(nil), hi...)
}
