package solve

import (
	"context"
	"math"

	"github.com/foundrycad/waffle-iron/sketch"
)

// Local is a reference Solver: a damped Gauss-Newton iteration over a
// numeric Jacobian, which keeps the residual functions below simple and
// self-contained at the cost of some iterations compared to a hand-
// differentiated solver.
type Local struct {
	MaxIterations int
	Tolerance     float64
	Damping       float64
}

// NewLocal returns a Local solver with workable defaults.
func NewLocal() *Local {
	return &Local{MaxIterations: 200, Tolerance: 1e-9, Damping: 1e-3}
}

type variable struct {
	entity sketch.EntityID
	kind   varKind // varX, varY, varRadius
}

type varKind int

const (
	varX varKind = iota
	varY
	varRadius
)

func (l *Local) Solve(ctx context.Context, entities []sketch.Entity, constraints []sketch.Constraint, hints Hints) (Outcome, error) {
	vars, index := buildVariables(entities)
	params := buildInitialParams(entities, vars, hints)

	if len(vars) == 0 {
		return Outcome{Status: Ok, Positions: map[sketch.EntityID]sketch.Vec2{}, DOF: 0}, nil
	}
	if len(constraints) > len(vars) {
		return Outcome{Status: TooManyUnknowns}, nil
	}

	lines := buildLineTable(entities)
	circles := buildCircleTable(entities)
	residualFns := make([]func([]float64) float64, 0, 2*len(constraints))
	owners := make([]sketch.Constraint, 0, 2*len(constraints))
	for _, c := range constraints {
		fns := residualsFor(c, index, lines, circles)
		for range fns {
			owners = append(owners, c)
		}
		residualFns = append(residualFns, fns...)
	}

	maxIter := l.MaxIterations
	if maxIter <= 0 {
		maxIter = 200
	}
	tol := l.Tolerance
	if tol <= 0 {
		tol = 1e-9
	}
	damping := l.Damping
	if damping <= 0 {
		damping = 1e-3
	}

	converged := false
	for iter := 0; iter < maxIter; iter++ {
		res := evaluate(residualFns, params)
		if normSquared(res) < tol {
			converged = true
			break
		}

		jac := numericJacobian(residualFns, params)
		delta, ok := solveDampedNormalEquations(jac, res, damping)
		if !ok {
			return Outcome{Status: Inconsistent}, nil
		}
		for i := range params {
			params[i] -= delta[i]
		}
	}

	if !converged {
		res := evaluate(residualFns, params)
		if normSquared(res) >= tol*1000 {
			failed := failingConstraints(residualFns, owners, params)
			if len(failed) > 0 {
				return Outcome{Status: Inconsistent, Failed: failed}, nil
			}
			return Outcome{Status: DidNotConverge}, nil
		}
	}

	positions := positionsFromParams(entities, vars, params)
	dof := len(vars) - len(residualFns)
	return Outcome{Status: Ok, Positions: positions, DOF: dof}, nil
}

func buildVariables(entities []sketch.Entity) ([]variable, map[sketch.EntityID][2]int) {
	var vars []variable
	index := make(map[sketch.EntityID][2]int)
	for _, e := range entities {
		switch v := e.(type) {
		case sketch.Point:
			index[v.PointID] = [2]int{len(vars), -1}
			vars = append(vars, variable{entity: v.PointID, kind: varX})
			index[v.PointID] = [2]int{index[v.PointID][0], len(vars)}
			vars = append(vars, variable{entity: v.PointID, kind: varY})
		}
	}
	for _, e := range entities {
		if c, ok := e.(sketch.Circle); ok {
			idx := len(vars)
			vars = append(vars, variable{entity: c.CircleID, kind: varRadius})
			entry := index[c.CircleID]
			entry[0] = idx
			index[c.CircleID] = entry
		}
	}
	return vars, index
}

func buildInitialParams(entities []sketch.Entity, vars []variable, hints Hints) []float64 {
	byID := make(map[sketch.EntityID]sketch.Entity, len(entities))
	for _, e := range entities {
		byID[e.ID()] = e
	}

	params := make([]float64, len(vars))
	for i, v := range vars {
		switch v.kind {
		case varX:
			if h, ok := hints[v.entity]; ok {
				params[i] = h.X
			} else if p, ok := byID[v.entity].(sketch.Point); ok {
				params[i] = p.X
			}
		case varY:
			if h, ok := hints[v.entity]; ok {
				params[i] = h.Y
			} else if p, ok := byID[v.entity].(sketch.Point); ok {
				params[i] = p.Y
			}
		case varRadius:
			if c, ok := byID[v.entity].(sketch.Circle); ok {
				params[i] = c.Radius
			}
		}
	}
	return params
}

func positionsFromParams(entities []sketch.Entity, vars []variable, params []float64) map[sketch.EntityID]sketch.Vec2 {
	pos := make(map[sketch.EntityID]sketch.Vec2)
	for _, e := range entities {
		p, ok := e.(sketch.Point)
		if !ok {
			continue
		}
		pos[p.PointID] = sketch.Vec2{}
	}
	for i, v := range vars {
		if v.kind == varX {
			cur := pos[v.entity]
			cur.X = params[i]
			pos[v.entity] = cur
		}
		if v.kind == varY {
			cur := pos[v.entity]
			cur.Y = params[i]
			pos[v.entity] = cur
		}
	}
	return pos
}

func evaluate(fns []func([]float64) float64, params []float64) []float64 {
	out := make([]float64, len(fns))
	for i, f := range fns {
		out[i] = f(params)
	}
	return out
}

func normSquared(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return sum
}

func numericJacobian(fns []func([]float64) float64, params []float64) [][]float64 {
	const h = 1e-6
	jac := make([][]float64, len(fns))
	base := evaluate(fns, params)
	for i := range jac {
		jac[i] = make([]float64, len(params))
	}
	perturbed := make([]float64, len(params))
	copy(perturbed, params)
	for j := range params {
		perturbed[j] += h
		stepped := evaluate(fns, perturbed)
		for i := range fns {
			jac[i][j] = (stepped[i] - base[i]) / h
		}
		perturbed[j] = params[j]
	}
	return jac
}

// solveDampedNormalEquations solves (J^T J + damping*I) delta = J^T r via
// naive Gaussian elimination; ok is false if the system is singular.
func solveDampedNormalEquations(jac [][]float64, res []float64, damping float64) ([]float64, bool) {
	n := 0
	if len(jac) > 0 {
		n = len(jac[0])
	}
	jtj := make([][]float64, n)
	jtr := make([]float64, n)
	for i := 0; i < n; i++ {
		jtj[i] = make([]float64, n)
		for k := range jac {
			jtr[i] += jac[k][i] * res[k]
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := range jac {
				sum += jac[k][i] * jac[k][j]
			}
			jtj[i][j] = sum
		}
		jtj[i][i] += damping
	}
	return gaussianSolve(jtj, jtr)
}

func gaussianSolve(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = append(append([]float64{}, a[i]...), b[i])
	}
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		if math.Abs(aug[col][col]) < 1e-15 {
			return nil, false
		}
		for r := col + 1; r < n; r++ {
			factor := aug[r][col] / aug[col][col]
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * x[j]
		}
		x[i] = sum / aug[i][i]
	}
	return x, true
}

func failingConstraints(fns []func([]float64) float64, owners []sketch.Constraint, params []float64) []sketch.Constraint {
	res := evaluate(fns, params)
	seen := make(map[sketch.Constraint]bool)
	var out []sketch.Constraint
	for i, r := range res {
		if math.Abs(r) > 1e-3 && !seen[owners[i]] {
			seen[owners[i]] = true
			out = append(out, owners[i])
		}
	}
	return out
}
