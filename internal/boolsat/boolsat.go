// Package boolsat is the thin seam between this module's constraint encoder
// and a real boolean-satisfiability backend. The source system this spec was
// distilled from leans on z3's Bool/Sum/If boolean API; no example repository
// in this codebase's lineage depends on an SMT/SAT library (the corpus is
// infra/CLI/issue-tracker code), so this package adopts
// github.com/crillab/gophersat, a published pure-Go SAT solver, as the
// closest ecosystem equivalent (see DESIGN.md).
//
// Everything above this package works in terms of Var/Literal/Clause/CNF, a
// standard DIMACS-shaped encoding, so swapping the backend later only touches
// this one file.
package boolsat

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
)

// Var is a 1-based boolean variable index, matching DIMACS CNF convention.
type Var int

// Literal is a variable (positive) or its negation (negative). Literal 0 is
// never valid.
type Literal int

// Lit returns the positive literal for v.
func Lit(v Var) Literal { return Literal(v) }

// Not returns the negated literal for v.
func Not(v Var) Literal { return Literal(-v) }

// NegateLiteral flips the sign of an already-built literal, used when
// blocking a model (the search loop negates the literals that were true).
func NegateLiteral(l Literal) Literal { return -l }

// Clause is a disjunction of literals.
type Clause []Literal

// CNF is a conjunction of clauses over a declared number of variables.
type CNF struct {
	NumVars int
	Clauses []Clause
}

// AddClause appends a clause to the problem.
func (c *CNF) AddClause(lits ...Literal) {
	c.Clauses = append(c.Clauses, Clause(lits))
}

// Model is a satisfying assignment: Model[v] is the truth value of variable
// v (1-based; index 0 is unused).
type Model []bool

// Value reports the truth value gophersat assigned to v.
func (m Model) Value(v Var) bool {
	if int(v) <= 0 || int(v) >= len(m) {
		return false
	}
	return m[v]
}

// Solve asks the backend for one satisfying assignment of cnf. ok is false
// if the problem is unsatisfiable.
func Solve(cnf CNF) (model Model, ok bool, err error) {
	raw := make([][]int, 0, len(cnf.Clauses))
	for _, clause := range cnf.Clauses {
		lits := make([]int, len(clause))
		for i, l := range clause {
			if l == 0 {
				return nil, false, fmt.Errorf("boolsat: literal 0 is not valid")
			}
			lits[i] = int(l)
		}
		raw = append(raw, lits)
	}

	pb := solver.ParseSlice(raw)
	s := solver.New(pb)
	status := s.Solve()
	switch status {
	case solver.Sat:
		rawModel := s.Model()
		m := make(Model, cnf.NumVars+1)
		for i, v := range rawModel {
			m[i+1] = v
		}
		return m, true, nil
	case solver.Unsat:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("boolsat: solver returned inconclusive status")
	}
}
