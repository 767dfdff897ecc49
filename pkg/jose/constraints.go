// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-jwks.
//
// go-jwks is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package jose

import (
	"sort"
	"strings"
)

// Constrainable is the capability surface a key (or key set entry) exposes
// for matching. The engine only ever looks at these declared attributes,
// never at key material.
//
// Optional facets report their zero value when undeclared: an empty Alg
// means the candidate has no single fixed algorithm, an empty KID means no
// key id, an empty Use means no declared usage. KTY is mandatory on every
// candidate.
type Constrainable interface {
	// Alg returns the single fixed algorithm declared by the candidate,
	// or "" if none is declared.
	Alg() SignatureAlgorithm

	// Algs returns the algorithms the candidate may be used with. Only
	// consulted when Alg returns "".
	Algs() []SignatureAlgorithm

	// KID returns the key id, or "" if none is declared.
	KID() string

	// Use returns the declared usage, or "" if none is declared.
	Use() KeyUse

	// KTY returns the key type. Always declared.
	KTY() KeyType
}

// Unconstrained provides the optional Constrainable facets with their
// undeclared defaults. Concrete candidate types embed it and override
// only what they actually declare.
type Unconstrained struct{}

// Alg returns "" (no fixed algorithm declared).
func (Unconstrained) Alg() SignatureAlgorithm { return "" }

// Algs returns nil (no algorithm list declared).
func (Unconstrained) Algs() []SignatureAlgorithm { return nil }

// KID returns "" (no key id declared).
func (Unconstrained) KID() string { return "" }

// Use returns "" (no usage declared).
func (Unconstrained) Use() KeyUse { return "" }

// ConstraintDecision is the ternary outcome of evaluating one constraint
// against one candidate.
type ConstraintDecision int

const (
	// DecisionNeutral means the constraint neither matches nor excludes
	// the candidate. Contributes nothing to the specificity score.
	DecisionNeutral ConstraintDecision = iota

	// DecisionPositive means the candidate explicitly satisfies the
	// constraint. Counts towards the specificity score.
	DecisionPositive

	// DecisionNegative means the candidate is excluded outright,
	// regardless of any other constraint.
	DecisionNegative
)

// String returns the decision name.
func (d ConstraintDecision) String() string {
	switch d {
	case DecisionPositive:
		return "positive"
	case DecisionNegative:
		return "negative"
	default:
		return "neutral"
	}
}

type constraintKind int

const (
	kindAlg constraintKind = iota
	kindAlgs
	kindKID
	kindUse
	kindKTY
)

// Constraint is a single declarative requirement on a candidate: an exact
// algorithm, an algorithm allowlist, an exact key id, an exact usage or an
// exact key type. Constraints are compared by value.
type Constraint struct {
	kind constraintKind
	alg  SignatureAlgorithm
	algs []SignatureAlgorithm
	kid  string
	use  KeyUse
	kty  KeyType
}

// ConstraintAlg requires an exact signature algorithm.
func ConstraintAlg(alg SignatureAlgorithm) Constraint {
	return Constraint{kind: kindAlg, alg: alg}
}

// ConstraintAlgs requires the candidate algorithm to be in the allowlist.
func ConstraintAlgs(algs ...SignatureAlgorithm) Constraint {
	return Constraint{kind: kindAlgs, algs: algs}
}

// ConstraintKID requires an exact key id.
func ConstraintKID(kid string) Constraint {
	return Constraint{kind: kindKID, kid: kid}
}

// ConstraintUse requires an exact declared usage.
func ConstraintUse(use KeyUse) Constraint {
	return Constraint{kind: kindUse, use: use}
}

// ConstraintKTY requires an exact key type.
func ConstraintKTY(kty KeyType) Constraint {
	return Constraint{kind: kindKTY, kty: kty}
}

// identity returns the value identity of the constraint, used to collapse
// equal constraints within a ConstraintSet.
func (c Constraint) identity() string {
	var b strings.Builder
	switch c.kind {
	case kindAlg:
		b.WriteString("alg\x00")
		b.WriteString(string(c.alg))
	case kindAlgs:
		b.WriteString("algs")
		for _, a := range c.algs {
			b.WriteString("\x00")
			b.WriteString(string(a))
		}
	case kindKID:
		b.WriteString("kid\x00")
		b.WriteString(c.kid)
	case kindUse:
		b.WriteString("use\x00")
		b.WriteString(string(c.use))
	case kindKTY:
		b.WriteString("kty\x00")
		b.WriteString(string(c.kty))
	}
	return b.String()
}

// Decide evaluates the constraint against a candidate.
func (c Constraint) Decide(candidate Constrainable) ConstraintDecision {
	switch c.kind {
	case kindAlg:
		// A fixed algorithm on the candidate is decisive either way.
		if alg := candidate.Alg(); alg != "" {
			if alg == c.alg {
				return DecisionPositive
			}
			return DecisionNegative
		}
		if containsAlg(candidate.Algs(), c.alg) {
			return DecisionNeutral
		}
		return DecisionNegative

	case kindAlgs:
		if alg := candidate.Alg(); alg != "" {
			if containsAlg(c.algs, alg) {
				return DecisionPositive
			}
			return DecisionNegative
		}
		for _, alg := range candidate.Algs() {
			if containsAlg(c.algs, alg) {
				return DecisionNeutral
			}
		}
		return DecisionNegative

	case kindKID:
		// A missing key id is never disqualifying.
		if kid := candidate.KID(); kid != "" {
			if kid == c.kid {
				return DecisionPositive
			}
			return DecisionNegative
		}
		return DecisionNeutral

	case kindUse:
		if use := candidate.Use(); use != "" {
			if use == c.use {
				return DecisionPositive
			}
			return DecisionNegative
		}
		return DecisionNeutral

	case kindKTY:
		// Key type is mandatory, so this is always decided.
		if candidate.KTY() == c.kty {
			return DecisionPositive
		}
		return DecisionNegative
	}

	return DecisionNeutral
}

func containsAlg(algs []SignatureAlgorithm, alg SignatureAlgorithm) bool {
	for _, a := range algs {
		if a == alg {
			return true
		}
	}
	return false
}

// ConstraintSet is an unordered collection of constraints. Inserting a
// constraint equal to an existing one overwrites it, so the set collapses
// duplicates. The zero value is ready to use.
type ConstraintSet struct {
	constraints map[string]Constraint
}

// NewConstraintSet builds a set from the given constraints.
func NewConstraintSet(constraints ...Constraint) ConstraintSet {
	var s ConstraintSet
	for _, c := range constraints {
		s = s.With(c)
	}
	return s
}

// With returns a set with the constraint inserted. The receiver is not
// modified.
func (s ConstraintSet) With(c Constraint) ConstraintSet {
	next := make(map[string]Constraint, len(s.constraints)+1)
	for k, v := range s.constraints {
		next[k] = v
	}
	next[c.identity()] = c
	return ConstraintSet{constraints: next}
}

// WithAlg inserts an exact-algorithm constraint.
func (s ConstraintSet) WithAlg(alg SignatureAlgorithm) ConstraintSet {
	return s.With(ConstraintAlg(alg))
}

// WithAlgs inserts an algorithm-allowlist constraint.
func (s ConstraintSet) WithAlgs(algs ...SignatureAlgorithm) ConstraintSet {
	return s.With(ConstraintAlgs(algs...))
}

// WithKID inserts an exact-key-id constraint.
func (s ConstraintSet) WithKID(kid string) ConstraintSet {
	return s.With(ConstraintKID(kid))
}

// WithUse inserts an exact-usage constraint.
func (s ConstraintSet) WithUse(use KeyUse) ConstraintSet {
	return s.With(ConstraintUse(use))
}

// WithKTY inserts an exact-key-type constraint.
func (s ConstraintSet) WithKTY(kty KeyType) ConstraintSet {
	return s.With(ConstraintKTY(kty))
}

// Len returns the number of constraints in the set.
func (s ConstraintSet) Len() int {
	return len(s.constraints)
}

// Filter evaluates every constraint in the set against every candidate.
//
// A candidate with any negative decision is discarded. Survivors are
// scored by the number of positive decisions and returned sorted by
// ascending score, with ties keeping the encounter order of the input.
// Callers wanting the most specific match must read from the END of the
// returned slice. This ordering is a pinned contract.
func Filter[T Constrainable](s ConstraintSet, candidates []T) []T {
	type scored struct {
		score     int
		candidate T
	}

	var selected []scored

outer:
	for _, candidate := range candidates {
		score := 0

		for _, constraint := range s.constraints {
			switch constraint.Decide(candidate) {
			case DecisionPositive:
				score++
			case DecisionNeutral:
			case DecisionNegative:
				continue outer
			}
		}

		selected = append(selected, scored{score: score, candidate: candidate})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].score < selected[j].score
	})

	out := make([]T, 0, len(selected))
	for _, s := range selected {
		out = append(out, s.candidate)
	}
	return out
}
