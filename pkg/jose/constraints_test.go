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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKey is a test candidate with fully controllable declared
// attributes.
type fakeKey struct {
	name string
	alg  SignatureAlgorithm
	algs []SignatureAlgorithm
	kid  string
	use  KeyUse
	kty  KeyType
}

func (f fakeKey) Alg() SignatureAlgorithm    { return f.alg }
func (f fakeKey) Algs() []SignatureAlgorithm { return f.algs }
func (f fakeKey) KID() string                { return f.kid }
func (f fakeKey) Use() KeyUse                { return f.use }
func (f fakeKey) KTY() KeyType               { return f.kty }

func names(keys []fakeKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.name
	}
	return out
}

func TestConstraintDecide(t *testing.T) {
	tests := []struct {
		name       string
		constraint Constraint
		candidate  fakeKey
		want       ConstraintDecision
	}{
		{
			name:       "alg exact match on fixed algorithm",
			constraint: ConstraintAlg(RS256),
			candidate:  fakeKey{alg: RS256, kty: KeyTypeRSA},
			want:       DecisionPositive,
		},
		{
			name:       "alg mismatch on fixed algorithm",
			constraint: ConstraintAlg(RS256),
			candidate:  fakeKey{alg: ES256, kty: KeyTypeEC},
			want:       DecisionNegative,
		},
		{
			name:       "alg in possible list is neutral",
			constraint: ConstraintAlg(RS256),
			candidate:  fakeKey{algs: []SignatureAlgorithm{RS256, PS256}, kty: KeyTypeRSA},
			want:       DecisionNeutral,
		},
		{
			name:       "alg not in possible list",
			constraint: ConstraintAlg(ES384),
			candidate:  fakeKey{algs: []SignatureAlgorithm{RS256, PS256}, kty: KeyTypeRSA},
			want:       DecisionNegative,
		},
		{
			name:       "allowlist contains fixed algorithm",
			constraint: ConstraintAlgs(RS256, ES256),
			candidate:  fakeKey{alg: ES256, kty: KeyTypeEC},
			want:       DecisionPositive,
		},
		{
			name:       "allowlist excludes fixed algorithm",
			constraint: ConstraintAlgs(RS256, ES256),
			candidate:  fakeKey{alg: ES384, kty: KeyTypeEC},
			want:       DecisionNegative,
		},
		{
			name:       "allowlist intersects possible list",
			constraint: ConstraintAlgs(ES256, ES384),
			candidate:  fakeKey{algs: []SignatureAlgorithm{ES384}, kty: KeyTypeEC},
			want:       DecisionNeutral,
		},
		{
			name:       "allowlist disjoint from possible list",
			constraint: ConstraintAlgs(ES256, ES384),
			candidate:  fakeKey{algs: []SignatureAlgorithm{RS256}, kty: KeyTypeRSA},
			want:       DecisionNegative,
		},
		{
			name:       "kid exact match",
			constraint: ConstraintKID("a"),
			candidate:  fakeKey{kid: "a", kty: KeyTypeRSA},
			want:       DecisionPositive,
		},
		{
			name:       "kid mismatch",
			constraint: ConstraintKID("a"),
			candidate:  fakeKey{kid: "b", kty: KeyTypeRSA},
			want:       DecisionNegative,
		},
		{
			name:       "missing kid is neutral",
			constraint: ConstraintKID("a"),
			candidate:  fakeKey{kty: KeyTypeRSA},
			want:       DecisionNeutral,
		},
		{
			name:       "use exact match",
			constraint: ConstraintUse(UseSignature),
			candidate:  fakeKey{use: UseSignature, kty: KeyTypeRSA},
			want:       DecisionPositive,
		},
		{
			name:       "use mismatch",
			constraint: ConstraintUse(UseSignature),
			candidate:  fakeKey{use: UseEncryption, kty: KeyTypeRSA},
			want:       DecisionNegative,
		},
		{
			name:       "missing use is neutral",
			constraint: ConstraintUse(UseSignature),
			candidate:  fakeKey{kty: KeyTypeRSA},
			want:       DecisionNeutral,
		},
		{
			name:       "kty match",
			constraint: ConstraintKTY(KeyTypeEC),
			candidate:  fakeKey{kty: KeyTypeEC},
			want:       DecisionPositive,
		},
		{
			name:       "kty mismatch is never neutral",
			constraint: ConstraintKTY(KeyTypeEC),
			candidate:  fakeKey{kty: KeyTypeRSA},
			want:       DecisionNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.constraint.Decide(tt.candidate))
		})
	}
}

// TestFilterScoringAndOrder pins the ranked-result contract: survivors
// come back sorted ascending by score, so the most specific candidate
// is the LAST element. Callers reading from the front would silently
// pick the least specific key.
func TestFilterScoringAndOrder(t *testing.T) {
	k1 := fakeKey{name: "k1", kid: "a", alg: RS256, kty: KeyTypeRSA}
	k2 := fakeKey{name: "k2", kid: "b", alg: RS256, kty: KeyTypeRSA}
	k3 := fakeKey{name: "k3", kid: "a", algs: []SignatureAlgorithm{RS256, ES256}, kty: KeyTypeRSA}

	cs := NewConstraintSet().WithKID("a").WithAlg(RS256)
	got := Filter(cs, []fakeKey{k1, k2, k3})

	// k2 excluded on kid; k3 scores 1 (kid positive, alg neutral);
	// k1 scores 2 and must come last.
	require.Equal(t, []string{"k3", "k1"}, names(got))
}

func TestFilterNegativeShortCircuit(t *testing.T) {
	// Positive on kid, use and alg, but the key type mismatch alone
	// excludes the candidate.
	candidate := fakeKey{name: "rsa", kid: "a", use: UseSignature, alg: RS256, kty: KeyTypeRSA}
	cs := NewConstraintSet().
		WithKID("a").
		WithUse(UseSignature).
		WithAlg(RS256).
		WithKTY(KeyTypeEC)

	assert.Empty(t, Filter(cs, []fakeKey{candidate}))
}

func TestFilterEmptyConstraintSet(t *testing.T) {
	candidates := []fakeKey{
		{name: "a", kty: KeyTypeRSA},
		{name: "b", kty: KeyTypeEC},
		{name: "c", kty: KeyTypeRSA},
	}

	got := Filter(ConstraintSet{}, candidates)
	assert.Equal(t, []string{"a", "b", "c"}, names(got))
}

func TestFilterStableTieBreak(t *testing.T) {
	// Equal scores keep the encounter order of the input.
	candidates := []fakeKey{
		{name: "first", kid: "x", kty: KeyTypeRSA},
		{name: "second", kid: "x", kty: KeyTypeRSA},
		{name: "third", kid: "x", kty: KeyTypeRSA},
	}

	got := Filter(NewConstraintSet().WithKID("x"), candidates)
	assert.Equal(t, []string{"first", "second", "third"}, names(got))
}

func TestConstraintSetCollapsesDuplicates(t *testing.T) {
	cs := NewConstraintSet().
		WithKID("a").
		WithKID("a").
		WithAlg(RS256).
		WithAlg(RS256)
	assert.Equal(t, 2, cs.Len())

	// Different values of the same kind coexist.
	cs = cs.WithKID("b")
	assert.Equal(t, 3, cs.Len())
}

func TestConstraintSetWithDoesNotMutateReceiver(t *testing.T) {
	base := NewConstraintSet().WithKID("a")
	derived := base.WithAlg(RS256)

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, derived.Len())
}

func TestConstraintSetFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		wantLen int
	}{
		{
			name:    "alg only",
			header:  Header{Algorithm: RS256},
			wantLen: 1,
		},
		{
			name:    "alg and kid",
			header:  Header{Algorithm: ES256, KeyID: "2022-07"},
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := ConstraintSetFromHeader(tt.header)
			assert.Equal(t, tt.wantLen, cs.Len())
		})
	}
}

func TestConstraintSetFromHeaderSelectsByKID(t *testing.T) {
	keys := []fakeKey{
		{name: "old", kid: "2021-01", alg: RS256, kty: KeyTypeRSA},
		{name: "new", kid: "2022-07", alg: RS256, kty: KeyTypeRSA},
	}

	cs := ConstraintSetFromHeader(Header{Algorithm: RS256, KeyID: "2022-07"})
	got := Filter(cs, keys)

	require.NotEmpty(t, got)
	assert.Equal(t, "new", got[len(got)-1].name)
}
