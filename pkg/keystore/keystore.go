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

// Package keystore holds an immutable, ordered collection of private keys
// with their public attributes (key id, usage, declared algorithm) and
// derives the public JWK Set view suitable for publication.
//
// A Keystore is built once and then shared by value; copies are O(1)
// because they share the underlying entry slice. Replacing the active key
// set means building a new Keystore and swapping the reference at a
// higher layer, never mutating in place.
package keystore

import (
	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/jwk"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

// Entry is one private key with its public attributes. The zero
// attributes mean undeclared; key ids are opaque and uniqueness is not
// enforced at this layer.
//
// Entry implements jose.Constrainable.
type Entry struct {
	key keys.PrivateKey
	kid string
	use jose.KeyUse
	alg jose.SignatureAlgorithm
}

// NewEntry wraps a private key with no declared attributes.
func NewEntry(key keys.PrivateKey) Entry {
	return Entry{key: key}
}

// WithKID returns a copy of the entry with the key id set.
func (e Entry) WithKID(kid string) Entry {
	e.kid = kid
	return e
}

// WithUse returns a copy of the entry with the usage set.
func (e Entry) WithUse(use jose.KeyUse) Entry {
	e.use = use
	return e
}

// WithAlg returns a copy of the entry with a fixed algorithm declared.
func (e Entry) WithAlg(alg jose.SignatureAlgorithm) Entry {
	e.alg = alg
	return e
}

// Key returns the private key.
func (e Entry) Key() keys.PrivateKey {
	return e.key
}

// Alg returns the declared fixed algorithm, or "" when none is declared.
func (e Entry) Alg() jose.SignatureAlgorithm {
	return e.alg
}

// Algs returns the algorithms the underlying key may be used with.
func (e Entry) Algs() []jose.SignatureAlgorithm {
	return e.key.Algs()
}

// KID returns the declared key id, or "" when none is declared.
func (e Entry) KID() string {
	return e.kid
}

// Use returns the declared usage, or "" when none is declared.
func (e Entry) Use() jose.KeyUse {
	return e.use
}

// KTY returns the key type of the underlying key.
func (e Entry) KTY() jose.KeyType {
	return e.key.KTY()
}

// JWK returns the public JWK for the entry, with the declared kid, use
// and alg carried into the corresponding JWK members.
func (e Entry) JWK() (jwk.Key, error) {
	k, err := jwk.FromPrivateKey(e.key)
	if err != nil {
		return jwk.Key{}, err
	}
	k.Kid = e.kid
	k.Use = string(e.use)
	k.Alg = string(e.alg)
	return k, nil
}

// Keystore is an immutable ordered set of entries. The zero value is an
// empty store. Copying a Keystore shares the entry slice.
type Keystore struct {
	entries []Entry
}

// New builds a Keystore from the given entries. The entries are copied
// once at construction; the store never mutates them afterwards.
func New(entries ...Entry) Keystore {
	owned := make([]Entry, len(entries))
	copy(owned, entries)
	return Keystore{entries: owned}
}

// Entries returns the entries in insertion order. The returned slice is
// shared with the store and must not be modified.
func (ks Keystore) Entries() []Entry {
	return ks.entries
}

// Len returns the number of entries.
func (ks Keystore) Len() int {
	return len(ks.entries)
}

// PublicJWKS returns the public JWK Set view of the store: every entry
// with its private material replaced by public parameters.
func (ks Keystore) PublicJWKS() (jwk.Set, error) {
	set := jwk.Set{Keys: make([]jwk.Key, 0, len(ks.entries))}
	for _, e := range ks.entries {
		k, err := e.JWK()
		if err != nil {
			return jwk.Set{}, err
		}
		set.Keys = append(set.Keys, k)
	}
	return set, nil
}

// Filter returns the entries satisfying the constraint set, sorted by
// ascending specificity. The most specific surviving entry is last.
func (ks Keystore) Filter(cs jose.ConstraintSet) []Entry {
	return jose.Filter(cs, ks.entries)
}

// SigningKeyFor returns the most specific entry satisfying the
// constraint set. The second return is false when no entry survives.
func (ks Keystore) SigningKeyFor(cs jose.ConstraintSet) (Entry, bool) {
	matched := ks.Filter(cs)
	if len(matched) == 0 {
		return Entry{}, false
	}
	return matched[len(matched)-1], true
}
