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

// Package token bridges the keystore to github.com/golang-jwt/jwt for
// issuing and verifying JSON Web Tokens. Key selection goes through the
// constraint engine so tokens always verify against the key their header
// names.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
	"github.com/jeremyhahn/go-jwks/pkg/keystore"
)

// Method returns the golang-jwt signing method for a signature
// algorithm. ES256K has no registered method and returns
// ErrUnsupportedAlgorithm.
func Method(alg jose.SignatureAlgorithm) (jwt.SigningMethod, error) {
	switch alg {
	case jose.RS256:
		return jwt.SigningMethodRS256, nil
	case jose.RS384:
		return jwt.SigningMethodRS384, nil
	case jose.RS512:
		return jwt.SigningMethodRS512, nil
	case jose.PS256:
		return jwt.SigningMethodPS256, nil
	case jose.PS384:
		return jwt.SigningMethodPS384, nil
	case jose.PS512:
		return jwt.SigningMethodPS512, nil
	case jose.ES256:
		return jwt.SigningMethodES256, nil
	case jose.ES384:
		return jwt.SigningMethodES384, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}
}

// Keyfunc returns a jwt.Keyfunc that resolves the verification key from
// the keystore, matching the token's alg header and kid header (when
// present) through the constraint engine. When several entries survive,
// the most specific one wins.
func Keyfunc(ks keystore.Keystore) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		alg := jose.SignatureAlgorithm(t.Method.Alg())
		if !alg.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, t.Method.Alg())
		}

		cs := jose.NewConstraintSet().WithAlg(alg)
		if kid, ok := t.Header["kid"].(string); ok && kid != "" {
			cs = cs.WithKID(kid)
		}

		entry, ok := ks.SigningKeyFor(cs)
		if !ok {
			return nil, ErrNoMatchingKey
		}
		return entry.Key().Public(), nil
	}
}

// SignedString selects a key for alg from the keystore, stamps its key
// id (when declared) into the token header and returns the signed
// compact serialization.
func SignedString(ks keystore.Keystore, alg jose.SignatureAlgorithm, claims jwt.Claims) (string, error) {
	method, err := Method(alg)
	if err != nil {
		return "", err
	}

	entry, ok := ks.SigningKeyFor(jose.NewConstraintSet().WithAlg(alg))
	if !ok {
		return "", ErrNoMatchingKey
	}

	native, err := nativeSigningKey(entry.Key())
	if err != nil {
		return "", err
	}

	t := jwt.NewWithClaims(method, claims)
	if kid := entry.KID(); kid != "" {
		t.Header["kid"] = kid
	}
	return t.SignedString(native)
}

// nativeSigningKey unwraps the key type golang-jwt expects for its
// signing methods.
func nativeSigningKey(key keys.PrivateKey) (any, error) {
	switch k := key.(type) {
	case *keys.RSA:
		return k.Key(), nil
	case *keys.ECP256:
		return k.Key(), nil
	case *keys.ECP384:
		return k.Key(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, jose.ES256K)
	}
}
