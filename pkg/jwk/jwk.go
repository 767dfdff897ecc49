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

// Package jwk publishes public keys as RFC 7517 JSON Web Keys and
// reconstructs native public keys from them.
package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

// Key is a public JSON Web Key. Private key material is never
// represented here.
type Key struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`

	// EC parameters
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`

	// RSA parameters
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`
}

// Set is an RFC 7517 JWK Set document.
type Set struct {
	Keys []Key `json:"keys"`
}

// FromPublicKey builds a JWK from a native public key. The kid, use
// and alg fields are left empty for the caller to fill.
func FromPublicKey(pub crypto.PublicKey) (Key, error) {
	switch p := pub.(type) {
	case *rsa.PublicKey:
		return Key{
			Kty: string(jose.KeyTypeRSA),
			N:   base64.RawURLEncoding.EncodeToString(p.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(p.E)).Bytes()),
		}, nil

	case *ecdsa.PublicKey:
		crv, err := curveName(p.Curve)
		if err != nil {
			return Key{}, err
		}
		byteLen := (p.Curve.Params().BitSize + 7) / 8
		x := make([]byte, byteLen)
		y := make([]byte, byteLen)
		p.X.FillBytes(x)
		p.Y.FillBytes(y)
		return Key{
			Kty: string(jose.KeyTypeEC),
			Crv: crv,
			X:   base64.RawURLEncoding.EncodeToString(x),
			Y:   base64.RawURLEncoding.EncodeToString(y),
		}, nil

	default:
		return Key{}, fmt.Errorf("%w: %T", ErrUnsupportedKey, pub)
	}
}

// FromPrivateKey builds the public JWK for a private key.
func FromPrivateKey(key keys.PrivateKey) (Key, error) {
	return FromPublicKey(key.Public())
}

// PublicKey reconstructs the native public key described by the JWK.
func (k Key) PublicKey() (crypto.PublicKey, error) {
	switch jose.KeyType(k.Kty) {
	case jose.KeyTypeRSA:
		nb, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			return nil, fmt.Errorf("%w: n: %v", ErrMalformedKey, err)
		}
		eb, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil {
			return nil, fmt.Errorf("%w: e: %v", ErrMalformedKey, err)
		}
		e := new(big.Int).SetBytes(eb)
		if !e.IsInt64() || e.Int64() <= 0 {
			return nil, fmt.Errorf("%w: exponent out of range", ErrMalformedKey)
		}
		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(nb),
			E: int(e.Int64()),
		}, nil

	case jose.KeyTypeEC:
		curve, err := curveByName(k.Crv)
		if err != nil {
			return nil, err
		}
		xb, err := base64.RawURLEncoding.DecodeString(k.X)
		if err != nil {
			return nil, fmt.Errorf("%w: x: %v", ErrMalformedKey, err)
		}
		yb, err := base64.RawURLEncoding.DecodeString(k.Y)
		if err != nil {
			return nil, fmt.Errorf("%w: y: %v", ErrMalformedKey, err)
		}
		pub := &ecdsa.PublicKey{
			Curve: curve,
			X:     new(big.Int).SetBytes(xb),
			Y:     new(big.Int).SetBytes(yb),
		}
		if !curve.IsOnCurve(pub.X, pub.Y) {
			return nil, fmt.Errorf("%w: point not on curve", ErrMalformedKey)
		}
		return pub, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKey, k.Kty)
	}
}

// Thumbprint computes the RFC 7638 SHA-256 thumbprint of the key,
// base64url-encoded without padding. The thumbprint covers only the
// required members of the key type, in lexicographic order.
func (k Key) Thumbprint() (string, error) {
	var canonical any
	switch jose.KeyType(k.Kty) {
	case jose.KeyTypeRSA:
		canonical = struct {
			E   string `json:"e"`
			Kty string `json:"kty"`
			N   string `json:"n"`
		}{k.E, k.Kty, k.N}
	case jose.KeyTypeEC:
		canonical = struct {
			Crv string `json:"crv"`
			Kty string `json:"kty"`
			X   string `json:"x"`
			Y   string `json:"y"`
		}{k.Crv, k.Kty, k.X, k.Y}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKey, k.Kty)
	}

	data, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

func curveName(curve elliptic.Curve) (string, error) {
	switch curve {
	case elliptic.P256():
		return string(jose.CurveP256), nil
	case elliptic.P384():
		return string(jose.CurveP384), nil
	case secp256k1.S256():
		return string(jose.CurveSecp256k1), nil
	default:
		return "", fmt.Errorf("%w: curve %s", ErrUnsupportedKey, curve.Params().Name)
	}
}

func curveByName(name string) (elliptic.Curve, error) {
	switch jose.EllipticCurve(name) {
	case jose.CurveP256:
		return elliptic.P256(), nil
	case jose.CurveP384:
		return elliptic.P384(), nil
	case jose.CurveSecp256k1:
		return secp256k1.S256(), nil
	default:
		return nil, fmt.Errorf("%w: crv %q", ErrUnsupportedKey, name)
	}
}
