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

// Package keys defines the closed set of private key representations used
// for JOSE signing: RSA and elliptic curve keys over P-256, P-384 and
// secp256k1. Each variant knows which signature algorithms it may be used
// with; actual algorithm binding lives in the signing and verification
// packages.
package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
)

// PrivateKey is the sealed interface over the supported private key
// variants: *RSA, *ECP256, *ECP384 and *ECK256. No other implementations
// exist; consumers may type switch exhaustively over these four.
//
// PrivateKey implements jose.Constrainable: a bare key declares no fixed
// algorithm, key id or usage, only its key type and the algorithms it is
// capable of.
type PrivateKey interface {
	jose.Constrainable

	// Public returns the corresponding public key.
	Public() crypto.PublicKey

	// Equal reports whether both keys hold the same key material.
	Equal(other PrivateKey) bool

	// sealed prevents implementations outside this package.
	sealed()
}

var rsaAlgorithms = []jose.SignatureAlgorithm{
	jose.RS256,
	jose.RS384,
	jose.RS512,
	jose.PS256,
	jose.PS384,
	jose.PS512,
}

// RSA is an RSA private key. It may be used with any of the six RSA
// signature algorithms (RS256/384/512, PS256/384/512).
type RSA struct {
	jose.Unconstrained
	key *rsa.PrivateKey
}

// NewRSA wraps an RSA private key. Returns ErrNilKey if key is nil.
func NewRSA(key *rsa.PrivateKey) (*RSA, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	return &RSA{key: key}, nil
}

// Key returns the underlying RSA private key.
func (k *RSA) Key() *rsa.PrivateKey {
	return k.key
}

// Public returns the RSA public key.
func (k *RSA) Public() crypto.PublicKey {
	return &k.key.PublicKey
}

// KTY returns the JOSE key type (RSA).
func (k *RSA) KTY() jose.KeyType {
	return jose.KeyTypeRSA
}

// Algs returns the signature algorithms this key may be used with.
func (k *RSA) Algs() []jose.SignatureAlgorithm {
	out := make([]jose.SignatureAlgorithm, len(rsaAlgorithms))
	copy(out, rsaAlgorithms)
	return out
}

// Equal reports whether both keys hold the same key material.
func (k *RSA) Equal(other PrivateKey) bool {
	o, ok := other.(*RSA)
	return ok && k.key.Equal(o.key)
}

func (k *RSA) sealed() {}

// ECP256 is an elliptic curve private key on NIST P-256, usable only with
// ES256.
type ECP256 struct {
	jose.Unconstrained
	key *ecdsa.PrivateKey
}

// NewECP256 wraps a P-256 private key. Returns ErrWrongCurve if the key
// is on a different curve.
func NewECP256(key *ecdsa.PrivateKey) (*ECP256, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	if key.Curve != elliptic.P256() {
		return nil, ErrWrongCurve
	}
	return &ECP256{key: key}, nil
}

// Key returns the underlying ECDSA private key.
func (k *ECP256) Key() *ecdsa.PrivateKey {
	return k.key
}

// Public returns the ECDSA public key.
func (k *ECP256) Public() crypto.PublicKey {
	return &k.key.PublicKey
}

// KTY returns the JOSE key type (EC).
func (k *ECP256) KTY() jose.KeyType {
	return jose.KeyTypeEC
}

// Curve returns the named curve (P-256).
func (k *ECP256) Curve() jose.EllipticCurve {
	return jose.CurveP256
}

// Algs returns the signature algorithms this key may be used with.
func (k *ECP256) Algs() []jose.SignatureAlgorithm {
	return []jose.SignatureAlgorithm{jose.ES256}
}

// Equal reports whether both keys hold the same key material.
func (k *ECP256) Equal(other PrivateKey) bool {
	o, ok := other.(*ECP256)
	return ok && k.key.Equal(o.key)
}

func (k *ECP256) sealed() {}

// ECP384 is an elliptic curve private key on NIST P-384, usable only with
// ES384.
type ECP384 struct {
	jose.Unconstrained
	key *ecdsa.PrivateKey
}

// NewECP384 wraps a P-384 private key. Returns ErrWrongCurve if the key
// is on a different curve.
func NewECP384(key *ecdsa.PrivateKey) (*ECP384, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	if key.Curve != elliptic.P384() {
		return nil, ErrWrongCurve
	}
	return &ECP384{key: key}, nil
}

// Key returns the underlying ECDSA private key.
func (k *ECP384) Key() *ecdsa.PrivateKey {
	return k.key
}

// Public returns the ECDSA public key.
func (k *ECP384) Public() crypto.PublicKey {
	return &k.key.PublicKey
}

// KTY returns the JOSE key type (EC).
func (k *ECP384) KTY() jose.KeyType {
	return jose.KeyTypeEC
}

// Curve returns the named curve (P-384).
func (k *ECP384) Curve() jose.EllipticCurve {
	return jose.CurveP384
}

// Algs returns the signature algorithms this key may be used with.
func (k *ECP384) Algs() []jose.SignatureAlgorithm {
	return []jose.SignatureAlgorithm{jose.ES384}
}

// Equal reports whether both keys hold the same key material.
func (k *ECP384) Equal(other PrivateKey) bool {
	o, ok := other.(*ECP384)
	return ok && k.key.Equal(o.key)
}

func (k *ECP384) sealed() {}

// ECK256 is an elliptic curve private key on secp256k1, usable only with
// ES256K.
type ECK256 struct {
	jose.Unconstrained
	key *secp256k1.PrivateKey
}

// NewECK256 wraps a secp256k1 private key.
func NewECK256(key *secp256k1.PrivateKey) (*ECK256, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	return &ECK256{key: key}, nil
}

// Key returns the underlying secp256k1 private key.
func (k *ECK256) Key() *secp256k1.PrivateKey {
	return k.key
}

// Public returns the public key as an *ecdsa.PublicKey on the secp256k1
// curve.
func (k *ECK256) Public() crypto.PublicKey {
	return k.key.PubKey().ToECDSA()
}

// KTY returns the JOSE key type (EC).
func (k *ECK256) KTY() jose.KeyType {
	return jose.KeyTypeEC
}

// Curve returns the named curve (secp256k1).
func (k *ECK256) Curve() jose.EllipticCurve {
	return jose.CurveSecp256k1
}

// Algs returns the signature algorithms this key may be used with.
func (k *ECK256) Algs() []jose.SignatureAlgorithm {
	return []jose.SignatureAlgorithm{jose.ES256K}
}

// Equal reports whether both keys hold the same key material.
func (k *ECK256) Equal(other PrivateKey) bool {
	o, ok := other.(*ECK256)
	return ok && k.key.Key.Equals(&o.key.Key)
}

func (k *ECK256) sealed() {}
