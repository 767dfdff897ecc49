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

package encoding

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

// Object identifiers for the supported key algorithms and curves.
var (
	oidRSA       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	oidEC        = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidCurveP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidCurveP384 = asn1.ObjectIdentifier{1, 3, 132, 0, 34}
	oidCurveK256 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

// pkcs1PrivateKey mirrors the RSAPrivateKey structure of RFC 8017.
type pkcs1PrivateKey struct {
	Version int
	N       *big.Int
	E       int
	D       *big.Int
	P       *big.Int
	Q       *big.Int
	// CRT parameters are recomputed on load.
	Dp   *big.Int `asn1:"optional"`
	Dq   *big.Int `asn1:"optional"`
	Qinv *big.Int `asn1:"optional"`

	AdditionalPrimes []pkcs1AdditionalPrime `asn1:"optional,omitempty"`
}

type pkcs1AdditionalPrime struct {
	Prime *big.Int
	Exp   *big.Int
	Coeff *big.Int
}

// pkcs8PrivateKeyInfo mirrors the PrivateKeyInfo structure of RFC 5208.
// Trailing attributes are tolerated and ignored.
type pkcs8PrivateKeyInfo struct {
	Version    int
	Algo       pkix.AlgorithmIdentifier
	PrivateKey []byte
}

// sec1PrivateKey mirrors the ECPrivateKey structure of RFC 5915, keeping
// the parameters raw so that explicit (non named curve) parameters can be
// told apart from absent parameters.
type sec1PrivateKey struct {
	Version    int
	PrivateKey []byte
	Parameters asn1.RawValue  `asn1:"optional,explicit,tag:0"`
	PublicKey  asn1.BitString `asn1:"optional,explicit,tag:1"`
}

// encryptedPrivateKeyInfo mirrors the EncryptedPrivateKeyInfo structure of
// RFC 5208.
type encryptedPrivateKeyInfo struct {
	Algo          pkix.AlgorithmIdentifier
	EncryptedData []byte
}

// unmarshalExact decodes a single ASN.1 element, rejecting trailing
// bytes after it.
func unmarshalExact(der []byte, val any) error {
	rest, err := asn1.Unmarshal(der, val)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return asn1.SyntaxError{Msg: "trailing data after ASN.1 structure"}
	}
	return nil
}

// parsePKCS1 decodes a PKCS#1 RSA private key. Multi-prime keys
// (version != two-prime) are rejected.
func parsePKCS1(der []byte) (keys.PrivateKey, error) {
	var raw pkcs1PrivateKey
	if err := unmarshalExact(der, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return rsaFromPKCS1(&raw)
}

func rsaFromPKCS1(raw *pkcs1PrivateKey) (keys.PrivateKey, error) {
	if raw.Version != 0 {
		return nil, ErrMultiPrimeRSA
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: raw.N,
			E: raw.E,
		},
		D:      raw.D,
		Primes: []*big.Int{raw.P, raw.Q},
	}
	key.Precompute()
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	return wrapRSA(key)
}

func wrapRSA(key *rsa.PrivateKey) (keys.PrivateKey, error) {
	k, err := keys.NewRSA(key)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// probePKCS1 reports whether the bytes are structurally a PKCS#1 RSA
// private key.
func probePKCS1(der []byte) bool {
	var raw pkcs1PrivateKey
	return unmarshalExact(der, &raw) == nil
}

// parsePKCS8Info structurally decodes a PrivateKeyInfo without
// interpreting the algorithm.
func parsePKCS8Info(der []byte) (*pkcs8PrivateKeyInfo, error) {
	var info pkcs8PrivateKeyInfo
	if err := unmarshalExact(der, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// fromPKCS8Info dispatches a PrivateKeyInfo on its algorithm OID.
func fromPKCS8Info(info *pkcs8PrivateKeyInfo) (keys.PrivateKey, error) {
	switch {
	case info.Algo.Algorithm.Equal(oidRSA):
		return parsePKCS1(info.PrivateKey)

	case info.Algo.Algorithm.Equal(oidEC):
		if len(info.Algo.Parameters.FullBytes) == 0 {
			return nil, ErrMissingECParameters
		}
		var curveOID asn1.ObjectIdentifier
		if err := unmarshalExact(info.Algo.Parameters.FullBytes, &curveOID); err != nil {
			return nil, ErrMissingECParameters
		}
		curve, err := curveByOID(curveOID)
		if err != nil {
			return nil, err
		}
		return parseSEC1WithCurve(info.PrivateKey, curve)

	default:
		return nil, &UnknownAlgorithmOIDError{OID: info.Algo.Algorithm}
	}
}

// parseSEC1 decodes a standalone SEC1 EC private key. The parameters
// field must be present and must carry a named curve.
func parseSEC1(der []byte) (keys.PrivateKey, error) {
	var raw sec1PrivateKey
	if err := unmarshalExact(der, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	if len(raw.Parameters.FullBytes) == 0 {
		return nil, ErrMissingSEC1Parameters
	}

	// Parameters holds the entire [0] element; the named curve OID is its
	// content.
	var curveOID asn1.ObjectIdentifier
	if err := unmarshalExact(raw.Parameters.Bytes, &curveOID); err != nil {
		return nil, ErrMissingSEC1CurveName
	}

	curve, err := curveByOID(curveOID)
	if err != nil {
		return nil, err
	}

	return ecKeyFromScalar(curve, raw.PrivateKey)
}

// parseSEC1WithCurve decodes the SEC1 structure nested inside a PKCS#8
// key, taking the curve from the outer algorithm identifier. An inner
// named curve, when present, must agree.
func parseSEC1WithCurve(der []byte, curve jose.EllipticCurve) (keys.PrivateKey, error) {
	var raw sec1PrivateKey
	if err := unmarshalExact(der, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	if len(raw.Parameters.FullBytes) != 0 {
		var innerOID asn1.ObjectIdentifier
		if err := unmarshalExact(raw.Parameters.Bytes, &innerOID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
		}
		inner, err := curveByOID(innerOID)
		if err != nil {
			return nil, err
		}
		if inner != curve {
			return nil, fmt.Errorf("%w: curve mismatch between PKCS#8 and SEC1 parameters", ErrInvalidPrivateKey)
		}
	}

	return ecKeyFromScalar(curve, raw.PrivateKey)
}

// probeSEC1 reports whether the bytes are structurally a SEC1 EC private
// key.
func probeSEC1(der []byte) bool {
	var raw sec1PrivateKey
	return unmarshalExact(der, &raw) == nil
}

// probePKCS8 reports whether the bytes are structurally a PKCS#8
// PrivateKeyInfo.
func probePKCS8(der []byte) bool {
	_, err := parsePKCS8Info(der)
	return err == nil
}

// probeEncryptedPKCS8 reports whether the bytes are structurally an
// EncryptedPrivateKeyInfo.
func probeEncryptedPKCS8(der []byte) bool {
	var info encryptedPrivateKeyInfo
	return unmarshalExact(der, &info) == nil
}

func curveByOID(oid asn1.ObjectIdentifier) (jose.EllipticCurve, error) {
	switch {
	case oid.Equal(oidCurveP256):
		return jose.CurveP256, nil
	case oid.Equal(oidCurveP384):
		return jose.CurveP384, nil
	case oid.Equal(oidCurveK256):
		return jose.CurveSecp256k1, nil
	default:
		return "", &UnknownCurveOIDError{OID: oid}
	}
}

func oidByCurve(curve jose.EllipticCurve) asn1.ObjectIdentifier {
	switch curve {
	case jose.CurveP256:
		return oidCurveP256
	case jose.CurveP384:
		return oidCurveP384
	case jose.CurveSecp256k1:
		return oidCurveK256
	}
	return nil
}

// ecKeyFromScalar builds the key variant for the curve from the raw
// private scalar. The scalar slice may alias the caller's DER buffer and
// is left untouched.
func ecKeyFromScalar(curve jose.EllipticCurve, scalar []byte) (keys.PrivateKey, error) {
	d := new(big.Int).SetBytes(scalar)
	defer d.SetInt64(0)

	var ec elliptic.Curve
	switch curve {
	case jose.CurveP256:
		ec = elliptic.P256()
	case jose.CurveP384:
		ec = elliptic.P384()
	case jose.CurveSecp256k1:
		ec = secp256k1.S256()
	}

	if d.Sign() <= 0 || d.Cmp(ec.Params().N) >= 0 {
		return nil, fmt.Errorf("%w: EC scalar out of range", ErrInvalidPrivateKey)
	}

	if curve == jose.CurveSecp256k1 {
		buf := make([]byte, 32)
		d.FillBytes(buf)
		defer Zeroize(buf)
		key, err := keys.NewECK256(secp256k1.PrivKeyFromBytes(buf))
		if err != nil {
			return nil, err
		}
		return key, nil
	}

	priv := &ecdsa.PrivateKey{D: new(big.Int).Set(d)}
	priv.Curve = ec
	priv.X, priv.Y = ec.ScalarBaseMult(d.Bytes())

	switch curve {
	case jose.CurveP256:
		return keys.NewECP256(priv)
	default:
		return keys.NewECP384(priv)
	}
}
