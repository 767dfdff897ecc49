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
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"fmt"

	"github.com/youmark/pkcs8"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

// EncodeDER serializes the key in its canonical native DER form: PKCS#1
// for RSA keys, SEC1 for elliptic curve keys. The SEC1 output always
// embeds the named curve OID and the uncompressed public point, matching
// what OpenSSL produces; consumers that dispatch on the curve OID depend
// on it.
//
// The caller owns the returned buffer and should Zeroize it when done.
func EncodeDER(key keys.PrivateKey) ([]byte, error) {
	switch k := key.(type) {
	case *keys.RSA:
		return x509.MarshalPKCS1PrivateKey(k.Key()), nil

	case *keys.ECP256:
		return marshalSEC1(k.Curve(), k.Key(), true)

	case *keys.ECP384:
		return marshalSEC1(k.Curve(), k.Key(), true)

	case *keys.ECK256:
		return marshalSEC1K256(k, true)

	default:
		return nil, ErrUnsupportedFormat
	}
}

// EncodePEM serializes the key as a PEM document in its canonical native
// form, using the "RSA PRIVATE KEY" or "EC PRIVATE KEY" label.
//
// The caller owns the returned buffer and should Zeroize it when done.
func EncodePEM(key keys.PrivateKey) ([]byte, error) {
	der, err := EncodeDER(key)
	if err != nil {
		return nil, err
	}
	defer Zeroize(der)

	label := PEMTypeECPrivateKey
	if key.KTY() == jose.KeyTypeRSA {
		label = PEMTypeRSAPrivateKey
	}

	return pem.EncodeToMemory(&pem.Block{Type: label, Bytes: der}), nil
}

// EncodePKCS8DER serializes the key as a PKCS#8 PrivateKeyInfo DER
// document.
//
// The caller owns the returned buffer and should Zeroize it when done.
func EncodePKCS8DER(key keys.PrivateKey) ([]byte, error) {
	var (
		algo  pkixAlgorithm
		inner []byte
		err   error
	)

	switch k := key.(type) {
	case *keys.RSA:
		inner = x509.MarshalPKCS1PrivateKey(k.Key())
		algo, err = rsaAlgorithmIdentifier()

	case *keys.ECP256:
		inner, err = marshalSEC1(k.Curve(), k.Key(), false)
		if err == nil {
			algo, err = ecAlgorithmIdentifier(k.Curve())
		}

	case *keys.ECP384:
		inner, err = marshalSEC1(k.Curve(), k.Key(), false)
		if err == nil {
			algo, err = ecAlgorithmIdentifier(k.Curve())
		}

	case *keys.ECK256:
		inner, err = marshalSEC1K256(k, false)
		if err == nil {
			algo, err = ecAlgorithmIdentifier(k.Curve())
		}

	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	defer Zeroize(inner)

	info := pkcs8PrivateKeyInfo{
		Version:    0,
		Algo:       algo,
		PrivateKey: inner,
	}

	der, err := asn1.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encoding: failed to marshal PKCS#8 key: %w", err)
	}
	return der, nil
}

// EncodePKCS8PEM serializes the key as a PKCS#8 PEM document with the
// "PRIVATE KEY" label.
//
// The caller owns the returned buffer and should Zeroize it when done.
func EncodePKCS8PEM(key keys.PrivateKey) ([]byte, error) {
	der, err := EncodePKCS8DER(key)
	if err != nil {
		return nil, err
	}
	defer Zeroize(der)

	return pem.EncodeToMemory(&pem.Block{Type: PEMTypePrivateKey, Bytes: der}), nil
}

// EncodeEncryptedPKCS8DER serializes the key as an encrypted PKCS#8
// container protected by the password. secp256k1 keys cannot be
// represented by the encrypter and yield ErrEncryptUnsupportedKey.
func EncodeEncryptedPKCS8DER(key keys.PrivateKey, password []byte) ([]byte, error) {
	priv, err := nativePrivateKey(key)
	if err != nil {
		return nil, err
	}

	der, err := pkcs8.MarshalPrivateKey(priv, password, nil)
	if err != nil {
		return nil, fmt.Errorf("encoding: failed to marshal encrypted PKCS#8 key: %w", err)
	}
	return der, nil
}

// EncodeEncryptedPKCS8PEM serializes the key as an encrypted PKCS#8 PEM
// document with the "ENCRYPTED PRIVATE KEY" label.
func EncodeEncryptedPKCS8PEM(key keys.PrivateKey, password []byte) ([]byte, error) {
	der, err := EncodeEncryptedPKCS8DER(key, password)
	if err != nil {
		return nil, err
	}
	defer Zeroize(der)

	return pem.EncodeToMemory(&pem.Block{Type: PEMTypeEncryptedPrivateKey, Bytes: der}), nil
}

// nativePrivateKey unwraps the stdlib key needed by the PKCS#8 encrypter.
func nativePrivateKey(key keys.PrivateKey) (crypto.PrivateKey, error) {
	switch k := key.(type) {
	case *keys.RSA:
		return k.Key(), nil
	case *keys.ECP256:
		return k.Key(), nil
	case *keys.ECP384:
		return k.Key(), nil
	case *keys.ECK256:
		return nil, ErrEncryptUnsupportedKey
	default:
		return nil, ErrUnsupportedFormat
	}
}

type pkixAlgorithm = pkix.AlgorithmIdentifier

func rsaAlgorithmIdentifier() (pkixAlgorithm, error) {
	// RSA algorithm parameters are an explicit ASN.1 NULL.
	return pkixAlgorithm{
		Algorithm:  oidRSA,
		Parameters: asn1.NullRawValue,
	}, nil
}

func ecAlgorithmIdentifier(curve jose.EllipticCurve) (pkixAlgorithm, error) {
	params, err := asn1.Marshal(oidByCurve(curve))
	if err != nil {
		return pkixAlgorithm{}, fmt.Errorf("encoding: failed to marshal curve OID: %w", err)
	}
	return pkixAlgorithm{
		Algorithm:  oidEC,
		Parameters: asn1.RawValue{FullBytes: params},
	}, nil
}

// marshalSEC1 serializes an ECDSA key on a stdlib curve as a SEC1
// ECPrivateKey. withOID controls whether the named curve OID is embedded;
// it is omitted when nesting inside PKCS#8, where the outer algorithm
// identifier names the curve.
func marshalSEC1(curve jose.EllipticCurve, key *ecdsa.PrivateKey, withOID bool) ([]byte, error) {
	byteLen := (key.Curve.Params().BitSize + 7) / 8

	scalar := make([]byte, byteLen)
	key.D.FillBytes(scalar)
	defer Zeroize(scalar)

	pub := elliptic.Marshal(key.Curve, key.X, key.Y)

	return marshalSEC1Raw(curve, scalar, pub, withOID)
}

// marshalSEC1K256 serializes a secp256k1 key as a SEC1 ECPrivateKey.
func marshalSEC1K256(key *keys.ECK256, withOID bool) ([]byte, error) {
	scalar := key.Key().Serialize()
	defer Zeroize(scalar)

	pub := key.Key().PubKey().SerializeUncompressed()

	return marshalSEC1Raw(jose.CurveSecp256k1, scalar, pub, withOID)
}

// sec1PrivateKeyDER is the marshaling counterpart of sec1PrivateKey,
// carrying the named curve as an OID so optional zero values are omitted
// the way crypto/x509 emits them.
type sec1PrivateKeyDER struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

func marshalSEC1Raw(curve jose.EllipticCurve, scalar, pub []byte, withOID bool) ([]byte, error) {
	raw := sec1PrivateKeyDER{
		Version:    1,
		PrivateKey: scalar,
		PublicKey:  asn1.BitString{Bytes: pub, BitLength: len(pub) * 8},
	}

	if withOID {
		raw.NamedCurveOID = oidByCurve(curve)
	}

	der, err := asn1.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding: failed to marshal SEC1 key: %w", err)
	}
	return der, nil
}
