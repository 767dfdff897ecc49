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
	"encoding/asn1"
	"errors"
	"fmt"
)

var (
	// ErrPEMDecode is returned when the input is not a well-formed PEM
	// document
	ErrPEMDecode = errors.New("encoding: failed to read PEM document")

	// ErrEncrypted is returned when the key is encrypted and the
	// unencrypted load path was used
	ErrEncrypted = errors.New("encoding: key is encrypted and no password was provided")

	// ErrUnencrypted is returned when the key is not encrypted but the
	// encrypted load path was used
	ErrUnencrypted = errors.New("encoding: key is not encrypted but a password was provided")

	// ErrUnsupportedFormat is returned when bytes match none of the known
	// key formats
	ErrUnsupportedFormat = errors.New("encoding: unsupported format")

	// ErrMultiPrimeRSA is returned for PKCS#1 RSA keys with more than two
	// primes
	ErrMultiPrimeRSA = errors.New("encoding: multi-prime RSA keys are not supported")

	// ErrMissingSEC1Parameters is returned when a SEC1 EC key omits the
	// parameters field entirely
	ErrMissingSEC1Parameters = errors.New("encoding: missing parameters in SEC1 key")

	// ErrMissingSEC1CurveName is returned when a SEC1 EC key carries
	// parameters that are not a named curve
	ErrMissingSEC1CurveName = errors.New("encoding: missing curve name in SEC1 parameters")

	// ErrMissingECParameters is returned when a PKCS#8 EC key omits the
	// named curve from its algorithm identifier
	ErrMissingECParameters = errors.New("encoding: missing EC parameters in PKCS#8 key")

	// ErrInvalidPrivateKey is returned when a structurally valid key
	// carries invalid key material
	ErrInvalidPrivateKey = errors.New("encoding: invalid private key")

	// ErrDecryptionFailed is returned when an encrypted container cannot
	// be decrypted, typically because the password is wrong
	ErrDecryptionFailed = errors.New("encoding: could not decrypt key, bad password or corrupted data")

	// ErrUnsupportedEncryptionScheme is returned when an encrypted
	// container uses a KDF or cipher this package does not implement
	ErrUnsupportedEncryptionScheme = errors.New("encoding: unsupported PKCS#8 encryption scheme")

	// ErrEncryptUnsupportedKey is returned when encrypted encoding is
	// requested for a key type the encrypter cannot represent
	ErrEncryptUnsupportedKey = errors.New("encoding: encrypted encoding is not supported for secp256k1 keys")
)

// UnsupportedPEMLabelError is returned when a PEM document carries a label
// that is not one of the recognized private key labels.
type UnsupportedPEMLabelError struct {
	Label string
}

func (e *UnsupportedPEMLabelError) Error() string {
	return fmt.Sprintf("encoding: unsupported PEM label %q", e.Label)
}

// UnknownCurveOIDError is returned when an EC key names a curve outside
// the supported set (P-256, P-384, secp256k1).
type UnknownCurveOIDError struct {
	OID asn1.ObjectIdentifier
}

func (e *UnknownCurveOIDError) Error() string {
	return fmt.Sprintf("encoding: unknown elliptic curve OID %s", e.OID)
}

// UnknownAlgorithmOIDError is returned when a PKCS#8 key names an
// algorithm other than RSA or EC.
type UnknownAlgorithmOIDError struct {
	OID asn1.ObjectIdentifier
}

func (e *UnknownAlgorithmOIDError) Error() string {
	return fmt.Sprintf("encoding: unknown algorithm OID %s", e.OID)
}

// InEncryptedError wraps an error raised while decoding the payload of an
// encrypted container, preserving the inner error.
type InEncryptedError struct {
	Inner error
}

func (e *InEncryptedError) Error() string {
	return fmt.Sprintf("encoding: could not decode encrypted payload: %v", e.Inner)
}

// Unwrap returns the inner error.
func (e *InEncryptedError) Unwrap() error {
	return e.Inner
}
