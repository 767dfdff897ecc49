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

// Package encoding loads and serializes asymmetric private keys across
// the on-disk encodings used for JOSE signing keys: PEM and raw DER
// containers carrying PKCS#1, PKCS#8 (plain or encrypted) and SEC1
// structures.
//
// Every error is a typed value returned to the caller; nothing is logged
// or recovered internally. A key loads completely or not at all.
package encoding

import (
	"encoding/pem"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

// PEM labels recognized by the loader.
const (
	PEMTypeRSAPrivateKey       = "RSA PRIVATE KEY"
	PEMTypeECPrivateKey        = "EC PRIVATE KEY"
	PEMTypePrivateKey          = "PRIVATE KEY"
	PEMTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
)

// Load decodes an unencrypted PEM or DER encoded private key.
//
// If the input is valid UTF-8 it is first tried as PEM; a malformed PEM
// document falls through to DER decoding of the raw bytes, while any
// other PEM-path error (wrong label, encrypted key) is returned as is.
func Load(data []byte) (keys.PrivateKey, error) {
	if utf8.Valid(data) {
		key, err := LoadPEM(data)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrPEMDecode) {
			return nil, err
		}
	}

	return LoadDER(data)
}

// LoadEncrypted decodes an encrypted PEM or DER encoded private key,
// decrypting it with the given password. The same PEM-before-DER
// precedence as Load applies.
func LoadEncrypted(data, password []byte) (keys.PrivateKey, error) {
	if utf8.Valid(data) {
		key, err := LoadEncryptedPEM(data, password)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrPEMDecode) {
			return nil, err
		}
	}

	return LoadEncryptedDER(data, password)
}

// LoadPEM decodes an unencrypted private key from a PEM document,
// dispatching on the PEM label.
//
// Returns ErrEncrypted for the encrypted PKCS#8 label (use LoadEncrypted
// instead) and an UnsupportedPEMLabelError for any unrecognized label.
func LoadPEM(data []byte) (keys.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrPEMDecode
	}

	switch block.Type {
	case PEMTypeRSAPrivateKey:
		return parsePKCS1(block.Bytes)

	case PEMTypePrivateKey:
		info, err := parsePKCS8Info(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
		}
		return fromPKCS8Info(info)

	case PEMTypeECPrivateKey:
		return parseSEC1(block.Bytes)

	case PEMTypeEncryptedPrivateKey:
		return nil, ErrEncrypted

	default:
		return nil, &UnsupportedPEMLabelError{Label: block.Type}
	}
}

// LoadDER decodes an unencrypted private key from DER bytes, trying the
// known formats in order: PKCS#8, SEC1, PKCS#1. The first format that
// structurally parses is committed to; its semantic errors are returned
// rather than masked by trying the next format.
//
// Returns ErrEncrypted if the bytes hold an encrypted PKCS#8 container
// and ErrUnsupportedFormat if nothing parses.
func LoadDER(der []byte) (keys.PrivateKey, error) {
	if probeEncryptedPKCS8(der) {
		return nil, ErrEncrypted
	}

	if info, err := parsePKCS8Info(der); err == nil {
		return fromPKCS8Info(info)
	}

	if probeSEC1(der) {
		return parseSEC1(der)
	}

	if probePKCS1(der) {
		return parsePKCS1(der)
	}

	return nil, ErrUnsupportedFormat
}

// LoadEncryptedPEM decodes an encrypted private key from a PEM document,
// decrypting it with the given password.
//
// Any recognized unencrypted label yields ErrUnencrypted, signaling that
// no password is needed for this key.
func LoadEncryptedPEM(data, password []byte) (keys.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrPEMDecode
	}

	switch block.Type {
	case PEMTypeEncryptedPrivateKey:
		return decryptAndLoad(block.Bytes, password)

	case PEMTypeRSAPrivateKey, PEMTypePrivateKey, PEMTypeECPrivateKey:
		return nil, ErrUnencrypted

	default:
		return nil, &UnsupportedPEMLabelError{Label: block.Type}
	}
}

// LoadEncryptedDER decodes an encrypted private key from DER bytes,
// decrypting it with the given password.
//
// If the bytes hold a plain PKCS#8, SEC1 or PKCS#1 structure instead of
// an encrypted container, ErrUnencrypted is returned.
func LoadEncryptedDER(der, password []byte) (keys.PrivateKey, error) {
	if probeEncryptedPKCS8(der) {
		return decryptAndLoad(der, password)
	}

	if probePKCS8(der) || probeSEC1(der) || probePKCS1(der) {
		return nil, ErrUnencrypted
	}

	return nil, ErrUnsupportedFormat
}

// decryptAndLoad decrypts an EncryptedPrivateKeyInfo and re-runs the
// unencrypted DER loader over the plaintext, wrapping any resulting error
// to mark that it occurred inside the encrypted container.
func decryptAndLoad(der, password []byte) (keys.PrivateKey, error) {
	plain, err := decryptPKCS8(der, password)
	if err != nil {
		return nil, err
	}
	defer Zeroize(plain)

	key, err := LoadDER(plain)
	if err != nil {
		return nil, &InEncryptedError{Inner: err}
	}
	return key, nil
}
