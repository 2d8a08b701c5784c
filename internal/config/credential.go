package config

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// LoadCertificate opens a PEM-encoded X.509 certificate file. Any failure,
// whether I/O or parse, is wrapped into a CredentialError carrying the path.
func LoadCertificate(path string) (*x509.Certificate, error) {
	block, err := loadPEMBlock(path)
	if err != nil {
		return nil, err
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, &CredentialError{Path: path, Cause: err}
	}
	return cert, nil
}

// LoadTrustedCertificate opens an authority certificate. The parse is the
// same as LoadCertificate; the separate entry point keeps authority
// certificates on their own call site so trust-specific checks have a home.
func LoadTrustedCertificate(path string) (*x509.Certificate, error) {
	return LoadCertificate(path)
}

// LoadPrivateKey opens a PEM-encoded private key file, accepting PKCS#8,
// PKCS#1 (RSA) and SEC1 (EC) encodings. The returned signer is an opaque
// handle; no cryptographic operation is performed here.
func LoadPrivateKey(path string) (crypto.Signer, error) {
	block, err := loadPEMBlock(path)
	if err != nil {
		return nil, err
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		signer, ok := key.(crypto.Signer)
		if !ok {
			return nil, &CredentialError{Path: path, Cause: fmt.Errorf("unsupported key type %T", key)}
		}
		return signer, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	return nil, &CredentialError{Path: path, Cause: errors.New("unrecognized private key format")}
}

func loadPEMBlock(path string) (*pem.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CredentialError{Path: path, Cause: err}
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, &CredentialError{Path: path, Cause: errors.New("no PEM data found")}
	}
	return block, nil
}
