package internal

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"
)

// LoadCertificate reads the first certificate block of a PEM file.
func LoadCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to parse certificate PEM")
	}
	return x509.ParseCertificate(block.Bytes)
}

// CheckServingCert refuses a certificate that is expired or not yet valid at now.
func CheckServingCert(path string, now time.Time) (*x509.Certificate, error) {
	cert, err := LoadCertificate(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if now.After(cert.NotAfter) {
		return nil, fmt.Errorf("certificate %s expired at %s", path, cert.NotAfter.Format(time.RFC3339))
	}
	if now.Before(cert.NotBefore) {
		return nil, fmt.Errorf("certificate %s not valid before %s", path, cert.NotBefore.Format(time.RFC3339))
	}
	return cert, nil
}
