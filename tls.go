package quickserve

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"time"

	"github.com/ghetzel/go-stockutil/sliceutil"
)

var DefaultCertificateLifetime = 365 * 24 * time.Hour

// Generate a self-signed certificate and private key (both PEM-encoded) valid for "localhost" and any
// additional hostnames or IP addresses given.
func GenerateCertPair(hosts ...string) ([]byte, []byte, error) {
	var serial *big.Int
	var err error

	if serial, err = rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128)); err != nil {
		return nil, nil, err
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)

	if err != nil {
		return nil, nil, err
	}

	var now = time.Now()
	var template = x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   `localhost`,
			Organization: []string{ApplicationName},
		},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(DefaultCertificateLifetime),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	for _, host := range sliceutil.UniqueStrings(append([]string{`localhost`}, hosts...)) {
		if host == `` {
			continue
		} else if ip := net.ParseIP(host); ip != nil {
			if !ip.IsUnspecified() {
				template.IPAddresses = append(template.IPAddresses, ip)
			}
		} else {
			template.DNSNames = append(template.DNSNames, host)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)

	if err != nil {
		return nil, nil, err
	}

	keyDer, err := x509.MarshalECPrivateKey(key)

	if err != nil {
		return nil, nil, err
	}

	var certPEM = pem.EncodeToMemory(&pem.Block{Type: `CERTIFICATE`, Bytes: der})
	var keyPEM = pem.EncodeToMemory(&pem.Block{Type: `EC PRIVATE KEY`, Bytes: keyDer})

	return certPEM, keyPEM, nil
}

// Generate a self-signed certificate ready for use by a TLS listener.
func GenerateCertificate(hosts ...string) (tls.Certificate, error) {
	if certPEM, keyPEM, err := GenerateCertPair(hosts...); err == nil {
		return tls.X509KeyPair(certPEM, keyPEM)
	} else {
		return tls.Certificate{}, err
	}
}
