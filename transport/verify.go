package transport

import (
	"crypto/tls"
	"crypto/x509"
)

// insecureSignatureSchemes documents the handshake signature schemes the
// skip-verification trust policy is specified to accept, carried over from
// the original Rust verifier's supported_verify_schemes() list. Go's
// crypto/tls has no client-side knob to narrow which schemes the handshake
// itself will accept — InsecureSkipVerify below is what makes the
// handshake accept any certificate — so this slice is documentation/parity
// rather than something wired into tls.Config.
var insecureSignatureSchemes = []tls.SignatureScheme{
	tls.Ed25519,
	tls.PSSWithSHA256,
	tls.PSSWithSHA384,
	tls.PSSWithSHA512,
	tls.ECDSAWithP256AndSHA256,
	tls.ECDSAWithP384AndSHA384,
	tls.ECDSAWithP521AndSHA512,
}

// clientTLSConfig builds the tls.Config for d: a trust-anything verifier
// when d.Insecure, otherwise the platform's native root store (the zero
// value of RootCAs already means "use the system pool").
func clientTLSConfig(d Descriptor) *tls.Config {
	cfg := &tls.Config{ServerName: d.ServerName}
	if d.Insecure {
		cfg.InsecureSkipVerify = true
		cfg.VerifyPeerCertificate = func(_ [][]byte, _ [][]*x509.Certificate) error {
			return nil
		}
	}
	return cfg
}
