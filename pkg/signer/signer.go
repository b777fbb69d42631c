// Package signer computes keyed digests over terminal game outcomes so
// they can be verified after the fact. It authenticates outcomes, not
// requests.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

type Signer struct {
	secret []byte
}

func New(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("signer: empty secret")
	}
	return &Signer{secret: secret}, nil
}

// Sign returns the hex HMAC-SHA256 of the canonical message.
func (s *Signer) Sign(msg string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the digest and compares in constant time.
func (s *Signer) Verify(msg, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(msg))
	return hmac.Equal(mac.Sum(nil), want)
}
