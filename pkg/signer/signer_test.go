package signer

import "testing"

func TestSignRoundTrip(t *testing.T) {
	s, err := New([]byte("server-secret"))
	if err != nil {
		t.Fatal(err)
	}

	msg := "v1|round-1|deal|85000|2:100|5:7500"
	sig := s.Sign(msg)

	if !s.Verify(msg, sig) {
		t.Fatalf("signature did not verify against its own message")
	}
	if s.Sign(msg) != sig {
		t.Fatalf("signing is not deterministic")
	}
}

func TestSignDetectsTampering(t *testing.T) {
	s, err := New([]byte("server-secret"))
	if err != nil {
		t.Fatal(err)
	}

	sig := s.Sign("v1|round-1|deal|85000")

	if s.Verify("v1|round-1|deal|85001", sig) {
		t.Fatalf("mutated payout verified")
	}
	if s.Verify("v1|round-2|deal|85000", sig) {
		t.Fatalf("mutated round id verified")
	}
	if s.Verify("v1|round-1|deal|85000", sig+"00") {
		t.Fatalf("mutated signature verified")
	}
}

func TestDifferentSecretsDisagree(t *testing.T) {
	a, _ := New([]byte("secret-a"))
	b, _ := New([]byte("secret-b"))

	msg := "v1|round-1|open_case|1"
	if b.Verify(msg, a.Sign(msg)) {
		t.Fatalf("signature verified under a different secret")
	}
}

func TestEmptySecretRejected(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("empty secret must be rejected")
	}
}
