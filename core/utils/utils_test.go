package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}
	if !ComparePassword(hash, "s3cret-pass") {
		t.Fatal("ComparePassword rejected the right password")
	}
	if ComparePassword(hash, "wrong") {
		t.Fatal("ComparePassword accepted a wrong password")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := map[string]string{
		"Ann@Example.COM":    "Ann@example.com",
		"  bob@example.com ": "bob@example.com",
		"no-at-sign":         "no-at-sign",
	}
	for in, want := range tests {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseUUID(t *testing.T) {
	if _, ok := ParseUUID("3f8c7e1a-0000-4000-8000-000000000001"); !ok {
		t.Fatal("valid uuid rejected")
	}
	if _, ok := ParseUUID("42"); ok {
		t.Fatal("invalid uuid accepted")
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 12 || a == b {
		t.Fatalf("GenerateID = %q, %q", a, b)
	}
}
