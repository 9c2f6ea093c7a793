package password

import "testing"

func TestHashVerifyRoundTrip(t *testing.T) {
	hash, err := Hash("Aa1!aaaa")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "Aa1!aaaa" {
		t.Fatalf("hash equals plaintext")
	}
	if !Verify("Aa1!aaaa", hash) {
		t.Fatalf("correct password did not verify")
	}
	if Verify("Aa1!aaab", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestHashSalted(t *testing.T) {
	h1, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical")
	}
	if !Verify("s3cret", h1) || !Verify("s3cret", h2) {
		t.Fatalf("salted hashes did not verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
	if Verify("anything", "") {
		t.Fatalf("empty hash verified")
	}
}
