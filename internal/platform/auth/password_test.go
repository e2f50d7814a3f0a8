package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	for _, plain := range []string{"pw123456", "correct horse battery staple", "ü£ø-unicode"} {
		digest, err := HashPassword(plain)
		if err != nil {
			t.Fatalf("HashPassword(%q) error: %v", plain, err)
		}
		if digest == plain {
			t.Error("digest must not equal plaintext")
		}
		if !CheckPassword(plain, digest) {
			t.Errorf("CheckPassword(%q) = false, want true", plain)
		}
		if CheckPassword(plain+"x", digest) {
			t.Errorf("CheckPassword(%q) = true for wrong password", plain+"x")
		}
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := HashPassword("pw123456")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("pw123456")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected different digests for the same plaintext across calls")
	}
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$garbage"} {
		if CheckPassword("pw123456", digest) {
			t.Errorf("CheckPassword with malformed digest %q = true, want false", digest)
		}
	}
}
