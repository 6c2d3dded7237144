package auth

import (
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "simple password",
			password: "secret1",
		},
		{
			name:     "password with symbols",
			password: "P@ssw0rd!#$",
		},
		{
			name:     "unicode password",
			password: "pásswörd123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			if hash == "" {
				t.Error("Hash() returned empty string")
			}
			if hash == tt.password {
				t.Error("Hash() returned the original password")
			}

			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() returned false for correct password")
			}
		})
	}
}

func TestPasswordHasher_VerifyRejects(t *testing.T) {
	hasher := NewPasswordHasher()
	password := "testpassword123"

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
	}{
		{
			name:     "wrong password",
			password: "wrongpassword",
			hash:     hash,
		},
		{
			name:     "empty password",
			password: "",
			hash:     hash,
		},
		{
			name:     "similar password",
			password: password + "1",
			hash:     hash,
		},
		{
			name:     "malformed digest",
			password: password,
			hash:     "not-a-bcrypt-digest",
		},
		{
			name:     "empty digest",
			password: password,
			hash:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hasher.Verify(tt.password, tt.hash) {
				t.Error("Verify() = true, want false")
			}
		})
	}
}

func TestPasswordHasher_UniqueHashes(t *testing.T) {
	hasher := NewPasswordHasher()
	password := "samepassword"

	hash1, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	hash2, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Same password must produce different digests (random salt).
	if hash1 == hash2 {
		t.Error("Hash() produced identical digests for the same password")
	}

	if !hasher.Verify(password, hash1) {
		t.Error("Verify() failed for hash1")
	}
	if !hasher.Verify(password, hash2) {
		t.Error("Verify() failed for hash2")
	}
}
