package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and checks salted bcrypt digests. Cost is fixed at
// construction; hashing embeds a fresh salt on every call so two hashes of
// the same password never compare equal.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher, falling back to bcrypt's default cost
// when the configured value is out of range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt digest of the plaintext.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored digest. Malformed
// digests fail closed: the answer is false, never an error escaping into
// caller flow.
func (h *PasswordHasher) Verify(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
