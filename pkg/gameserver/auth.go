package gameserver

// Identity is the result of verifying a client's token. Verification
// itself is external; the server consumes identities, it never mints
// them.
type Identity struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

// TokenVerifier verifies a bearer token and returns the identity it
// asserts
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// VerifierFunc adapts a function to the TokenVerifier interface
type VerifierFunc func(token string) (*Identity, error)

// Verify implements TokenVerifier
func (f VerifierFunc) Verify(token string) (*Identity, error) {
	return f(token)
}
