package domain

// TokenVerifier validates a bearer token and returns the acting user.
type TokenVerifier interface {
	Verify(token string) (Actor, error)
}
