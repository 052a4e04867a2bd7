package types

// AuthKind tags the outcome of a password verification.
type AuthKind int

const (
	// AuthDenied: the attempt limit was reached without a match.
	AuthDenied AuthKind = iota
	// AuthGranted: the password matched and the lock was released.
	AuthGranted
	// AuthCredentialHash: the password matched in credential-only mode; Hash
	// carries the stored digest and the lock was not touched.
	AuthCredentialHash
	// AuthCreated: no credential existed, so the user was sent through
	// password creation instead.
	AuthCreated
)

func (k AuthKind) String() string {
	switch k {
	case AuthDenied:
		return "denied"
	case AuthGranted:
		return "granted"
	case AuthCredentialHash:
		return "credential_hash"
	case AuthCreated:
		return "created"
	default:
		return "unknown"
	}
}

type AuthResult struct {
	Kind AuthKind
	Hash string // set only for AuthCredentialHash
}

func Denied() AuthResult  { return AuthResult{Kind: AuthDenied} }
func Granted() AuthResult { return AuthResult{Kind: AuthGranted} }
func Created() AuthResult { return AuthResult{Kind: AuthCreated} }

func CredentialHash(hash string) AuthResult {
	return AuthResult{Kind: AuthCredentialHash, Hash: hash}
}
