// Package secret holds credential wrappers that never render their value.
package secret

// Token wraps a sensitive token string to prevent accidental logging.
//
// Token implements fmt.Stringer to return "[REDACTED]" instead of the actual
// value, so an RBAC token placed in a log message, an error string, or the
// debug output of a config dump never leaks.
//
//	token := secret.NewToken("0123abcd")
//	fmt.Println(token)    // prints: [REDACTED]
//	header := token.Value() // returns: "0123abcd"
type Token struct {
	value string
}

// NewToken creates a new Token wrapping the given value.
func NewToken(value string) Token {
	return Token{value: value}
}

// Value returns the actual token value.
// Use this method only when the token needs to be sent in an HTTP header.
// Never log the result of this method.
func (t Token) Value() string {
	return t.value
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (t Token) GoString() string {
	return "secret.Token{[REDACTED]}"
}

// IsEmpty returns true if the token value is empty.
func (t Token) IsEmpty() bool {
	return t.value == ""
}

// MarshalText implements encoding.TextMarshaler.
func (t Token) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// MarshalJSON implements json.Marshaler.
func (t Token) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}
