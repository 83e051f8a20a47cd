package identifier

import (
	"fmt"

	"github.com/google/uuid"
)

// Size is the length of the binary form.
const Size = 16

// canonicalLength is the length of the 8-4-4-4-12 textual form.
const canonicalLength = 36

// ID is a 128-bit bridge identifier. The zero value is the nil identifier and
// never names a bridge.
type ID struct {
	value uuid.UUID
}

// Nil is the zero identifier.
var Nil = ID{}

// New returns a random (version 4) identifier.
func New() ID {
	return ID{value: uuid.New()}
}

// Parse decodes the canonical textual form. Upper and lower case hex digits are
// accepted; braces, the urn prefix and the compact 32 digit form are rejected.
func Parse(text string) (ID, error) {
	if len(text) != canonicalLength {
		return Nil, &FormatError{Input: text, Reason: fmt.Sprintf("expected %d characters, got %d", canonicalLength, len(text))}
	}
	for _, pos := range [...]int{8, 13, 18, 23} {
		if text[pos] != '-' {
			return Nil, &FormatError{Input: text, Reason: fmt.Sprintf("expected '-' at offset %d", pos)}
		}
	}
	value, err := uuid.Parse(text)
	if err != nil {
		return Nil, &FormatError{Input: text, Reason: "invalid hex digit", Err: err}
	}
	return ID{value: value}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests and constants.
func MustParse(text string) ID {
	ret, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return ret
}

// FromBytes builds an identifier from its binary form.
func FromBytes(data []byte) (ID, error) {
	if len(data) != Size {
		return Nil, &FormatError{Input: fmt.Sprintf("%x", data), Reason: fmt.Sprintf("expected %d bytes, got %d", Size, len(data))}
	}
	value, err := uuid.FromBytes(data)
	if err != nil {
		return Nil, &FormatError{Input: fmt.Sprintf("%x", data), Reason: "invalid binary form", Err: err}
	}
	return ID{value: value}, nil
}

// Encode renders a binary identifier in canonical lower case form.
func Encode(data [Size]byte) string {
	return uuid.UUID(data).String()
}

// Decode parses the canonical form into its binary representation.
func Decode(text string) ([Size]byte, error) {
	ret, err := Parse(text)
	if err != nil {
		return [Size]byte{}, err
	}
	return ret.Bytes(), nil
}

// String returns the canonical lower case form.
func (i ID) String() string {
	return i.value.String()
}

// Bytes returns the binary form.
func (i ID) Bytes() [Size]byte {
	return i.value
}

// IsZero reports whether i is the nil identifier.
func (i ID) IsZero() bool {
	return i.value == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so identifiers cross JSON and
// YAML boundaries in canonical form.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same strictness as Parse.
func (i *ID) UnmarshalText(text []byte) error {
	ret, err := Parse(string(text))
	if err != nil {
		return err
	}
	*i = ret
	return nil
}
