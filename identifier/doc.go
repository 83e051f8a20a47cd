// Package identifier implements the codec between the canonical textual form of a
// bridge identifier (five hyphenated hex groups, 8-4-4-4-12) and its 16-byte binary
// form.
//
// ID is the only way identifiers circulate inside this module. Values are built
// through Parse, FromBytes or New; a malformed input yields a *FormatError and the
// zero ID, never a partially decoded value.
//
// Example:
//
//	id, err := identifier.Parse("a1b2c3d4-0000-0000-0000-000000000001")
//	if err != nil {
//		var formatErr *identifier.FormatError
//		errors.As(err, &formatErr)
//	}
//	raw := id.Bytes()                       // [16]byte
//	same := identifier.Encode(raw) == id.String()
package identifier
