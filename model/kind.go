package model

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two bridge flavours. The numeric values match the
// legacy wire encoding (0 sender, 1 receiver).
type Kind int

const (
	Sender Kind = iota
	Receiver
)

// Kinds lists every kind in display order.
var Kinds = []Kind{Sender, Receiver}

func (k Kind) String() string {
	switch k {
	case Sender:
		return "sender"
	case Receiver:
		return "receiver"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsValid reports whether k is Sender or Receiver.
func (k Kind) IsValid() bool {
	return k == Sender || k == Receiver
}

// ParseKind accepts the textual form ("sender", "receiver", case insensitive)
// and the legacy numeric form ("0", "1").
func ParseKind(text string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "sender", "0":
		return Sender, nil
	case "receiver", "1":
		return Receiver, nil
	}
	return 0, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", text)}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %d", int(k))}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	ret, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = ret
	return nil
}

// UnmarshalJSON additionally accepts a bare JSON number.
func (k *Kind) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)
	return k.UnmarshalText([]byte(text))
}
