package uuidmap

import "github.com/google/uuid"

// Key is the opaque 128-bit identifier addressing a value in a Table.
// Keys are drawn at random and carry no meaning beyond identity; in
// particular a key says nothing about where its value currently lives.
type Key [16]byte

// KeyFunc produces the keys handed out by Table.Add. The default is NewKey;
// override it (see WithKeyFunc) to make key generation deterministic in tests.
type KeyFunc func() Key

// NewKey returns a fresh random key (a v4 UUID under the hood).
// Collisions are not prevented, only statistically improbable.
func NewKey() Key {
	return Key(uuid.New())
}

// ParseKey parses the canonical textual form produced by Key.String.
func ParseKey(s string) (Key, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Key{}, err
	}

	return Key(u), nil
}

// String renders the key in canonical UUID form.
func (k Key) String() string {
	return uuid.UUID(k).String()
}
