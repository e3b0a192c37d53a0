package uuidmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeDefaultHashFunc(t *testing.T) {
	f := makeDefaultHashFunc()

	k1 := testKey(1)
	k2 := testKey(2)

	require.Equal(t, f(k1), f(k1), "hash must be deterministic per table")
	assert.NotEqual(t, f(k1), f(k2))
}

func TestKeyBitsHash(t *testing.T) {
	var k Key
	for i := range k {
		k[i] = byte(i)
	}

	// 0x0706050403020100 ^ 0x0F0E0D0C0B0A0908
	assert.Equal(t, uint64(0x0808080808080808), KeyBitsHash(k))
	assert.Equal(t, KeyBitsHash(k), KeyBitsHash(k))
	assert.Equal(t, uint64(0), KeyBitsHash(Key{}))
}

func TestHashSplit(t *testing.T) {
	tests := []struct {
		name   string
		input  uint64
		wantH1 uintptr
		wantH2 uint8
	}{
		{
			name:   "Zero value",
			input:  0,
			wantH1: 0,
			wantH2: 0,
		},
		{
			name:   "Max H2 (7 bits)",
			input:  0x7F, // 0111 1111
			wantH1: 0,
			wantH2: 0x7F,
		},
		{
			name:   "First bit of H1",
			input:  1 << 7, // 1000 0000
			wantH1: 1,
			wantH2: 0,
		},
		{
			name:   "Max uint64",
			input:  0xFFFFFFFFFFFFFFFF,
			wantH1: uintptr(0xFFFFFFFFFFFFFFFF >> 7),
			wantH2: 0x7F,
		},
		{
			name:   "Random pattern",
			input:  0xABCD1234567890EF,
			wantH1: uintptr(0xABCD1234567890EF >> 7),
			wantH2: 0xEF & 0x7F, // 0x6F
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1, h2 := hashSplit(tt.input)

			require.Equal(t, tt.wantH1, h1)
			require.Equal(t, tt.wantH2, h2)
		})
	}
}
