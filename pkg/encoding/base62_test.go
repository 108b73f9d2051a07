package encoding

import (
	"bytes"
	"testing"
)

func TestBase62RoundTrip(t *testing.T) {
	original := []byte{0x01, 0x02, 0x03, 0xff, 0xee, 0xdd}
	encoded := EncodeBase62(original)
	if encoded == "" {
		t.Fatal("expected a non-empty encoding")
	}

	decoded, err := DecodeBase62(encoded)
	if err != nil {
		t.Fatalf("unable to decode: %v", err)
	}
	if !bytes.Equal(original, decoded) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, original)
	}
}
