package coltype

import "golang.org/x/text/encoding/charmap"

// Encoding selects how raw field bytes are decoded into a UTF-8 string.
type Encoding int

const (
	// UTF8 copies field bytes verbatim; the source is assumed to already
	// be valid UTF-8.
	UTF8 Encoding = iota
	// LossyLatin1 treats field bytes as ISO-8859-1 and transcodes them to
	// UTF-8, replacing undecodable bytes with the Unicode replacement
	// character.
	LossyLatin1
)

var latin1Decoder = charmap.ISO8859_1.NewDecoder()

// decodeString converts raw field bytes to a UTF-8 string under enc.
func decodeString(raw []byte, enc Encoding) string {
	if enc == UTF8 {
		return string(raw)
	}
	out, err := latin1Decoder.Bytes(raw)
	if err != nil {
		// ISO-8859-1 maps every byte to a valid rune, so Bytes only
		// fails on pathological transform state; fall back to a
		// verbatim copy rather than losing the field.
		return string(raw)
	}
	return string(out)
}
