// Package codec percent-encodes and decodes individual query token values.
//
// Values follow application/x-www-form-urlencoded rules: a space encodes as
// "+" and "+" decodes back to a space.
package codec

import (
	"net/url"
	"strings"
)

// Decode percent-decodes a single form value.
// Values with neither '%' nor '+' are returned as is. Malformed escapes
// return the input unchanged.
//
// A '+' alone is enough to trigger decoding, so "x+y" decodes to "x y"
// even without any '%'. This keeps values written by Encode round-tripping.
func Decode(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Encode percent-encodes a single form value.
func Encode(s string) string {
	return url.QueryEscape(s)
}

// JoinEncoded encodes each value and joins the results with commas.
// Commas inside values are escaped, so the result splits back cleanly.
func JoinEncoded(values []string) string {
	encoded := make([]string, len(values))
	for i, v := range values {
		encoded[i] = Encode(v)
	}
	return strings.Join(encoded, ",")
}
