// Package intake turns a submitted booking form into a persisted
// BookingRequest: read, validate, map the service, compose the message
// and store it.
package intake

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"
)

// Form field names posted by the booking page.
const (
	FieldFullName      = "full_name"
	FieldPhone         = "phone_number"
	FieldEmail         = "email"
	FieldCity          = "city"
	FieldBedrooms      = "bedrooms"
	FieldBathrooms     = "bathrooms"
	FieldSquareFootage = "square_footage"
	FieldServiceType   = "service_type"
	FieldCleanDate     = "clean_date"
	FieldSource        = "source"
	FieldRequirements  = "requirements"
	FieldIsFlexible    = "is_flexible"
)

// Form is a decoded urlencoded body.  Repeated keys keep their first value.
type Form map[string]string

// Get returns the raw value for key, or "" when absent.
func (f Form) Get(key string) string { return f[key] }

// has reports whether key carries something other than whitespace.
func (f Form) has(key string) bool {
	return strings.TrimFunc(f[key], isFormSpace) != ""
}

// isFormSpace matches the whitespace browsers strip from form input: ASCII
// controls \t through \r, every Unicode separator and the byte order mark.
func isFormSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// ParseForm decodes an application/x-www-form-urlencoded payload.  Pairs are
// split on '&' only, so a raw ';' stays part of its value, and a '%' that
// does not start a valid escape is kept literally.  Malformed input never
// discards the rest of the form.
func ParseForm(body string) Form {
	form := make(Form)
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = unescape(key)
		if _, seen := form[key]; !seen {
			form[key] = unescape(value)
		}
	}
	return form
}

// unescape decodes '+' and %XX sequences, leaving broken escapes as typed.
// Bytes that do not form valid UTF-8 become U+FFFD.
func unescape(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if v, err := url.PathUnescape(s); err == nil {
		return strings.ToValidUTF8(v, "\uFFFD")
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if dec, err := hex.DecodeString(s[i+1 : i+3]); err == nil {
				b.WriteByte(dec[0])
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return strings.ToValidUTF8(b.String(), "\uFFFD")
}

// ReadForm reads body to the end and decodes it.  It returns ctx.Err() if
// the context is done before the body is complete; the pending read is left
// to fail on the connection's read deadline or when the body is closed.
func ReadForm(ctx context.Context, body io.Reader) (Form, error) {
	type result struct {
		buf []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		buf, err := io.ReadAll(body)
		done <- result{buf: buf, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read body: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("read body: %w", r.err)
		}
		return ParseForm(string(r.buf)), nil
	}
}
