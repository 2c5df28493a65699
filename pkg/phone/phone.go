package phone

import (
	"errors"
	"strings"
)

// ErrInvalid reports a phone number that cannot be normalized into E.164.
var ErrInvalid = errors.New("invalid phone number")

// Normalize best-effort normalizes a Brazilian phone number to +55XXXXXXXXXXX.
// Separators are stripped, a bare 55 prefix gains a +, leading zeros are
// dropped, and 10-11 digit local numbers are prefixed with +55. WhatsApp JIDs
// arrive without the + so "5511999999999" and "+55 (11) 99999-9999" normalize
// to the same value.
func Normalize(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	for _, ch := range []string{" ", "(", ")", "-", "."} {
		p = strings.ReplaceAll(p, ch, "")
	}
	if p == "" {
		return "", ErrInvalid
	}

	if strings.HasPrefix(p, "55") && !strings.HasPrefix(p, "+") {
		p = "+" + p
	}
	p = strings.TrimLeft(p, "0")

	digits := digitsOf(p)
	if len(digits) < 10 {
		return "", ErrInvalid
	}
	if !strings.HasPrefix(p, "+") && (len(digits) == 10 || len(digits) == 11) {
		p = "+55" + digits
	}
	if !strings.HasPrefix(p, "+") {
		return "", ErrInvalid
	}
	if rest := digitsOf(p[1:]); rest != p[1:] {
		return "", ErrInvalid
	}
	return p, nil
}

// FromJID extracts and normalizes the phone from a WhatsApp remote JID such
// as "5511999999999@s.whatsapp.net". Group JIDs ("@g.us") are rejected.
func FromJID(jid string) (string, error) {
	if strings.Contains(jid, "@g.us") {
		return "", ErrInvalid
	}
	number, _, _ := strings.Cut(jid, "@")
	return Normalize(number)
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
