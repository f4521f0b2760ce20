package upi

import "strings"

// URIPrefix is the scheme and action of a UPI payment deep link.
const URIPrefix = "upi://pay?"

// BuildURI turns a validated request into a UPI deep link. Parameters always
// appear in the order pa, pn, am, tn and absent optionals are left out.
// The payee address is inserted verbatim; name and remark are escaped like
// ECMAScript's encodeURIComponent so scanning apps see the same bytes.
func BuildURI(r PaymentRequest) string {
	var b strings.Builder
	b.WriteString(URIPrefix)
	b.WriteString("pa=")
	b.WriteString(r.payeeAddress)
	b.WriteString("&pn=")
	b.WriteString(EncodeComponent(r.payeeName))
	if r.hasAmount {
		b.WriteString("&am=")
		b.WriteString(FormatAmount(r.amount))
	}
	if r.remark != "" {
		b.WriteString("&tn=")
		b.WriteString(EncodeComponent(r.remark))
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// EncodeComponent percent-encodes every byte of s except the URI component
// unreserved set A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func EncodeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
			continue
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func shouldEscape(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}
