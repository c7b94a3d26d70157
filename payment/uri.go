package payment

import (
	"net/url"
	"strings"
)

// Scheme is the URI scheme for EIP-681-style payment requests.
const Scheme = "ethereum"

// BuildURI composes a payment-request URI from an already-validated address,
// an integer wei amount, and an optional note. The note, when non-empty
// after trimming, is appended as a percent-encoded message parameter.
//
// Output shape: ethereum:<address>?value=<wei>[&message=<encoded-note>].
func BuildURI(address, wei, note string) string {
	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteByte(':')
	b.WriteString(address)
	b.WriteString("?value=")
	b.WriteString(wei)

	note = strings.TrimSpace(note)
	if note != "" {
		b.WriteString("&message=")
		b.WriteString(escapeComponent(note))
	}

	return b.String()
}

// escapeComponent percent-encodes s as a URI query component. QueryEscape
// handles everything except that it emits "+" for spaces, which wallet
// parsers read literally, so spaces become %20 instead.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
