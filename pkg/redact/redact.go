// Package redact removes secret material from error text before it reaches a
// human-visible surface (UI strings, logs).
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Placeholder replaces redacted material.
const Placeholder = "[REDACTED]"

// minSecretLen guards against degenerate replacements: a one- or two-char
// "secret" would shred unrelated text.
const minSecretLen = 5

var (
	// Secret-bearing query parameters. The parameter name survives so the
	// message stays debuggable.
	queryParamRe = regexp.MustCompile(`(?i)([?&](?:api_key|apikey|access_token|key|token)=)[^&\s"']+`)

	// Bearer-style authorization header values.
	bearerRe = regexp.MustCompile(`(?i)(Bearer\s+)[A-Za-z0-9\-._~+/]+=*`)

	// Vendor API-key headers as they appear in dumped requests or error text.
	apiKeyHeaderRe  = regexp.MustCompile(`(?i)(x-api-key["'\s]*[:=]["'\s]*)[^\s,;"']+`)
	googKeyHeaderRe = regexp.MustCompile(`(?i)(x-goog-api-key["'\s]*[:=]["'\s]*)[^\s,;"']+`)

	// Any URL still carrying a query string.
	urlRe = regexp.MustCompile(`https?://[^\s"'<>]+\?[^\s"'<>]*`)
)

// Redact sanitizes text for display. A known secret value may be supplied; it
// is removed literally when long enough to be unambiguous. The function is
// idempotent and never fails: malformed URLs fall back to a regex-based query
// strip instead of raising.
func Redact(text, secret string) string {
	if text == "" {
		return text
	}

	if len(secret) >= minSecretLen {
		text = strings.ReplaceAll(text, secret, Placeholder)
	}

	text = queryParamRe.ReplaceAllString(text, "${1}"+Placeholder)
	text = bearerRe.ReplaceAllString(text, "${1}"+Placeholder)
	text = apiKeyHeaderRe.ReplaceAllString(text, "${1}"+Placeholder)
	text = googKeyHeaderRe.ReplaceAllString(text, "${1}"+Placeholder)
	text = urlRe.ReplaceAllStringFunc(text, maskURLQuery)

	return text
}

// maskURLQuery replaces the query string of a URL with the placeholder,
// preserving scheme, host, and path. Unparseable URLs are stripped with plain
// string surgery so the caller never sees an error.
func maskURLQuery(raw string) string {
	u, err := url.Parse(raw)
	if err == nil {
		if queryAlreadyClean(u.RawQuery) {
			return raw
		}

		u.RawQuery = Placeholder
		u.Fragment = ""

		return u.String()
	}

	// Fallback: cut everything after the first "?".
	if i := strings.Index(raw, "?"); i >= 0 {
		if queryAlreadyClean(raw[i+1:]) {
			return raw
		}

		return raw[:i+1] + Placeholder
	}

	return raw
}

// queryAlreadyClean reports whether a query string carries no value that
// still needs masking: it is empty, the placeholder itself, or made of pairs
// whose values were all redacted on an earlier pass. Keeping such queries
// intact is what makes Redact idempotent.
func queryAlreadyClean(query string) bool {
	if query == "" || query == Placeholder {
		return true
	}

	for pair := range strings.SplitSeq(query, "&") {
		_, value, found := strings.Cut(pair, "=")
		if found && value != Placeholder {
			return false
		}
	}

	return true
}
