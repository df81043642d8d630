// Package identity derives the stable dedup keys for ingested articles:
// a per-URL id, a near-duplicate content fingerprint, and a canonical URL.
// All functions are pure.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const (
	idHexLen          = 24
	fingerprintHexLen = 16

	// fingerprintLead is how many normalized characters feed the fingerprint.
	// Hashing only the lead favors speed and stability of article leads over
	// full-body uniqueness: near-duplicates that diverge early but converge
	// later are not caught.
	fingerprintLead = 500
)

// HashID returns the stable primary key for a URL: the first 24 hex chars of
// the SHA-256 of the raw URL string.
func HashID(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))

	return hex.EncodeToString(sum[:])[:idHexLen]
}

// ContentFingerprint returns a short hash of the normalized leading body text,
// used to catch the same story republished under a different URL. Insensitive
// to case and punctuation.
func ContentFingerprint(text string) string {
	normalized := normalizeText(text)

	if len(normalized) > fingerprintLead {
		normalized = normalized[:fingerprintLead]
	}

	sum := sha256.Sum256([]byte(normalized))

	return hex.EncodeToString(sum[:])[:fingerprintHexLen]
}

// normalizeText lowercases, replaces every non-alphanumeric rune with a space,
// and collapses whitespace runs.
func normalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(text)

	var b strings.Builder

	b.Grow(len(text))

	lastSpace := true

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)

			lastSpace = false

			continue
		}

		if !lastSpace {
			b.WriteByte(' ')

			lastSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}

// CanonicalURL returns the publisher-declared true URL for a page: the
// og:url meta property if present, else a rel=canonical link (resolved
// against rawURL when relative), else rawURL itself.
func CanonicalURL(rawURL string, htmlBody []byte) string {
	if len(htmlBody) == 0 {
		return rawURL
	}

	ogURL, canonical := findCanonicalCandidates(htmlBody)

	if ogURL != "" {
		return ogURL
	}

	if canonical != "" {
		return resolveAgainst(rawURL, canonical)
	}

	return rawURL
}

func findCanonicalCandidates(htmlBody []byte) (ogURL, canonical string) {
	doc, err := html.Parse(strings.NewReader(string(htmlBody)))
	if err != nil {
		return "", ""
	}

	var traverse func(*html.Node)

	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if prop, content := attrPair(n, "property", "content"); strings.EqualFold(prop, "og:url") && content != "" {
					if ogURL == "" {
						ogURL = content
					}
				}
			case "link":
				if rel, href := attrPair(n, "rel", "href"); strings.EqualFold(rel, "canonical") && href != "" {
					if canonical == "" {
						canonical = href
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(doc)

	return ogURL, canonical
}

func attrPair(n *html.Node, keyAttr, valAttr string) (string, string) {
	var key, val string

	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case keyAttr:
			key = attr.Val
		case valAttr:
			val = attr.Val
		}
	}

	return key, val
}

func resolveAgainst(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return base
	}

	return baseURL.ResolveReference(refURL).String()
}
