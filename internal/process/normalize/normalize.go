// Package normalize canonicalizes the tag vocabularies attached to briefs:
// region codes, company names, named storms, and regulatory sources.
// All functions are pure.
package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// usStates maps lowercase state names and postal abbreviations to US-XX codes.
var usStates = map[string]string{
	"alabama": "US-AL", "alaska": "US-AK", "arizona": "US-AZ", "arkansas": "US-AR",
	"california": "US-CA", "colorado": "US-CO", "connecticut": "US-CT", "delaware": "US-DE",
	"florida": "US-FL", "georgia": "US-GA", "hawaii": "US-HI", "idaho": "US-ID",
	"illinois": "US-IL", "indiana": "US-IN", "iowa": "US-IA", "kansas": "US-KS",
	"kentucky": "US-KY", "louisiana": "US-LA", "maine": "US-ME", "maryland": "US-MD",
	"massachusetts": "US-MA", "michigan": "US-MI", "minnesota": "US-MN", "mississippi": "US-MS",
	"missouri": "US-MO", "montana": "US-MT", "nebraska": "US-NE", "nevada": "US-NV",
	"new hampshire": "US-NH", "new jersey": "US-NJ", "new mexico": "US-NM", "new york": "US-NY",
	"north carolina": "US-NC", "north dakota": "US-ND", "ohio": "US-OH", "oklahoma": "US-OK",
	"oregon": "US-OR", "pennsylvania": "US-PA", "rhode island": "US-RI", "south carolina": "US-SC",
	"south dakota": "US-SD", "tennessee": "US-TN", "texas": "US-TX", "utah": "US-UT",
	"vermont": "US-VT", "virginia": "US-VA", "washington": "US-WA", "west virginia": "US-WV",
	"wisconsin": "US-WI", "wyoming": "US-WY",
}

var usStateAbbrevs = buildAbbrevSet()

func buildAbbrevSet() map[string]struct{} {
	set := make(map[string]struct{}, len(usStates))
	for _, code := range usStates {
		set[strings.TrimPrefix(code, "US-")] = struct{}{}
	}

	return set
}

var usCodeRegex = regexp.MustCompile(`^US-[A-Z]{2}$`)

// Regions canonicalizes a region list: state names and postal abbreviations
// become US-XX codes, existing codes pass through, everything else is kept
// as-is. Duplicates are dropped, first occurrence wins.
func Regions(regions []string) []string {
	out := make([]string, 0, len(regions))
	seen := make(map[string]struct{}, len(regions))

	for _, region := range regions {
		normalized := normalizeRegion(region)
		if normalized == "" {
			continue
		}

		if _, ok := seen[normalized]; ok {
			continue
		}

		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}

	return out
}

func normalizeRegion(region string) string {
	region = strings.TrimSpace(region)
	if region == "" {
		return ""
	}

	upper := strings.ToUpper(region)
	if usCodeRegex.MatchString(upper) {
		return upper
	}

	if code, ok := usStates[strings.ToLower(region)]; ok {
		return code
	}

	if len(upper) == 2 {
		if _, ok := usStateAbbrevs[upper]; ok {
			return "US-" + upper
		}
	}

	return region
}

// knownCompanies maps lowercase carrier names to their canonical casing.
var knownCompanies = map[string]string{
	"state farm":         "State Farm",
	"geico":              "GEICO",
	"aig":                "AIG",
	"usaa":               "USAA",
	"chubb":              "Chubb",
	"allstate":           "Allstate",
	"progressive":        "Progressive",
	"travelers":          "Travelers",
	"liberty mutual":     "Liberty Mutual",
	"nationwide":         "Nationwide",
	"berkshire hathaway": "Berkshire Hathaway",
	"farmers":            "Farmers",
	"hartford":           "The Hartford",
	"the hartford":       "The Hartford",
	"zurich":             "Zurich",
	"munich re":          "Munich Re",
	"swiss re":           "Swiss Re",
	"lloyd's":            "Lloyd's",
	"lloyds":             "Lloyd's",
	"naic":               "NAIC",
}

// Companies canonicalizes carrier names: known names get their house casing,
// unknown names are title-cased. Duplicates drop, first occurrence wins.
func Companies(companies []string) []string {
	out := make([]string, 0, len(companies))
	seen := make(map[string]struct{}, len(companies))

	for _, company := range companies {
		company = strings.TrimSpace(company)
		if company == "" {
			continue
		}

		key := strings.ToLower(company)

		canonical, ok := knownCompanies[key]
		if !ok {
			canonical = titleCaser.String(key)
		}

		if _, dup := seen[strings.ToLower(canonical)]; dup {
			continue
		}

		seen[strings.ToLower(canonical)] = struct{}{}
		out = append(out, canonical)
	}

	return out
}

// The storm name itself stays case-sensitive so "hurricane season" is not
// read as a named storm.
var stormRegex = regexp.MustCompile(`\b((?i:hurricane|tropical storm|typhoon|cyclone|winter storm))\s+([A-Z][a-z]+)`)

// DetectStorm returns the canonical named storm mentioned in the text
// ("Hurricane Milton"), or an empty string when none is found.
func DetectStorm(text string) string {
	match := stormRegex.FindStringSubmatch(text)
	if match == nil {
		return ""
	}

	return titleCaser.String(strings.ToLower(match[1])) + " " + match[2]
}

// regulatorDomains are hosts (and host suffixes) of known insurance
// regulators and bulletin publishers.
var regulatorDomains = []string{
	"naic.org",
	"dfs.ny.gov",
	"insurance.ca.gov",
	"tdi.texas.gov",
	"floir.com",
	"eiopa.europa.eu",
	"fca.org.uk",
	"bankofengland.co.uk",
}

// regulatorTokens are source-name fragments that mark a regulator.
var regulatorTokens = []string{
	"dfs", "doi", "naic", "eiopa", "fca", "apra",
	"department of insurance", "insurance department",
	"insurance commissioner", "office of insurance regulation",
}

// IsRegulatorySource reports whether a feed source is an official regulator
// or regulatory-bulletin publisher, by URL host or by source name.
func IsRegulatorySource(rawURL, sourceName string) bool {
	if host := hostOf(rawURL); host != "" {
		for _, domain := range regulatorDomains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return true
			}
		}

		if strings.HasSuffix(host, ".gov") && strings.Contains(host, "insurance") {
			return true
		}
	}

	name := strings.ToLower(sourceName)
	for _, token := range regulatorTokens {
		if containsToken(name, token) {
			return true
		}
	}

	return false
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// containsToken matches whole words for short tokens so "doi" does not match
// inside unrelated names.
func containsToken(name, token string) bool {
	if strings.Contains(token, " ") {
		return strings.Contains(name, token)
	}

	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if word == token {
			return true
		}
	}

	return false
}
