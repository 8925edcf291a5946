package eol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Unknown is the canonical EOL value substituted for every "no data" spelling.
const Unknown = "unknown"

// Missing is the text an absent value is rendered as in legacy mode.
const Missing = "None"

// Hardware table column labels, as they appear lower-cased in vendor headers.
const (
	KeyManufacturer = "manuf."
	KeyModel        = "model"
	KeyEOLPrimary   = "end of manufacturer support (some dates may be estimated)"
	KeyEOLFallback  = "end-of-service-life"
)

// unknownTokens are compared case-sensitively.
var unknownTokens = []string{"unknown", "noch unbekannt", "unbekannt", "", Missing}

// IsUnknown reports whether v is one of the recognized "no data" tokens.
func IsUnknown(v string) bool {
	return lo.Contains(unknownTokens, v)
}

// Value is an optional, trimmed string read from an upstream record.
type Value struct {
	Text    string
	Present bool
}

// Some returns a present Value holding the trimmed s.
func Some(s string) Value {
	return Value{Text: strings.TrimSpace(s), Present: true}
}

// Normalizer maps raw upstream values into canonical records.
// Its methods are total: missing or malformed input never fails.
type Normalizer struct {
	// LegacyNone renders absent values as the literal "None", matching data
	// stored by earlier versions of the tool. When false, absent values are
	// rendered as empty strings and stored as NULL.
	LegacyNone bool
}

// DefaultNormalizer keeps stored data compatible with earlier versions.
var DefaultNormalizer = Normalizer{LegacyNone: true}

func (n Normalizer) text(v Value) string {
	if v.Present {
		return v.Text
	}
	if n.LegacyNone {
		return Missing
	}
	return ""
}

// eol applies the unknown-sentinel rule.
func (n Normalizer) eol(v Value) string {
	if !v.Present || IsUnknown(v.Text) {
		return Unknown
	}
	return v.Text
}

// Hardware normalizes one vendor table row. The vendor slug becomes the
// manufacturer; rows from single-page layouts without a vendor carry it in
// their "manuf." column instead.
func (n Normalizer) Hardware(vendor string, row RawRow) *HardwareLifecycle {
	manufacturer := Some(vendor)
	if manufacturer.Text == "" {
		manufacturer = rowValue(row, KeyManufacturer)
	}
	if manufacturer.Present {
		manufacturer.Text = strings.ToLower(manufacturer.Text)
	}

	raw := rowValue(row, KeyEOLPrimary)
	if !raw.Present || raw.Text == "" || raw.Text == Missing {
		raw = rowValue(row, KeyEOLFallback)
	}

	return &HardwareLifecycle{
		Manufacturer: n.text(manufacturer),
		Model:        n.text(rowValue(row, KeyModel)),
		EOL:          n.eol(raw),
	}
}

// Software normalizes one lifecycle object of the named product.
func (n Normalizer) Software(name string, obj map[string]any) *SoftwareLifecycle {
	return &SoftwareLifecycle{
		Name:              strings.TrimSpace(name),
		Cycle:             n.text(jsonValue(obj, "cycle")),
		ReleaseLabel:      n.text(jsonValue(obj, "releaseLabel")),
		ReleaseDate:       n.text(jsonValue(obj, "releaseDate")),
		EOL:               n.eol(jsonValue(obj, "eol")),
		Latest:            n.text(jsonValue(obj, "latest")),
		LatestReleaseDate: n.text(jsonValue(obj, "latestReleaseDate")),
		LTS:               n.text(jsonValue(obj, "lts")),
		Support:           n.text(jsonValue(obj, "support")),
		ExtendedSupport:   n.text(jsonValue(obj, "extendedSupport")),
		Link:              n.text(jsonValue(obj, "link")),
	}
}

func rowValue(row RawRow, key string) Value {
	v, ok := row.Get(key)
	if !ok {
		return Value{}
	}
	return Some(v)
}

// jsonValue renders a decoded JSON scalar. null counts as absent.
func jsonValue(obj map[string]any, key string) Value {
	v, ok := obj[key]
	if !ok || v == nil {
		return Value{}
	}
	switch v := v.(type) {
	case string:
		return Some(v)
	case bool:
		return Some(strconv.FormatBool(v))
	case float64:
		return Some(strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		return Some(v.String())
	default:
		return Some(fmt.Sprint(v))
	}
}
