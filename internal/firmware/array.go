package firmware

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrArrayNotFound means the named struct-array literal is missing from
// the source entirely: the source shape is incompatible with this
// parser and the whole compile must abort.
var ErrArrayNotFound = errors.New("filter band array literal not found")

// ExtraToken is the "extra flags" field as written in the source:
// either a numeric literal or a named constant. The ambiguity is
// resolved to a plain integer at model-build time, never carried
// further.
type ExtraToken struct {
	// Name is the named-constant form; empty when the source used a
	// literal.
	Name    string
	Literal int64
}

// ArrayEntry is one decomposed element of the band array, fields in
// source order. No token has been resolved yet.
type ArrayEntry struct {
	UplinkLow    int
	UplinkHigh   int
	DownlinkLow  int
	DownlinkHigh int

	DirectionToken string
	RadioID        int
	BandToken      string
	ProtocolBand   int
	FilterSlot     int
	FiltersInGroup int
	Extra          ExtraToken
	CalToken       string
}

// ParseArrayEntries locates the band array literal in the source text
// and decomposes its elements, preserving source order (the future
// hardware ids). A missing array is ErrArrayNotFound; an array with no
// matching elements returns an empty slice and nil error — the caller
// decides what an empty table means.
func ParseArrayEntries(source string, g Grammar) ([]ArrayEntry, error) {
	arrayPattern := regexp.MustCompile(
		`(?s)` + regexp.QuoteMeta(g.ArrayType) + `\s+const\s+` +
			regexp.QuoteMeta(g.ArrayName) + `\s*\[\s*\]\s*=\s*\{(.*?)\}\s*;`)

	m := arrayPattern.FindStringSubmatch(source)
	if m == nil {
		return nil, fmt.Errorf("%w: %s %s[]", ErrArrayNotFound, g.ArrayType, g.ArrayName)
	}

	entryPattern := regexp.MustCompile(
		`\{\s*` +
			`\{\s*(\d+)\s*,\s*(\d+)\s*\}\s*,\s*` + // uplink pair, dMHz
			`\{\s*(\d+)\s*,\s*(\d+)\s*\}\s*,\s*` + // downlink pair, dMHz
			`([A-Z_]+)\s*,\s*` + // direction mask token
			`(\d+)\s*,\s*` + // radio id
			`(` + regexp.QuoteMeta(g.BandTokenPrefix) + `[A-Z0-9_]+)\s*,\s*` +
			`(-?\d+)\s*,\s*` + // protocol band, may be negative
			`(\d+)\s*,\s*` + // filter slot
			`(\d+)\s*,\s*` + // filters in group
			`(-?\d+|` + regexp.QuoteMeta(g.ExtraTokenPrefix) + `[A-Z0-9_]+)\s*,\s*` +
			`(` + regexp.QuoteMeta(g.CalTokenPrefix) + `[A-Z0-9_]+)\s*\}`)

	var entries []ArrayEntry
	for _, f := range entryPattern.FindAllStringSubmatch(m[1], -1) {
		entries = append(entries, ArrayEntry{
			UplinkLow:      mustInt(f[1]),
			UplinkHigh:     mustInt(f[2]),
			DownlinkLow:    mustInt(f[3]),
			DownlinkHigh:   mustInt(f[4]),
			DirectionToken: f[5],
			RadioID:        mustInt(f[6]),
			BandToken:      f[7],
			ProtocolBand:   mustInt(f[8]),
			FilterSlot:     mustInt(f[9]),
			FiltersInGroup: mustInt(f[10]),
			Extra:          parseExtraToken(f[11]),
			CalToken:       f[12],
		})
	}
	return entries, nil
}

func parseExtraToken(tok string) ExtraToken {
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return ExtraToken{Literal: v}
	}
	return ExtraToken{Name: tok}
}

// mustInt converts a token the entry pattern already constrained to
// digits.
func mustInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("firmware: digit token %q: %v", s, err))
	}
	return v
}
