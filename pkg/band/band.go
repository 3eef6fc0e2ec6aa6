// Package band holds the compiled RF filter-band model: the record
// types parsed out of the firmware sources, the immutable Model that
// owns the entry table and its derived indices, and the selection
// algorithms that pick a physical filter for a query.
package band

// Direction identifies the signal direction of a query or a matched
// filter branch. The values match the firmware's direction enumeration,
// so they round-trip through the generated artifact unchanged.
type Direction int

const (
	Uplink   Direction = 0
	Downlink Direction = 1

	// Unknown means the caller does not care (or the band is TDD and
	// both directions share one branch). Selection then prefers
	// whichever branch of an entry is actually populated.
	Unknown Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Uplink:
		return "uplink"
	case Downlink:
		return "downlink"
	default:
		return "unknown"
	}
}

// ParseDirection maps the wire/query spellings onto a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "uplink", "ul":
		return Uplink, true
	case "downlink", "dl":
		return Downlink, true
	case "", "unknown", "both":
		return Unknown, true
	}
	return Unknown, false
}

// Filter identifies a physical filter category. The namespaced Name is
// the canonical identity; Value carries the firmware enumerator so the
// two never drift apart.
type Filter struct {
	Name  string
	Value int32
}

// CalGroup identifies the calibration data group an entry belongs to.
type CalGroup struct {
	Name  string
	Value int32
}

// EnumMember is one (name, value) pair of a firmware enumeration,
// preserved in declaration order for the generated artifact.
type EnumMember struct {
	Name  string
	Value int32
}

// FreqRange is a filter passband with edges in deci-MHz (tenths of a
// MHz), the firmware's storage unit. A range with both edges zero means
// "no branch in this direction" and never contains anything.
type FreqRange struct {
	LowDMHz  int
	HighDMHz int
}

// IsZero reports whether the range is the degenerate "not applicable"
// marker.
func (r FreqRange) IsZero() bool { return r.LowDMHz == 0 && r.HighDMHz == 0 }

// ContainsDMHz reports whether v lies inside the passband. The
// degenerate (0,0) range contains nothing, including 0.
func (r FreqRange) ContainsDMHz(v int) bool {
	if r.IsZero() {
		return false
	}
	return r.LowDMHz <= v && v <= r.HighDMHz
}

// MidpointDMHz is the passband centre, rounded down.
func (r FreqRange) MidpointDMHz() int { return (r.LowDMHz + r.HighDMHz) / 2 }

// Derived unit views. The deci-MHz edges are the single source of
// truth; these are computed, never stored.

func (r FreqRange) LowMHz() float64  { return float64(r.LowDMHz) / 10 }
func (r FreqRange) HighMHz() float64 { return float64(r.HighDMHz) / 10 }
func (r FreqRange) LowHz() int64     { return int64(r.LowDMHz) * 100_000 }
func (r FreqRange) HighHz() int64    { return int64(r.HighDMHz) * 100_000 }

// Entry is one physical filter record. Entries are value types and are
// never mutated after the model is built.
type Entry struct {
	Uplink   FreqRange
	Downlink FreqRange

	// DirectionMask holds the capability bits (uplink/downlink) this
	// filter supports. Independent of the Direction used in queries.
	DirectionMask uint16

	// HardwareID is the entry's position in the firmware array. The
	// model guarantees it equals the entry's index in the sequence.
	HardwareID int

	// RadioID is the numeric hardware identifier column of the source
	// array.
	RadioID int

	Band Filter

	// ProtocolBand is the 3GPP band number, or negative when the
	// filter is not mapped to a protocol band.
	ProtocolBand int

	FilterSlot     int
	FiltersInGroup int

	// ExtraFlags is a small bitmask; in the source it may be written
	// as a literal or as a named constant, both resolve here.
	ExtraFlags int

	Cal CalGroup
}

// Branch returns the passband for the given direction. For Unknown the
// uplink branch is preferred when populated, mirroring how the firmware
// walks single-filter (TDD) entries.
func (e Entry) Branch(d Direction) FreqRange {
	switch d {
	case Uplink:
		return e.Uplink
	case Downlink:
		return e.Downlink
	default:
		if e.Uplink.HighDMHz != 0 {
			return e.Uplink
		}
		return e.Downlink
	}
}
