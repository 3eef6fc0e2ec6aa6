package band

import "math"

// The table only describes hardware below 6 GHz; queries at or above
// the ceiling are out of domain by construction.
const freqCeilingKHz = 6_000_000

// Query is one filter-selection request. Frequencies are in kHz and are
// converted to deci-MHz with the firmware's fixed-point rounding, not
// float rounding.
type Query struct {
	FreqKHz      int
	BandwidthKHz int

	// Direction selects which branch and capability bit to test.
	// Unknown tests the downlink capability bit but measures
	// containment against whichever branch of an entry is populated
	// (uplink preferred), mirroring the firmware's handling of
	// single-filter entries.
	Direction Direction

	// Candidates restricts the search to these hardware ids; nil means
	// the whole table. Ids outside the table are skipped, not errors —
	// a fitted-filter list may reference hardware this assembly
	// variant does not carry.
	Candidates []int
}

// Selection is a successful pick: the filter to switch in, the branch
// direction that matched, and the entry's extra flags (the control
// software needs the flags to drive the forward/reverse switching).
type Selection struct {
	HardwareID int
	Direction  Direction
	ExtraFlags int
}

func halfBandwidthKHz(bwKHz int) int { return (bwKHz + 1) / 2 }

// toDMHz applies the firmware's round-half-up kHz→deci-MHz conversion.
func toDMHz(khz int) int { return (khz + 50) / 100 }

func (m *Model) directionBit(d Direction) uint16 {
	if d == Uplink {
		return m.uplinkMask
	}
	return m.downlinkMask
}

// Select picks the best filter for the query.
//
// Among candidates whose capability mask includes the queried direction
// and whose selected branch fully contains the occupied band, the one
// whose passband midpoint is closest to the query centre wins; on an
// exact distance tie the first-encountered candidate is kept (strict
// less-than comparison). The wideband filter never competes on
// distance: it is returned as the fallback whenever it appeared in the
// candidate set at all — even if its own mask or passband would not
// qualify. That asymmetry matches the firmware's catch-all behavior
// and is deliberate.
//
// A miss is an expected outcome, reported as ok == false, never an
// error.
func (m *Model) Select(q Query) (Selection, bool) {
	if q.FreqKHz >= freqCeilingKHz {
		return Selection{}, false
	}

	half := halfBandwidthKHz(q.BandwidthKHz)
	center := toDMHz(q.FreqKHz)
	lowEdge := toDMHz(q.FreqKHz - half)
	highEdge := toDMHz(q.FreqKHz + half)

	bit := m.directionBit(q.Direction)

	bestID := -1
	bestOffset := math.MaxInt
	var bestEntry Entry
	widebandPresent := false

	for i, n := 0, m.candidateCount(q.Candidates); i < n; i++ {
		id := i
		if q.Candidates != nil {
			id = q.Candidates[i]
		}
		if id < 0 || id >= len(m.entries) {
			continue
		}
		e := m.entries[id]
		if id == m.widebandID {
			widebandPresent = true
		}
		if e.DirectionMask&bit == 0 {
			continue
		}
		rng := e.Branch(q.Direction)
		if rng.LowDMHz == 0 || rng.HighDMHz == 0 {
			continue
		}
		if !(rng.LowDMHz <= lowEdge && highEdge <= rng.HighDMHz) {
			continue
		}
		offset := absInt(center - rng.MidpointDMHz())
		if offset < bestOffset && id != m.widebandID {
			bestOffset = offset
			bestID = id
			bestEntry = e
		}
	}

	if bestID < 0 {
		if widebandPresent {
			return Selection{HardwareID: m.widebandID, Direction: Uplink}, true
		}
		return Selection{}, false
	}

	return Selection{
		HardwareID: bestID,
		Direction:  m.matchedDirection(bestEntry, q.Direction),
		ExtraFlags: bestEntry.ExtraFlags,
	}, true
}

// SelectByBand restricts the competition to entries of one filter
// category. When no entry of that category qualifies it falls back to
// the plain frequency hunt. Either way the reported direction is
// corrected for filters mounted with forward and reverse paths
// swapped (ExtraSwapMask).
func (m *Model) SelectByBand(q Query, want Filter) (Selection, bool) {
	if q.FreqKHz >= freqCeilingKHz {
		return Selection{}, false
	}

	half := halfBandwidthKHz(q.BandwidthKHz)
	center := toDMHz(q.FreqKHz)
	lowEdge := toDMHz(q.FreqKHz - half)
	highEdge := toDMHz(q.FreqKHz + half)

	bit := m.directionBit(q.Direction)

	bestID := -1
	bestOffset := math.MaxInt
	var bestEntry Entry

	for i, n := 0, m.candidateCount(q.Candidates); i < n; i++ {
		id := i
		if q.Candidates != nil {
			id = q.Candidates[i]
		}
		if id < 0 || id >= len(m.entries) {
			continue
		}
		e := m.entries[id]
		if e.Band != want {
			continue
		}
		if e.DirectionMask&bit == 0 {
			continue
		}
		rng := e.Downlink
		if q.Direction == Uplink {
			rng = e.Uplink
		}
		if !(rng.LowDMHz <= lowEdge && highEdge <= rng.HighDMHz) {
			continue
		}
		offset := absInt(center - rng.MidpointDMHz())
		if offset < bestOffset && id != m.widebandID {
			bestOffset = offset
			bestID = id
			bestEntry = e
		}
	}

	if bestID < 0 {
		// Nothing in the wanted category covers the band; see if any
		// other filter does.
		sel, ok := m.Select(q)
		if !ok {
			return Selection{}, false
		}
		sel.Direction = m.SwapDirection(sel.ExtraFlags, sel.Direction)
		return sel, true
	}

	return Selection{
		HardwareID: bestID,
		Direction:  m.SwapDirection(bestEntry.ExtraFlags, q.Direction),
		ExtraFlags: bestEntry.ExtraFlags,
	}, true
}

// SwapDirection flips the direction when extraFlags mark the filter as
// mounted with forward and reverse paths swapped.
func (m *Model) SwapDirection(extraFlags int, d Direction) Direction {
	if m.extraSwapMask == 0 || extraFlags&m.extraSwapMask != m.extraSwapMask {
		return d
	}
	if d == Uplink {
		return Downlink
	}
	return Uplink
}

// FilterLimits returns the passband edges of a filter in deci-MHz.
// Out-of-range ids yield (0, 0). For Unknown each edge falls back to
// the downlink branch when the uplink edge is zero.
func (m *Model) FilterLimits(hardwareID int, d Direction) (low, high int) {
	e, ok := m.Entry(hardwareID)
	if !ok {
		return 0, 0
	}
	switch d {
	case Uplink:
		return e.Uplink.LowDMHz, e.Uplink.HighDMHz
	case Downlink:
		return e.Downlink.LowDMHz, e.Downlink.HighDMHz
	default:
		low = e.Uplink.LowDMHz
		if low == 0 {
			low = e.Downlink.LowDMHz
		}
		high = e.Uplink.HighDMHz
		if high == 0 {
			high = e.Downlink.HighDMHz
		}
		return low, high
	}
}

// candidateCount returns how many ids the query walks: the caller's
// restricted set, or the whole table.
func (m *Model) candidateCount(candidates []int) int {
	if candidates != nil {
		return len(candidates)
	}
	return len(m.entries)
}

func (m *Model) matchedDirection(e Entry, queried Direction) Direction {
	if queried != Unknown {
		return queried
	}
	if e.Uplink.HighDMHz != 0 {
		return Uplink
	}
	return Downlink
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
