package band

import (
	"fmt"
)

// ModelSpec is the raw material for a Model: everything the compiler
// resolved out of the firmware sources. NewModel validates it and
// freezes the result.
type ModelSpec struct {
	Directions []EnumMember
	Filters    []EnumMember
	CalGroups  []EnumMember

	UplinkMask   uint16
	DownlinkMask uint16
	// BothMask may be left zero; it is derived as UplinkMask|DownlinkMask.
	BothMask uint16

	ExtraForRevMask int
	ExtraSwapMask   int

	// WidebandID is the hardware id reserved for the catch-all
	// wideband filter.
	WidebandID int

	Entries []Entry

	// Fingerprint identifies the source snapshot the table was
	// compiled from (xxhash64 over both source texts).
	Fingerprint uint64
}

// Model is the compiled, immutable filter-band table. It is built once
// from a single source snapshot and is safe for concurrent readers; no
// method mutates it.
type Model struct {
	directions []EnumMember
	filters    []EnumMember
	calGroups  []EnumMember

	uplinkMask   uint16
	downlinkMask uint16
	bothMask     uint16

	extraForRevMask int
	extraSwapMask   int

	widebandID  int
	fingerprint uint64

	entries []Entry

	byBand     map[Filter][]Entry
	byProtocol map[int][]Entry
	byCal      map[CalGroup][]Entry
}

// NewModel validates spec and builds the derived indices. It fails if
// any entry's HardwareID disagrees with its position, if a direction
// mask carries bits outside the capability set, or if the mask
// constants themselves are missing.
func NewModel(spec ModelSpec) (*Model, error) {
	if spec.UplinkMask == 0 || spec.DownlinkMask == 0 {
		return nil, fmt.Errorf("band: direction mask constants missing (uplink=%#x downlink=%#x)", spec.UplinkMask, spec.DownlinkMask)
	}
	both := spec.BothMask
	if both == 0 {
		both = spec.UplinkMask | spec.DownlinkMask
	}
	if spec.WidebandID < 0 {
		return nil, fmt.Errorf("band: negative wideband id %d", spec.WidebandID)
	}

	m := &Model{
		directions:      append([]EnumMember(nil), spec.Directions...),
		filters:         append([]EnumMember(nil), spec.Filters...),
		calGroups:       append([]EnumMember(nil), spec.CalGroups...),
		uplinkMask:      spec.UplinkMask,
		downlinkMask:    spec.DownlinkMask,
		bothMask:        both,
		extraForRevMask: spec.ExtraForRevMask,
		extraSwapMask:   spec.ExtraSwapMask,
		widebandID:      spec.WidebandID,
		fingerprint:     spec.Fingerprint,
		entries:         append([]Entry(nil), spec.Entries...),
		byBand:          make(map[Filter][]Entry),
		byProtocol:      make(map[int][]Entry),
		byCal:           make(map[CalGroup][]Entry),
	}

	for i, e := range m.entries {
		if e.HardwareID != i {
			return nil, fmt.Errorf("band: entry %d carries hardware id %d", i, e.HardwareID)
		}
		if e.DirectionMask&^both != 0 {
			return nil, fmt.Errorf("band: entry %d direction mask %#x has bits outside %#x", i, e.DirectionMask, both)
		}
		m.byBand[e.Band] = append(m.byBand[e.Band], e)
		m.byProtocol[e.ProtocolBand] = append(m.byProtocol[e.ProtocolBand], e)
		m.byCal[e.Cal] = append(m.byCal[e.Cal], e)
	}

	return m, nil
}

// MustModel is NewModel for generated code and tests, panicking on a
// spec that should have been rejected at compile time.
func MustModel(spec ModelSpec) *Model {
	m, err := NewModel(spec)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of entries in the table.
func (m *Model) Len() int { return len(m.entries) }

// Entries returns the master sequence, index-aligned with HardwareID.
// The returned slice is shared; callers must treat it as read-only.
func (m *Model) Entries() []Entry { return m.entries }

// Entry returns the record at the given hardware id.
func (m *Model) Entry(hardwareID int) (Entry, bool) {
	if hardwareID < 0 || hardwareID >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[hardwareID], true
}

// ByBand returns the entries of one filter category in table order.
func (m *Model) ByBand(f Filter) []Entry { return m.byBand[f] }

// ByProtocolBand returns the entries mapped to a protocol band number.
func (m *Model) ByProtocolBand(n int) []Entry { return m.byProtocol[n] }

// ByCalGroup returns the entries of one calibration data group.
func (m *Model) ByCalGroup(c CalGroup) []Entry { return m.byCal[c] }

// LookupFilter resolves a filter category by its namespaced tag.
func (m *Model) LookupFilter(name string) (Filter, bool) {
	for _, em := range m.filters {
		if em.Name == name {
			return Filter{Name: em.Name, Value: em.Value}, true
		}
	}
	return Filter{}, false
}

// LookupCalGroup resolves a calibration group by its namespaced tag.
func (m *Model) LookupCalGroup(name string) (CalGroup, bool) {
	for _, em := range m.calGroups {
		if em.Name == name {
			return CalGroup{Name: em.Name, Value: em.Value}, true
		}
	}
	return CalGroup{}, false
}

// Enumeration views, in source declaration order. Shared slices,
// read-only.

func (m *Model) Directions() []EnumMember { return m.directions }
func (m *Model) Filters() []EnumMember    { return m.filters }
func (m *Model) CalGroups() []EnumMember  { return m.calGroups }

func (m *Model) UplinkMask() uint16   { return m.uplinkMask }
func (m *Model) DownlinkMask() uint16 { return m.downlinkMask }
func (m *Model) BothMask() uint16     { return m.bothMask }

func (m *Model) ExtraForRevMask() int { return m.extraForRevMask }
func (m *Model) ExtraSwapMask() int   { return m.extraSwapMask }

// WidebandID is the hardware id of the catch-all wideband filter.
func (m *Model) WidebandID() int { return m.widebandID }

// Fingerprint identifies the source snapshot this model was compiled
// from.
func (m *Model) Fingerprint() uint64 { return m.fingerprint }
