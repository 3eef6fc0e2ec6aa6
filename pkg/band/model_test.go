package band

import (
	"strings"
	"testing"
)

var (
	filterEmpty   = Filter{Name: "BAND_FILTER_EMPTY", Value: 14}
	filterWide    = Filter{Name: "BAND_FILTER_WIDE", Value: 1000}
	filterGSM850  = Filter{Name: "BAND_FILTER_GSM850", Value: 4}
	filterEGSM900 = Filter{Name: "BAND_FILTER_EGSM900", Value: 6}
	filterDCS1800 = Filter{Name: "BAND_FILTER_DCS1800", Value: 8}
	filterPCS1900 = Filter{Name: "BAND_FILTER_PCS1900", Value: 10}
	filterLTE7    = Filter{Name: "BAND_FILTER_LTE7", Value: 16}
	filterLTE20   = Filter{Name: "BAND_FILTER_LTE20", Value: 18}
	filterLTE28   = Filter{Name: "BAND_FILTER_LTE28", Value: 20}

	calNone     = CalGroup{Name: "CALDATALOOKUP_NO_LOOKUP", Value: -1}
	calWideband = CalGroup{Name: "CALDATALOOKUP_WIDEBAND", Value: 7}
	calDCS1800  = CalGroup{Name: "CALDATALOOKUP_DCS1800", Value: 1}
	calPCS1900  = CalGroup{Name: "CALDATALOOKUP_PCS1900", Value: 2}
	calGSM850   = CalGroup{Name: "CALDATALOOKUP_GSM850", Value: 4}
	calLTE7     = CalGroup{Name: "CALDATALOOKUP_LTE_7", Value: 0}
	calLTE20    = CalGroup{Name: "CALDATALOOKUP_LTE_20", Value: 6}
)

// testSpec mirrors a small assembly variant: a not-fitted placeholder at
// 0, the wideband catch-all at 1, split uplink/downlink GSM branches, a
// duplexed GSM site, two overlapping LTE28 filters and one filter
// mounted with its paths swapped.
func testSpec() ModelSpec {
	mk := func(id, ulLo, ulHi, dlLo, dlHi int, mask uint16, f Filter, proto, slot, group, extra int, cal CalGroup) Entry {
		return Entry{
			Uplink:         FreqRange{LowDMHz: ulLo, HighDMHz: ulHi},
			Downlink:       FreqRange{LowDMHz: dlLo, HighDMHz: dlHi},
			DirectionMask:  mask,
			HardwareID:     id,
			Band:           f,
			ProtocolBand:   proto,
			FilterSlot:     slot,
			FiltersInGroup: group,
			ExtraFlags:     extra,
			Cal:            cal,
		}
	}
	return ModelSpec{
		Directions: []EnumMember{
			{Name: "DD_UNKNOWN", Value: -1},
			{Name: "DD_UPLINK", Value: 0},
			{Name: "DD_DOWNLINK", Value: 1},
		},
		Filters: []EnumMember{
			{Name: "BAND_FILTER_GSM850", Value: 4},
			{Name: "BAND_FILTER_EGSM900", Value: 6},
			{Name: "BAND_FILTER_WIDE", Value: 1000},
		},
		CalGroups: []EnumMember{
			{Name: "CALDATALOOKUP_NO_LOOKUP", Value: -1},
			{Name: "CALDATALOOKUP_WIDEBAND", Value: 7},
		},
		UplinkMask:      1,
		DownlinkMask:    2,
		ExtraForRevMask: 1,
		ExtraSwapMask:   2,
		WidebandID:      1,
		Fingerprint:     0xfeedbead,
		Entries: []Entry{
			mk(0, 0, 0, 0, 0, 3, filterEmpty, -1, 1, 1, 0, calNone),
			mk(1, 100, 63000, 0, 0, 1, filterWide, 0, 1, 1, 0, calWideband),
			mk(2, 8240, 8490, 0, 0, 1, filterGSM850, 5, 1, 1, 0, calNone),
			mk(3, 0, 0, 8690, 8940, 2, filterGSM850, 5, 1, 1, 0, calNone),
			mk(4, 8800, 9150, 0, 0, 1, filterEGSM900, 8, 1, 1, 0, calNone),
			mk(5, 17100, 17850, 18050, 18800, 3, filterDCS1800, 3, 1, 1, 0, calDCS1800),
			mk(6, 18500, 19100, 19300, 19900, 3, filterPCS1900, 2, 1, 1, 0, calPCS1900),
			mk(7, 8320, 8620, 7910, 8210, 3, filterLTE20, 20, 1, 1, 2, calLTE20),
			mk(8, 25000, 25700, 26200, 26900, 3, filterLTE7, 7, 1, 1, 0, calLTE7),
			mk(9, 7030, 7330, 7580, 7880, 3, filterLTE28, 28, 1, 2, 0, calNone),
			mk(10, 7180, 7480, 7730, 8030, 3, filterLTE28, 28, 2, 2, 2, calNone),
			mk(11, 8240, 8490, 8690, 8940, 3, filterGSM850, 5, 1, 1, 1, calGSM850),
		},
	}
}

func testModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(testSpec())
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func hardwareIDs(entries []Entry) []int {
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.HardwareID
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewModelRejectsMissingMasks(t *testing.T) {
	spec := testSpec()
	spec.UplinkMask = 0
	if _, err := NewModel(spec); err == nil {
		t.Fatalf("expected error for missing uplink mask")
	}
}

func TestNewModelRejectsHardwareIDMismatch(t *testing.T) {
	spec := testSpec()
	spec.Entries[4].HardwareID = 7
	_, err := NewModel(spec)
	if err == nil {
		t.Fatalf("expected error for hardware id mismatch")
	}
	if !strings.Contains(err.Error(), "entry 4") {
		t.Errorf("err = %v, want mention of entry 4", err)
	}
}

func TestNewModelRejectsUnknownMaskBits(t *testing.T) {
	spec := testSpec()
	spec.Entries[5].DirectionMask = 4
	if _, err := NewModel(spec); err == nil {
		t.Fatalf("expected error for mask bits outside the capability set")
	}
}

func TestNewModelRejectsNegativeWidebandID(t *testing.T) {
	spec := testSpec()
	spec.WidebandID = -1
	if _, err := NewModel(spec); err == nil {
		t.Fatalf("expected error for negative wideband id")
	}
}

func TestNewModelDerivesBothMask(t *testing.T) {
	m := testModel(t)
	if m.BothMask() != 3 {
		t.Errorf("BothMask = %d, want 3", m.BothMask())
	}
}

func TestModelEntryLookup(t *testing.T) {
	m := testModel(t)
	if m.Len() != 12 {
		t.Fatalf("Len = %d, want 12", m.Len())
	}
	e, ok := m.Entry(5)
	if !ok || e.Band != filterDCS1800 {
		t.Errorf("Entry(5) = %+v, %v", e, ok)
	}
	if _, ok := m.Entry(-1); ok {
		t.Errorf("Entry(-1) should miss")
	}
	if _, ok := m.Entry(12); ok {
		t.Errorf("Entry(12) should miss")
	}
}

func TestModelGroupings(t *testing.T) {
	m := testModel(t)

	if got := hardwareIDs(m.ByBand(filterGSM850)); !equalInts(got, []int{2, 3, 11}) {
		t.Errorf("ByBand(GSM850) = %v, want [2 3 11]", got)
	}
	if got := hardwareIDs(m.ByProtocolBand(28)); !equalInts(got, []int{9, 10}) {
		t.Errorf("ByProtocolBand(28) = %v, want [9 10]", got)
	}
	if got := hardwareIDs(m.ByProtocolBand(-1)); !equalInts(got, []int{0}) {
		t.Errorf("ByProtocolBand(-1) = %v, want [0]", got)
	}
	if got := hardwareIDs(m.ByCalGroup(calNone)); !equalInts(got, []int{0, 2, 3, 4, 9, 10}) {
		t.Errorf("ByCalGroup(no lookup) = %v, want [0 2 3 4 9 10]", got)
	}
	if got := m.ByBand(Filter{Name: "BAND_FILTER_NONE", Value: 99}); got != nil {
		t.Errorf("unknown band should yield nil, got %v", got)
	}

	// Every entry lands in exactly one group per axis.
	total := 0
	for _, f := range []Filter{filterEmpty, filterWide, filterGSM850, filterEGSM900, filterDCS1800, filterPCS1900, filterLTE7, filterLTE20, filterLTE28} {
		total += len(m.ByBand(f))
	}
	if total != m.Len() {
		t.Errorf("band groups cover %d entries, want %d", total, m.Len())
	}
}

func TestModelEnumLookups(t *testing.T) {
	m := testModel(t)

	f, ok := m.LookupFilter("BAND_FILTER_EGSM900")
	if !ok || f.Value != 6 {
		t.Errorf("LookupFilter = %+v, %v", f, ok)
	}
	if _, ok := m.LookupFilter("BAND_FILTER_NOPE"); ok {
		t.Errorf("LookupFilter should miss for unknown tag")
	}

	c, ok := m.LookupCalGroup("CALDATALOOKUP_WIDEBAND")
	if !ok || c.Value != 7 {
		t.Errorf("LookupCalGroup = %+v, %v", c, ok)
	}

	if m.WidebandID() != 1 {
		t.Errorf("WidebandID = %d, want 1", m.WidebandID())
	}
	if m.Fingerprint() != 0xfeedbead {
		t.Errorf("Fingerprint = %#x, want 0xfeedbead", m.Fingerprint())
	}
}

func TestMustModelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustModel should panic on an invalid spec")
		}
	}()
	spec := testSpec()
	spec.DownlinkMask = 0
	MustModel(spec)
}
