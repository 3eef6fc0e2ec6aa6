// Package compile merges the facts the firmware scanners produce into
// one validated band.Model. It owns token resolution: which failures
// abort the build (unknown band or calibration identity, missing array)
// and which degrade gracefully (unknown extra-flags constant).
package compile

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/calummace/rfband/internal/firmware"
	"github.com/calummace/rfband/pkg/band"
)

// ErrNoEntries means the array literal was located but held no
// parseable elements. Distinct from ErrArrayNotFound: the source shape
// is fine, the table is just empty, which the CLI treats as fatal.
var ErrNoEntries = errors.New("no filter band entries parsed")

// defaultWidebandID is the hardware id the firmware has always
// reserved for the wideband filter, used when the header does not
// define the id macro.
const defaultWidebandID = 1

// Source carries the two raw firmware texts of one snapshot.
type Source struct {
	Header string
	Array  string
}

// LoadSource reads the two firmware files for Compile.
func LoadSource(headerPath, arrayPath string) (Source, error) {
	header, err := os.ReadFile(headerPath)
	if err != nil {
		return Source{}, fmt.Errorf("read header: %w", err)
	}
	array, err := os.ReadFile(arrayPath)
	if err != nil {
		return Source{}, fmt.Errorf("read array source: %w", err)
	}
	return Source{Header: string(header), Array: string(array)}, nil
}

// Fingerprint identifies a source snapshot.
func (s Source) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(s.Header)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(s.Array)
	return d.Sum64()
}

// Compile runs the whole pipeline over one source snapshot: extract,
// parse, resolve, validate. The returned model is complete or the error
// names the structural expectation that failed; there is no partial
// result.
func Compile(src Source, g firmware.Grammar, log zerolog.Logger) (*band.Model, error) {
	enums := firmware.ExtractEnums(src.Header, g)
	macros := firmware.ExtractMacros(src.Header, g)

	raw, err := firmware.ParseArrayEntries(src.Array, g)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEntries, g.ArrayName)
	}

	bandMembers, ok := enums[g.BandEnum]
	if !ok {
		return nil, fmt.Errorf("enum %q not found in header", g.BandEnum)
	}
	calMembers, ok := enums[g.CalEnum]
	if !ok {
		return nil, fmt.Errorf("enum %q not found in header", g.CalEnum)
	}

	ulMask, ok := macros[g.UplinkMaskMacro]
	if !ok {
		return nil, fmt.Errorf("macro %q not found in header", g.UplinkMaskMacro)
	}
	dlMask, ok := macros[g.DownlinkMaskMacro]
	if !ok {
		return nil, fmt.Errorf("macro %q not found in header", g.DownlinkMaskMacro)
	}

	bandByName := memberIndex(bandMembers)
	calByName := memberIndex(calMembers)

	widebandID := defaultWidebandID
	if v, ok := macros[g.WidebandIDMacro]; ok {
		widebandID = int(v)
	}

	entries := make([]band.Entry, 0, len(raw))
	for i, r := range raw {
		maskVal, ok := macros[r.DirectionToken]
		if !ok {
			return nil, fmt.Errorf("entry %d: unknown direction mask token %q", i, r.DirectionToken)
		}
		bandVal, ok := bandByName[r.BandToken]
		if !ok {
			return nil, fmt.Errorf("entry %d: unknown band filter token %q", i, r.BandToken)
		}
		calVal, ok := calByName[r.CalToken]
		if !ok {
			return nil, fmt.Errorf("entry %d: unknown calibration lookup token %q", i, r.CalToken)
		}

		extra := r.Extra.Literal
		if r.Extra.Name != "" {
			v, ok := macros[r.Extra.Name]
			if !ok {
				// Extra flags are non-critical metadata; substitute 0
				// rather than failing the build.
				log.Warn().Int("entry", i).Str("token", r.Extra.Name).
					Msg("unknown extra flags constant, using 0")
				v = 0
			}
			extra = v
		}

		entries = append(entries, band.Entry{
			Uplink:         band.FreqRange{LowDMHz: r.UplinkLow, HighDMHz: r.UplinkHigh},
			Downlink:       band.FreqRange{LowDMHz: r.DownlinkLow, HighDMHz: r.DownlinkHigh},
			DirectionMask:  uint16(maskVal),
			HardwareID:     i,
			RadioID:        r.RadioID,
			Band:           band.Filter{Name: r.BandToken, Value: int32(bandVal)},
			ProtocolBand:   r.ProtocolBand,
			FilterSlot:     r.FilterSlot,
			FiltersInGroup: r.FiltersInGroup,
			ExtraFlags:     int(extra),
			Cal:            band.CalGroup{Name: r.CalToken, Value: int32(calVal)},
		})
	}

	spec := band.ModelSpec{
		Directions:      toBandMembers(enums[g.DirectionEnum]),
		Filters:         toBandMembers(bandMembers),
		CalGroups:       toBandMembers(calMembers),
		UplinkMask:      uint16(ulMask),
		DownlinkMask:    uint16(dlMask),
		BothMask:        uint16(macros[g.BothMaskMacro]),
		ExtraForRevMask: int(macros[g.ExtraForRevMacro]),
		ExtraSwapMask:   int(macros[g.ExtraSwapMacro]),
		WidebandID:      widebandID,
		Entries:         entries,
		Fingerprint:     src.Fingerprint(),
	}

	m, err := band.NewModel(spec)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	log.Info().
		Int("entries", m.Len()).
		Str("fingerprint", fmt.Sprintf("%016x", m.Fingerprint())).
		Msg("compiled filter band table")
	return m, nil
}

func memberIndex(members []firmware.EnumMember) map[string]int64 {
	idx := make(map[string]int64, len(members))
	for _, m := range members {
		idx[m.Name] = m.Value
	}
	return idx
}

func toBandMembers(members []firmware.EnumMember) []band.EnumMember {
	out := make([]band.EnumMember, len(members))
	for i, m := range members {
		out[i] = band.EnumMember{Name: m.Name, Value: int32(m.Value)}
	}
	return out
}
