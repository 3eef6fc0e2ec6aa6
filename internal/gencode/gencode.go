// Package gencode renders a compiled band.Model as a generated Go
// source file: the artifact downstream consumers import instead of
// touching firmware text or parsing internals. The projection is
// mechanical — every constant and entry comes straight off the model.
package gencode

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/calummace/rfband/internal/firmware"
	"github.com/calummace/rfband/pkg/band"
)

const bandImportPath = "github.com/calummace/rfband/pkg/band"

// Render produces the generated source for the model, gofmt-formatted.
// The package name is the caller's choice (conventionally bandtab).
func Render(m *band.Model, pkgName string, g firmware.Grammar) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "// Code generated by bandgen. DO NOT EDIT.\n")
	fmt.Fprintf(&b, "//\n// Source fingerprint %016x, %d entries.\n\n", m.Fingerprint(), m.Len())
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	fmt.Fprintf(&b, "import %q\n\n", bandImportPath)

	writeEnumConsts(&b, g.DirectionEnum, m.Directions())
	writeEnumConsts(&b, g.BandEnum, m.Filters())
	writeEnumConsts(&b, g.CalEnum, m.CalGroups())

	fmt.Fprintf(&b, "const (\n")
	fmt.Fprintf(&b, "\t%s = %d\n", g.UplinkMaskMacro, m.UplinkMask())
	fmt.Fprintf(&b, "\t%s = %d\n", g.DownlinkMaskMacro, m.DownlinkMask())
	fmt.Fprintf(&b, "\t%s = %d\n", g.BothMaskMacro, m.BothMask())
	fmt.Fprintf(&b, "\t%s = %d\n", g.ExtraForRevMacro, m.ExtraForRevMask())
	fmt.Fprintf(&b, "\t%s = %d\n", g.ExtraSwapMacro, m.ExtraSwapMask())
	fmt.Fprintf(&b, "\t%s = %d\n", g.WidebandIDMacro, m.WidebandID())
	fmt.Fprintf(&b, ")\n\n")

	fmt.Fprintf(&b, "// Model is the compiled filter band table, index-aligned with the\n")
	fmt.Fprintf(&b, "// firmware array.\n")
	fmt.Fprintf(&b, "var Model = band.MustModel(band.ModelSpec{\n")
	writeEnumMembers(&b, "Directions", m.Directions())
	writeEnumMembers(&b, "Filters", m.Filters())
	writeEnumMembers(&b, "CalGroups", m.CalGroups())
	fmt.Fprintf(&b, "\tUplinkMask:      %d,\n", m.UplinkMask())
	fmt.Fprintf(&b, "\tDownlinkMask:    %d,\n", m.DownlinkMask())
	fmt.Fprintf(&b, "\tBothMask:        %d,\n", m.BothMask())
	fmt.Fprintf(&b, "\tExtraForRevMask: %d,\n", m.ExtraForRevMask())
	fmt.Fprintf(&b, "\tExtraSwapMask:   %d,\n", m.ExtraSwapMask())
	fmt.Fprintf(&b, "\tWidebandID:      %d,\n", m.WidebandID())
	fmt.Fprintf(&b, "\tFingerprint:     %#016x,\n", m.Fingerprint())
	fmt.Fprintf(&b, "\tEntries: []band.Entry{\n")
	for _, e := range m.Entries() {
		writeEntry(&b, e)
	}
	fmt.Fprintf(&b, "\t},\n")
	fmt.Fprintf(&b, "})\n\n")

	fmt.Fprintf(&b, "// Select picks the best filter for the query. See band.Model.Select.\n")
	fmt.Fprintf(&b, "func Select(q band.Query) (band.Selection, bool) { return Model.Select(q) }\n\n")
	fmt.Fprintf(&b, "// SelectByBand restricts selection to one filter category. See\n")
	fmt.Fprintf(&b, "// band.Model.SelectByBand.\n")
	fmt.Fprintf(&b, "func SelectByBand(q band.Query, f band.Filter) (band.Selection, bool) {\n")
	fmt.Fprintf(&b, "\treturn Model.SelectByBand(q, f)\n}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// WriteFile renders the artifact and replaces path atomically, so a
// consumer never observes a truncated table.
func WriteFile(path string, m *band.Model, pkgName string, g firmware.Grammar) error {
	src, err := Render(m, pkgName, g)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, src, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

func writeEnumConsts(b *bytes.Buffer, enumName string, members []band.EnumMember) {
	if len(members) == 0 {
		return
	}
	fmt.Fprintf(b, "// %s enumerators.\n", enumName)
	fmt.Fprintf(b, "const (\n")
	for _, m := range members {
		fmt.Fprintf(b, "\t%s = %d\n", m.Name, m.Value)
	}
	fmt.Fprintf(b, ")\n\n")
}

func writeEnumMembers(b *bytes.Buffer, field string, members []band.EnumMember) {
	fmt.Fprintf(b, "\t%s: []band.EnumMember{\n", field)
	for _, m := range members {
		fmt.Fprintf(b, "\t\t{Name: %q, Value: %d},\n", m.Name, m.Value)
	}
	fmt.Fprintf(b, "\t},\n")
}

func writeEntry(b *bytes.Buffer, e band.Entry) {
	fmt.Fprintf(b, "\t\t{\n")
	fmt.Fprintf(b, "\t\t\tUplink:         band.FreqRange{LowDMHz: %d, HighDMHz: %d},\n", e.Uplink.LowDMHz, e.Uplink.HighDMHz)
	fmt.Fprintf(b, "\t\t\tDownlink:       band.FreqRange{LowDMHz: %d, HighDMHz: %d},\n", e.Downlink.LowDMHz, e.Downlink.HighDMHz)
	fmt.Fprintf(b, "\t\t\tDirectionMask:  %d,\n", e.DirectionMask)
	fmt.Fprintf(b, "\t\t\tHardwareID:     %d,\n", e.HardwareID)
	fmt.Fprintf(b, "\t\t\tRadioID:        %d,\n", e.RadioID)
	fmt.Fprintf(b, "\t\t\tBand:           band.Filter{Name: %q, Value: %d},\n", e.Band.Name, e.Band.Value)
	fmt.Fprintf(b, "\t\t\tProtocolBand:   %d,\n", e.ProtocolBand)
	fmt.Fprintf(b, "\t\t\tFilterSlot:     %d,\n", e.FilterSlot)
	fmt.Fprintf(b, "\t\t\tFiltersInGroup: %d,\n", e.FiltersInGroup)
	fmt.Fprintf(b, "\t\t\tExtraFlags:     %d,\n", e.ExtraFlags)
	fmt.Fprintf(b, "\t\t\tCal:            band.CalGroup{Name: %q, Value: %d},\n", e.Cal.Name, e.Cal.Value)
	fmt.Fprintf(b, "\t\t},\n")
}
