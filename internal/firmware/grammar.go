// Package firmware scans the two firmware source texts for the facts
// the band compiler needs: allow-listed enumerations and macros from
// the header, and the filter-band array literal from the C source.
//
// The grammar is not formal C — preprocessor macros interleave with
// comments and several token forms spell the same field — so matching
// is regular-expression based and deliberately narrow. Everything the
// matcher recognizes is collected in Grammar, so the strategy can be
// swapped without touching the model or selection layers.
package firmware

// Grammar names the tokens the extractor and array parser recognize.
type Grammar struct {
	// Enumerated type names retained from the header; everything else
	// is ignored.
	DirectionEnum string
	BandEnum      string
	CalEnum       string

	// Macro allow-list.
	Macros []string

	// Names of the individual macros the compiler interprets.
	UplinkMaskMacro   string
	DownlinkMaskMacro string
	BothMaskMacro     string
	ExtraForRevMacro  string
	ExtraSwapMacro    string
	WidebandIDMacro   string

	// The struct-array literal holding the band table.
	ArrayType string
	ArrayName string

	// Token prefixes of the namespaced fields inside array entries.
	BandTokenPrefix  string
	ExtraTokenPrefix string
	CalTokenPrefix   string
}

// DefaultGrammar matches the filter-band headers as the firmware tree
// ships them.
func DefaultGrammar() Grammar {
	return Grammar{
		DirectionEnum: "duplexor_direction_t",
		BandEnum:      "band_filter_t",
		CalEnum:       "CalDataLookup_t",
		Macros: []string{
			"UPLINK_DIR_MASK",
			"DOWNLINK_DIR_MASK",
			"BOTH_DIR_MASK",
			"EXTRA_DATA_FORREV_MASK",
			"EXTRA_DATA_SWAP_FOR_AND_REV_MASK",
			"WIDEBAND_FILTER_ID",
		},
		UplinkMaskMacro:   "UPLINK_DIR_MASK",
		DownlinkMaskMacro: "DOWNLINK_DIR_MASK",
		BothMaskMacro:     "BOTH_DIR_MASK",
		ExtraForRevMacro:  "EXTRA_DATA_FORREV_MASK",
		ExtraSwapMacro:    "EXTRA_DATA_SWAP_FOR_AND_REV_MASK",
		WidebandIDMacro:   "WIDEBAND_FILTER_ID",
		ArrayType:         "RxFilterBand_t",
		ArrayName:         "rxFilterBands",
		BandTokenPrefix:   "BAND_FILTER_",
		ExtraTokenPrefix:  "EXTRA_DATA_",
		CalTokenPrefix:    "CALDATALOOKUP_",
	}
}
