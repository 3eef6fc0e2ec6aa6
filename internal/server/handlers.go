package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/calummace/rfband/internal/observability"
	"github.com/calummace/rfband/pkg/band"
)

type selectResponse struct {
	Found      bool   `json:"found"`
	HardwareID int    `json:"hardware_id,omitempty"`
	Direction  string `json:"direction,omitempty"`
	ExtraFlags int    `json:"extra_flags,omitempty"`
}

type rangeJSON struct {
	LowDMHz  int     `json:"low_dmhz"`
	HighDMHz int     `json:"high_dmhz"`
	LowMHz   float64 `json:"low_mhz"`
	HighMHz  float64 `json:"high_mhz"`
}

type entryJSON struct {
	HardwareID     int       `json:"hardware_id"`
	Uplink         rangeJSON `json:"uplink"`
	Downlink       rangeJSON `json:"downlink"`
	DirectionMask  uint16    `json:"direction_mask"`
	RadioID        int       `json:"radio_id"`
	Band           string    `json:"band"`
	ProtocolBand   int       `json:"protocol_band"`
	FilterSlot     int       `json:"filter_slot"`
	FiltersInGroup int       `json:"filters_in_group"`
	ExtraFlags     int       `json:"extra_flags"`
	CalGroup       string    `json:"cal_group"`
}

type tableJSON struct {
	Fingerprint string      `json:"fingerprint"`
	WidebandID  int         `json:"wideband_id"`
	Entries     []entryJSON `json:"entries"`
}

// parseSelectRequest validates user input for /v1/select and returns a
// normalized query.
func parseSelectRequest(r *http.Request) (band.Query, error) {
	qs := r.URL.Query()

	rawFreq := strings.TrimSpace(qs.Get("freq_khz"))
	if rawFreq == "" {
		return band.Query{}, errors.New("missing required parameter: freq_khz")
	}
	freq, err := strconv.Atoi(rawFreq)
	if err != nil || freq < 0 {
		return band.Query{}, fmt.Errorf("invalid freq_khz %q", rawFreq)
	}

	bw := 0
	if rawBW := strings.TrimSpace(qs.Get("bandwidth_khz")); rawBW != "" {
		bw, err = strconv.Atoi(rawBW)
		if err != nil || bw < 0 {
			return band.Query{}, fmt.Errorf("invalid bandwidth_khz %q", rawBW)
		}
	}

	dir, ok := band.ParseDirection(strings.TrimSpace(qs.Get("direction")))
	if !ok {
		return band.Query{}, fmt.Errorf("invalid direction %q", qs.Get("direction"))
	}

	var candidates []int
	if rawIDs := strings.TrimSpace(qs.Get("candidates")); rawIDs != "" {
		for _, part := range strings.Split(rawIDs, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return band.Query{}, fmt.Errorf("invalid candidate id %q", part)
			}
			candidates = append(candidates, id)
		}
	}

	return band.Query{
		FreqKHz:      freq,
		BandwidthKHz: bw,
		Direction:    dir,
		Candidates:   candidates,
	}, nil
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	q, err := parseSelectRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if resp, ok := s.cache.get(q); ok {
		observability.IncCacheHit()
		writeJSON(w, resp)
		return
	}
	if s.cache != nil {
		observability.IncCacheMiss()
	}

	sel, found := s.model.Select(q)

	var resp selectResponse
	outcome := observability.OutcomeNone
	if found {
		resp = selectResponse{
			Found:      true,
			HardwareID: sel.HardwareID,
			Direction:  sel.Direction.String(),
			ExtraFlags: sel.ExtraFlags,
		}
		outcome = observability.OutcomeMatch
		if sel.HardwareID == s.model.WidebandID() {
			outcome = observability.OutcomeWideband
		}
	}
	observability.ObserveSelect(q.Direction.String(), outcome)

	s.cache.put(q, resp)
	// A miss is a defined outcome, not an error: still a 200.
	writeJSON(w, resp)
}

func (s *Server) handleBands(w http.ResponseWriter, _ *http.Request) {
	entries := s.model.Entries()
	out := tableJSON{
		Fingerprint: fmt.Sprintf("%016x", s.model.Fingerprint()),
		WidebandID:  s.model.WidebandID(),
		Entries:     make([]entryJSON, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, toEntryJSON(e))
	}
	writeJSON(w, out)
}

func (s *Server) handleBand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid hardware id", http.StatusBadRequest)
		return
	}
	e, ok := s.model.Entry(id)
	if !ok {
		http.Error(w, "no such hardware id", http.StatusNotFound)
		return
	}
	writeJSON(w, toEntryJSON(e))
}

func toEntryJSON(e band.Entry) entryJSON {
	return entryJSON{
		HardwareID:     e.HardwareID,
		Uplink:         toRangeJSON(e.Uplink),
		Downlink:       toRangeJSON(e.Downlink),
		DirectionMask:  e.DirectionMask,
		RadioID:        e.RadioID,
		Band:           e.Band.Name,
		ProtocolBand:   e.ProtocolBand,
		FilterSlot:     e.FilterSlot,
		FiltersInGroup: e.FiltersInGroup,
		ExtraFlags:     e.ExtraFlags,
		CalGroup:       e.Cal.Name,
	}
}

func toRangeJSON(r band.FreqRange) rangeJSON {
	return rangeJSON{
		LowDMHz:  r.LowDMHz,
		HighDMHz: r.HighDMHz,
		LowMHz:   r.LowMHz(),
		HighMHz:  r.HighMHz(),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
