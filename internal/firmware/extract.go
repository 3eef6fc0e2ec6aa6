package firmware

import (
	"regexp"
	"strconv"
	"strings"
)

// intMaxSentinel is what the header's INT_MAX token resolves to, the
// platform's 32-bit signed maximum.
const intMaxSentinel = 2147483647

// EnumMember is one enumerator with its resolved value.
type EnumMember struct {
	Name  string
	Value int64
}

var (
	enumBlockPattern = regexp.MustCompile(`(?s)typedef\s+enum\s*\{(.*?)\}\s*(\w+)\s*;`)
	enumEntryPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:=\s*([^,/]+))?\s*,?\s*(?://.*)?$`)
	definePattern    = regexp.MustCompile(`^#define\s+([A-Z0-9_]+)\s+\(?([^\s)]+)\)?`)
)

// ExtractEnums collects the allow-listed typedef enum blocks from the
// header and resolves member values with C enumerator semantics:
// an explicit value (base-prefixed literals accepted, INT_MAX maps to
// the 32-bit maximum) becomes current, a bare member is previous+1, and
// the first bare member is 0. A member whose explicit value fails to
// parse is skipped without aborting the block.
func ExtractEnums(header string, g Grammar) map[string][]EnumMember {
	keep := map[string]bool{g.DirectionEnum: true, g.BandEnum: true, g.CalEnum: true}

	enums := make(map[string][]EnumMember)
	for _, block := range enumBlockPattern.FindAllStringSubmatch(header, -1) {
		body, name := block[1], block[2]
		if !keep[name] {
			continue
		}
		enums[name] = parseEnumBody(body)
	}
	return enums
}

func parseEnumBody(body string) []EnumMember {
	var members []EnumMember
	var current int64
	haveCurrent := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		m := enumEntryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, valText := m[1], strings.TrimSpace(m[2])
		if valText != "" {
			if valText == "INT_MAX" {
				current = intMaxSentinel
			} else {
				v, err := strconv.ParseInt(valText, 0, 64)
				if err != nil {
					// Expression-valued enumerator outside our domain.
					continue
				}
				current = v
			}
		} else if haveCurrent {
			current++
		} else {
			current = 0
		}
		haveCurrent = true
		members = append(members, EnumMember{Name: name, Value: current})
	}
	return members
}

// ExtractMacros collects the allow-listed #define constants. Lines
// whose value token is not an integer are skipped — the both-directions
// mask in particular is usually written as an OR expression and is
// derived here instead, as uplink|downlink, whenever both inputs were
// found.
func ExtractMacros(header string, g Grammar) map[string]int64 {
	keep := make(map[string]bool, len(g.Macros))
	for _, name := range g.Macros {
		keep[name] = true
	}

	values := make(map[string]int64)
	for _, line := range strings.Split(header, "\n") {
		m := definePattern.FindStringSubmatch(line)
		if m == nil || !keep[m[1]] {
			continue
		}
		if m[1] == g.BothMaskMacro {
			continue
		}
		v, err := strconv.ParseInt(strings.Trim(m[2], "()"), 0, 64)
		if err != nil {
			continue
		}
		values[m[1]] = v
	}

	ul, haveUL := values[g.UplinkMaskMacro]
	dl, haveDL := values[g.DownlinkMaskMacro]
	if haveUL && haveDL && g.BothMaskMacro != "" {
		values[g.BothMaskMacro] = ul | dl
	}
	return values
}
