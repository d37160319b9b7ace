package bom

import "sort"

// Missing returns the distinct codes of have that are absent from want,
// sorted ascending. Codes are compared by exact string equality.
func Missing(have, want []string) []string {
	known := make(map[string]struct{}, len(want))
	for _, code := range want {
		known[code] = struct{}{}
	}

	seen := make(map[string]struct{})
	missing := []string{}
	for _, code := range have {
		if _, ok := known[code]; ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		missing = append(missing, code)
	}
	sort.Strings(missing)
	return missing
}

// Unmatched returns the assembly codes of counts that have no row in lookup.
func Unmatched(counts []CountRow, lookup []LookupRow) []string {
	return Missing(AssemblyCodes(counts), InstanceCodes(lookup))
}

// AssemblyCodes returns the assembly code of every count row, in order.
func AssemblyCodes(counts []CountRow) []string {
	codes := make([]string, len(counts))
	for i, row := range counts {
		codes[i] = row.AssemblyCode
	}
	return codes
}

// InstanceCodes returns the non-empty instance codes of lookup, in order.
func InstanceCodes(lookup []LookupRow) []string {
	codes := make([]string, 0, len(lookup))
	for _, row := range lookup {
		if row.InstanceCode != "" {
			codes = append(codes, row.InstanceCode)
		}
	}
	return codes
}
