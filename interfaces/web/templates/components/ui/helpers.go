package ui

import (
	"encoding/json"
	"sort"
)

func hxVals(fields map[string]string) string {
	b, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortArrow(dir string) string {
	switch dir {
	case "asc":
		return " ▲"
	case "desc":
		return " ▼"
	}
	return ""
}

func emptyText(vm ListView) string {
	if vm.Failed {
		return "Could not load data. Try again later."
	}
	return vm.EmptyText
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
