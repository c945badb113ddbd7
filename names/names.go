package names

import (
	"strings"
)

var suffixes = map[string]bool{
	"jr":        true,
	"sr":        true,
	"ii":        true,
	"iii":       true,
	"iv":        true,
	"phd":       true,
	"md":        true,
	"prof":      true,
	"professor": true,
	"dr":        true,
	"doctor":    true,
}

// Normalize lowercases name, collapses whitespace and drops one trailing
// suffix token. Leading titles such as "Dr." are kept.
func Normalize(name string) string {
	tokens := strings.Fields(strings.ToLower(name))
	if len(tokens) > 1 && suffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// FormatVariants returns name followed by its rendering in the other
// convention: "Last, First Middle" gains "First Last" and "First ... Last"
// gains "Last, First". Single tokens have no alternate form.
func FormatVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	variants := []string{name}

	if strings.Contains(name, ",") {
		parts := strings.Split(name, ",")
		if len(parts) != 2 {
			return variants
		}
		last := strings.TrimSpace(parts[0])
		firstMiddle := strings.Fields(parts[1])
		if last == "" || len(firstMiddle) == 0 {
			return variants
		}
		return append(variants, firstMiddle[0]+" "+last)
	}

	tokens := strings.Fields(name)
	if len(tokens) >= 2 {
		variants = append(variants, tokens[len(tokens)-1]+", "+tokens[0])
	}
	return variants
}

// Keys returns the normalized forms of every variant of name, in variant
// order, skipping empty and repeated keys.
func Keys(name string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, variant := range FormatVariants(name) {
		key := Normalize(variant)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}
