package rating

import (
	"context"
	"fmt"
	"strings"

	"github.com/brequin/brequin/soc/names"
)

type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFallback:
		return "fallback"
	default:
		return "none"
	}
}

// FallbackPolicy decides which index key wins when the substring fallback
// finds more than one candidate.
type FallbackPolicy string

const (
	// FallbackFirst takes the first candidate in index insertion order.
	FallbackFirst FallbackPolicy = "first"
	// FallbackClosest takes the candidate whose length is closest to the
	// normalized instructor name, breaking ties by insertion order.
	FallbackClosest FallbackPolicy = "closest"
	// FallbackUnique only matches when every candidate is the same record.
	FallbackUnique FallbackPolicy = "unique"
	// FallbackNone disables the fallback tier.
	FallbackNone FallbackPolicy = "none"
)

func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch policy := FallbackPolicy(strings.ToLower(strings.TrimSpace(s))); policy {
	case "":
		return FallbackFirst, nil
	case FallbackFirst, FallbackClosest, FallbackUnique, FallbackNone:
		return policy, nil
	default:
		return "", fmt.Errorf("unknown fallback policy %q", s)
	}
}

type Match struct {
	Record *ProfessorRecord
	Tier   Tier
	Key    string
}

func (m Match) Found() bool {
	return m.Record != nil
}

type Matcher struct {
	index  *Index
	policy FallbackPolicy
}

func NewMatcher(index *Index, policy FallbackPolicy) *Matcher {
	if policy == "" {
		policy = FallbackFirst
	}
	return &Matcher{index: index, policy: policy}
}

// IsPlaceholder reports whether instructor names nobody.
func IsPlaceholder(instructor string) bool {
	trimmed := strings.TrimSpace(instructor)
	return trimmed == "" || strings.EqualFold(trimmed, "TBA")
}

func (m *Matcher) Match(instructor string) Match {
	if IsPlaceholder(instructor) {
		return Match{}
	}

	for _, key := range names.Keys(instructor) {
		if record, ok := m.index.Lookup(key); ok {
			return Match{Record: record, Tier: TierExact, Key: key}
		}
	}

	if m.policy == FallbackNone {
		return Match{}
	}
	normalized := names.Normalize(instructor)
	if normalized == "" {
		return Match{}
	}
	if key, ok := m.fallback(normalized); ok {
		record, _ := m.index.Lookup(key)
		return Match{Record: record, Tier: TierFallback, Key: key}
	}
	return Match{}
}

func (m *Matcher) fallback(normalized string) (string, bool) {
	var candidates []string
	for _, key := range m.index.keys {
		if strings.Contains(key, normalized) || strings.Contains(normalized, key) {
			if m.policy == FallbackFirst {
				return key, true
			}
			candidates = append(candidates, key)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	switch m.policy {
	case FallbackClosest:
		best := candidates[0]
		for _, key := range candidates[1:] {
			if lengthGap(key, normalized) < lengthGap(best, normalized) {
				best = key
			}
		}
		return best, true
	case FallbackUnique:
		record := m.index.entries[candidates[0]]
		for _, key := range candidates[1:] {
			if m.index.entries[key] != record {
				return "", false
			}
		}
		return candidates[0], true
	}
	return "", false
}

func lengthGap(a, b string) int {
	if len(a) > len(b) {
		return len(a) - len(b)
	}
	return len(b) - len(a)
}

// Resolve lets a Matcher stand in wherever instructors are resolved one at
// a time. It never fails.
func (m *Matcher) Resolve(_ context.Context, instructor string) (*ProfessorRecord, error) {
	return m.Match(instructor).Record, nil
}
