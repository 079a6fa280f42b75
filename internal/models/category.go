package models

import "strings"

// CategoryCustom is the fallback bucket for anything outside the allow-list.
const CategoryCustom = "Custom"

// DefaultCategories is the built-in allow-list, used when no override
// is configured.
var DefaultCategories = []string{"Food", "Travel", "Rent", "Shopping", "Entertainment", CategoryCustom}

// CategorySet is an injected expense-category allow-list.
type CategorySet struct {
	names []string
	index map[string]struct{}
}

// NewCategorySet builds a set from the given names, falling back to
// DefaultCategories when none are given. CategoryCustom is always a member
// so Normalize has somewhere to land.
func NewCategorySet(names []string) CategorySet {
	if len(names) == 0 {
		names = DefaultCategories
	}

	s := CategorySet{index: make(map[string]struct{}, len(names)+1)}
	for _, n := range names {
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}
	if _, ok := s.index[CategoryCustom]; !ok {
		s.index[CategoryCustom] = struct{}{}
		s.names = append(s.names, CategoryCustom)
	}
	return s
}

// Names returns the allow-list in declaration order.
func (s CategorySet) Names() []string {
	return s.names
}

// Normalize trims the raw value and coerces anything not in the
// allow-list to CategoryCustom. Unknown values are never rejected.
func (s CategorySet) Normalize(raw string) string {
	c := strings.TrimSpace(raw)
	if c == "" {
		return CategoryCustom
	}
	if _, ok := s.index[c]; ok {
		return c
	}
	return CategoryCustom
}
