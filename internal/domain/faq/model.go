package faq

import (
	"errors"
	"strings"
	"time"
)

// DefaultCategory groups FAQs saved without a category.
const DefaultCategory = "General"

// Domain errors
var (
	ErrEmptyQuestion = errors.New("faq question cannot be empty")
	ErrEmptyAnswer   = errors.New("faq answer cannot be empty")
)

// FAQ is one question and answer.
type FAQ struct {
	ID          string
	Question    string
	Answer      string
	Category    string
	SortOrder   int
	IsPublished bool
	CreatedAt   time.Time
}

// Validate checks the FAQ has valid data and fills the default category.
// PRE: FAQ struct is populated
// POST: Returns nil if valid; Category is non-empty
func (f *FAQ) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}
	if strings.TrimSpace(f.Category) == "" {
		f.Category = DefaultCategory
	}
	return nil
}

// Group is the FAQs of one category, in display order.
type Group struct {
	Category string
	Items    []FAQ
}

// GroupByCategory buckets faqs by category, keeping the order in which each
// category first appears and the relative order of items within it.
func GroupByCategory(faqs []FAQ) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, f := range faqs {
		cat := strings.TrimSpace(f.Category)
		if cat == "" {
			cat = DefaultCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Items = append(groups[i].Items, f)
	}
	return groups
}

// NoneOpen is the accordion state with every answer collapsed.
const NoneOpen = -1

// Toggle returns the accordion state after clicking item i: it opens i, or
// collapses everything when i was already open.
func Toggle(active, i int) int {
	if active == i {
		return NoneOpen
	}
	return i
}
