package list

import "strings"

// RemovableList is an insertion-ordered list with deferred negation: an
// element prefixed `~x` removes `x` if present, otherwise is stored as
// a pending negation; a later positive `x` cancels a pending negation
// instead of being inserted.
type RemovableList struct {
	items     []string
	itemSet   map[string]struct{}
	negations []string
	negSet    map[string]struct{}
}

// NewRemovableList returns an empty RemovableList.
func NewRemovableList() *RemovableList {
	return &RemovableList{
		itemSet: map[string]struct{}{},
		negSet:  map[string]struct{}{},
	}
}

// RemovableListFrom builds a RemovableList from a slice of possibly
// `~`-prefixed entries, applying AppendIfNew in order.
func RemovableListFrom(items []string) *RemovableList {
	l := NewRemovableList()
	for _, it := range items {
		l.AppendIfNew(it)
	}
	return l
}

// Items returns the resolved, positive list contents in order.
func (l *RemovableList) Items() []string {
	if l == nil {
		return nil
	}
	return l.items
}

func (l *RemovableList) removeItem(item string) bool {
	for i, it := range l.items {
		if it == item {
			l.items = append(l.items[:i], l.items[i+1:]...)
			delete(l.itemSet, item)
			return true
		}
	}
	return false
}

func (l *RemovableList) handleNegation(negItem string) {
	if l.removeItem(negItem) {
		return
	}
	if _, ok := l.negSet[negItem]; !ok {
		l.negations = append(l.negations, negItem)
		l.negSet[negItem] = struct{}{}
	}
}

func (l *RemovableList) removeNegation(item string) bool {
	for i, n := range l.negations {
		if n == item {
			l.negations = append(l.negations[:i], l.negations[i+1:]...)
			delete(l.negSet, item)
			return true
		}
	}
	return false
}

// AppendIfNew appends or removes item per the negation rules above. A
// `~`-prefixed item triggers a negation; otherwise the item is inserted
// unless already present, or a matching pending negation is cancelled.
func (l *RemovableList) AppendIfNew(item string) {
	if neg, ok := strings.CutPrefix(item, "~"); ok {
		l.handleNegation(neg)
		return
	}
	if l.removeNegation(item) {
		return
	}
	if _, ok := l.itemSet[item]; ok {
		return
	}
	l.items = append(l.items, item)
	l.itemSet[item] = struct{}{}
}

// Merge merges other into l: other's negations are processed first
// (removing items already present), then other's items are appended if
// new, mirroring original_source's merge_impl ordering.
func (l *RemovableList) Merge(other *RemovableList) {
	if other == nil {
		return
	}
	for _, n := range other.negations {
		l.handleNegation(n)
	}
	for _, it := range other.items {
		l.AppendIfNew(it)
	}
}
