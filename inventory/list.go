package inventory

// List is the client-side mirror of the user's items, kept in the order the
// server listed them. The zero value is an empty list.
//
// A List is not safe for concurrent use.
type List struct {
	items []Item
}

// NewList returns a list holding a copy of items.
func NewList(items []Item) *List {
	l := &List{}
	l.Replace(items)
	return l
}

// Replace discards the current contents.
func (l *List) Replace(items []Item) {
	l.items = append(make([]Item, 0, len(items)), items...)
}

func (l *List) Append(it Item) {
	l.items = append(l.items, it)
}

// Update swaps in it at the position of the item with the same id.
// It reports false when no such item is held.
func (l *List) Update(it Item) bool {
	i := l.index(it.ID)
	if i < 0 {
		return false
	}
	l.items[i] = it
	return true
}

// Remove drops the item with the given id.
func (l *List) Remove(id int64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *List) Find(id int64) (Item, bool) {
	i := l.index(id)
	if i < 0 {
		return Item{}, false
	}
	return l.items[i], true
}

// Items returns a copy of the held items.
func (l *List) Items() []Item {
	return append([]Item(nil), l.items...)
}

func (l *List) Len() int { return len(l.items) }

func (l *List) Summary() Summary { return Summarize(l.items) }

func (l *List) Rows() []Row { return Rows(l.items) }

func (l *List) index(id int64) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
