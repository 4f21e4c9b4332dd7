package category

import (
	"slices"
	"strings"
	"sync"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// RecentCap is the maximum length of a most-recently-used list.
const RecentCap = 10

// Touch moves c to the front of list, most recent first, and caps the result
// at RecentCap. list is not modified.
func Touch(c ledger.Category, list []ledger.Category) []ledger.Category {
	out := make([]ledger.Category, 0, min(len(list)+1, RecentCap))
	out = append(out, c)

	for _, other := range list {
		if len(out) == RecentCap {
			break
		}

		if other.Equal(c) {
			continue
		}

		out = append(out, other)
	}

	return out
}

// Recent keeps the MRU list for category pickers.
type Recent struct {
	mu   sync.Mutex
	list []ledger.Category
}

func (r *Recent) Touch(c ledger.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.list = Touch(c, r.list)
}

// List returns a copy of the MRU list.
func (r *Recent) List() []ledger.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.list)
}

// Order returns all with recently used categories first, in MRU order,
// followed by the rest sorted by name. Recent entries missing from all are
// dropped.
func (r *Recent) Order(all []*ledger.Category) []*ledger.Category {
	recent := r.List()

	out := make([]*ledger.Category, 0, len(all))
	used := make(map[string]bool, len(recent))

	for _, rc := range recent {
		if c, ok := Find(rc.Name, all); ok {
			out = append(out, c)
			used[ledger.NormalizeName(c.Name)] = true
		}
	}

	rest := make([]*ledger.Category, 0, len(all))

	for _, c := range all {
		if !used[ledger.NormalizeName(c.Name)] {
			rest = append(rest, c)
		}
	}

	slices.SortFunc(rest, func(a, b *ledger.Category) int {
		return strings.Compare(ledger.NormalizeName(a.Name), ledger.NormalizeName(b.Name))
	})

	return append(out, rest...)
}
