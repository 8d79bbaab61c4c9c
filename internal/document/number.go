package document

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Numbering hands out running document numbers per kind and year,
// e.g. QT-2026-00001. Safe for concurrent use.
type Numbering struct {
	mu   sync.Mutex
	next map[string]int
}

func NewNumbering() *Numbering {
	return &Numbering{next: map[string]int{}}
}

// Next returns the following number for the kind in the given year.
func (n *Numbering) Next(kind Kind, at time.Time) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	key := fmt.Sprintf("%s-%d", kind.Prefix(), at.Year())
	n.next[key]++
	return fmt.Sprintf("%s-%05d", key, n.next[key])
}

// Issue stamps a draft with an identity. The draft's own number is kept
// when it already carries one.
func (n *Numbering) Issue(draft Draft, at time.Time) Issued {
	number := draft.DocNumber
	if number == "" {
		number = n.Next(draft.Kind, at)
	}
	return Issued{
		DocID:     uuid.New(),
		DocNumber: number,
		Kind:      draft.Kind,
		IssuedAt:  at,
	}
}
