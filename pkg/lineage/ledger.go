package lineage

import (
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/beeline/pkg/tour"
)

var (
	// ErrInvalidID is returned by [Restore] when a record has an id below 1.
	ErrInvalidID = errors.New("individual id must be positive")

	// ErrDuplicateID is returned by [Restore] when two records share an id.
	ErrDuplicateID = errors.New("duplicate individual id")
)

// ID identifies an individual within a ledger.
type ID int64

// NoID marks an absent parent. Registered ids start at 1, so NoID never
// collides with a real individual.
const NoID ID = 0

// Valid reports whether id can reference a registered individual.
func (id ID) Valid() bool { return id > NoID }

// RunMeta holds the run-level parameters recorded on every individual.
type RunMeta struct {
	Generations  int     // Total planned generations of the run
	MutationRate float64 // Mutation rate in effect
	ElitismRate  float64 // Elitism rate of the generation that produced the individual
	Crossover    string  // Crossover method tag
}

// Individual is an immutable ledger record: one tour plus its identity and
// lineage metadata.
type Individual struct {
	ID           ID        `json:"id" bson:"id"`
	SimulationID string    `json:"simulation_id" bson:"simulation_id"`
	Generation   int       `json:"generation" bson:"generation"`
	Tour         tour.Tour `json:"tour" bson:"tour"`
	Length       float64   `json:"distance" bson:"distance"`
	ParentA      ID        `json:"parent_1,omitempty" bson:"parent_1,omitempty"`
	ParentB      ID        `json:"parent_2,omitempty" bson:"parent_2,omitempty"`
	Generations  int       `json:"n_generations" bson:"n_generations"`
	MutationRate float64   `json:"mutation_rate" bson:"mutation_rate"`
	ElitismRate  float64   `json:"elitism_rate" bson:"elitism_rate"`
	Crossover    string    `json:"crossover" bson:"crossover"`
	CreatedAt    time.Time `json:"timestamp" bson:"timestamp"`
}

// IsFounder reports whether the individual has no recorded parents.
func (ind Individual) IsFounder() bool {
	return !ind.ParentA.Valid() && !ind.ParentB.Valid()
}

// clone returns a copy that shares no memory with ind.
func (ind Individual) clone() Individual {
	ind.Tour = ind.Tour.Clone()
	return ind
}

// Entry describes an individual to register. The ledger assigns the id and
// the creation timestamp.
type Entry struct {
	SimulationID string
	Generation   int
	Tour         tour.Tour
	Length       float64
	ParentA      ID
	ParentB      ID
	Run          RunMeta
}

// Source is read access to individuals by id.
// Implementations report a miss with ok == false.
type Source interface {
	Get(id ID) (ind Individual, ok bool)
}

// Ledger is the append-only store of every individual created during a run.
//
// The zero value is not usable; create a Ledger with [NewLedger] or [Restore].
// Ledger is not safe for concurrent use without external synchronization.
type Ledger struct {
	records map[ID]Individual
	order   []ID
	next    ID
	now     func() time.Time
}

// LedgerOption configures a [Ledger].
type LedgerOption func(*Ledger)

// WithClock sets the clock used to stamp registered individuals.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLedger creates an empty ledger whose first registered id is 1.
func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		records: make(map[ID]Individual),
		next:    1,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Restore rebuilds a ledger from persisted records, keeping their ids and
// timestamps. Records are kept in the given order. Subsequent registrations
// continue after the largest restored id.
func Restore(records []Individual, opts ...LedgerOption) (*Ledger, error) {
	l := NewLedger(opts...)
	for _, r := range records {
		if !r.ID.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidID, r.ID)
		}
		if _, exists := l.records[r.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		l.records[r.ID] = r.clone()
		l.order = append(l.order, r.ID)
		if r.ID >= l.next {
			l.next = r.ID + 1
		}
	}
	return l, nil
}

// Register stores a new immutable individual and returns its id.
// Ids start at 1, strictly increase and are never reused. The tour is
// copied, so callers may reuse their slice.
func (l *Ledger) Register(e Entry) ID {
	id := l.next
	l.next++

	l.records[id] = Individual{
		ID:           id,
		SimulationID: e.SimulationID,
		Generation:   e.Generation,
		Tour:         e.Tour.Clone(),
		Length:       e.Length,
		ParentA:      e.ParentA,
		ParentB:      e.ParentB,
		Generations:  e.Run.Generations,
		MutationRate: e.Run.MutationRate,
		ElitismRate:  e.Run.ElitismRate,
		Crossover:    e.Run.Crossover,
		CreatedAt:    l.now(),
	}
	l.order = append(l.order, id)
	return id
}

// Get returns the individual with the given id. The returned tour is a copy.
func (l *Ledger) Get(id ID) (Individual, bool) {
	ind, ok := l.records[id]
	if !ok {
		return Individual{}, false
	}
	return ind.clone(), true
}

// Len returns the number of registered individuals.
func (l *Ledger) Len() int { return len(l.order) }

// All returns every individual in registration order.
func (l *Ledger) All() []Individual {
	out := make([]Individual, len(l.order))
	for i, id := range l.order {
		out[i] = l.records[id].clone()
	}
	return out
}

// Generation returns the individuals registered for generation g, in
// registration order. Elites carried into later generations are reported
// only under the generation that created them.
func (l *Ledger) Generation(g int) []Individual {
	var out []Individual
	for _, id := range l.order {
		if r := l.records[id]; r.Generation == g {
			out = append(out, r.clone())
		}
	}
	return out
}

// Ensure Ledger implements Source.
var _ Source = (*Ledger)(nil)
