package negamax

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tumbledrop/fingerprint"
)

// DefaultBuckets is the bucket count used when none is configured.
const DefaultBuckets = 1 << 24

var ErrTableAllocation = errors.New("cannot allocate transposition table")

// SearchResult is what the table remembers about a position: the move
// list from the deepest search so far and the window it was searched with.
type SearchResult struct {
	Depth int
	Alpha float64
	Beta  float64
	Moves MoveList
}

type tableEntry struct {
	key    fingerprint.Fingerprint
	result SearchResult
	next   *tableEntry
}

const (
	bucketSize = int(unsafe.Sizeof((*tableEntry)(nil)))
	entrySize  = int(unsafe.Sizeof(tableEntry{}))
)

// TableStats are the table counters.
type TableStats struct {
	Buckets int
	Entries uint64
	Lookups uint64
	Hits    uint64
	// Chained counts entries with a different key that were passed over
	// while walking a chain.
	Chained uint64
}

// Table is a chained hash table of search results keyed by position
// fingerprint. It has a fixed number of buckets and never evicts; it
// grows until Reset. It is not safe for concurrent use.
type Table struct {
	buckets []*tableEntry
	entries uint64
	lookups uint64
	hits    uint64
	chained uint64
}

// NewTable allocates a table with the given number of buckets.
func NewTable(buckets int) (t *Table, err error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("%w: %d buckets", ErrTableAllocation, buckets)
	}
	totalMem := memory.TotalMemory()
	if totalMem > 0 && uint64(buckets) > totalMem/uint64(bucketSize) {
		return nil, fmt.Errorf("%w: %d buckets do not fit in %d bytes of memory",
			ErrTableAllocation, buckets, totalMem)
	}
	need := uint64(buckets) * uint64(bucketSize)
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = fmt.Errorf("%w: %v", ErrTableAllocation, r)
		}
	}()
	t = &Table{buckets: make([]*tableEntry, buckets)}

	log.Debug().Int("buckets", buckets).
		Uint64("bucket-bytes", need).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
	return t, nil
}

// NewTableForMemory sizes a table so that its buckets, plus about one
// entry per bucket, take up the given fraction of system memory. The
// bucket count is rounded down to a power of two.
func NewTableForMemory(fractionOfMemory float64) (*Table, error) {
	if fractionOfMemory <= 0 || fractionOfMemory > 1 {
		return nil, fmt.Errorf("%w: memory fraction %v", ErrTableAllocation, fractionOfMemory)
	}
	totalMem := memory.TotalMemory()
	if totalMem == 0 {
		log.Warn().Msg("cannot-determine-system-memory")
		return NewTable(DefaultBuckets)
	}
	desired := fractionOfMemory * float64(totalMem) / float64(bucketSize+entrySize)
	if desired < 1 {
		desired = 1
	}
	sizePowerOf2 := int(math.Log2(desired))
	buckets := 1 << sizePowerOf2
	log.Info().Int("buckets", buckets).
		Float64("desired-buckets", desired).
		Int("estimated-total-memory-bytes", buckets*(bucketSize+entrySize)).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
	return NewTable(buckets)
}

func (t *Table) bucket(key fingerprint.Fingerprint) **tableEntry {
	return &t.buckets[key.Hash32()%uint32(len(t.buckets))]
}

func (t *Table) find(head *tableEntry, key fingerprint.Fingerprint) *tableEntry {
	for e := head; e != nil; e = e.next {
		if e.key == key {
			return e
		}
		t.chained++
	}
	return nil
}

// Lookup returns the result stored for key, or nil. Keys are compared
// in full, not by hash.
func (t *Table) Lookup(key fingerprint.Fingerprint) *SearchResult {
	t.lookups++
	e := t.find(*t.bucket(key), key)
	if e == nil {
		return nil
	}
	t.hits++
	return &e.result
}

// Store returns the result slot for key, creating a zeroed one if key is
// not in the table yet. Callers fill the slot in place.
func (t *Table) Store(key fingerprint.Fingerprint) *SearchResult {
	head := t.bucket(key)
	if e := t.find(*head, key); e != nil {
		return &e.result
	}
	e := &tableEntry{key: key, next: *head}
	*head = e
	t.entries++
	return &e.result
}

// Reset drops every entry and zeroes the counters.
func (t *Table) Reset() {
	clear(t.buckets)
	t.entries = 0
	t.lookups = 0
	t.hits = 0
	t.chained = 0
}

// EntryCount is the number of stored positions.
func (t *Table) EntryCount() uint64 {
	return t.entries
}

func (t *Table) Stats() TableStats {
	return TableStats{
		Buckets: len(t.buckets),
		Entries: t.entries,
		Lookups: t.lookups,
		Hits:    t.hits,
		Chained: t.chained,
	}
}
