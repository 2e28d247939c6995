// Package id generates time-sortable record identifiers.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out monotonic ULIDs. The zero value is not usable; use
// NewGenerator.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewGenerator returns a Generator seeded from crypto/rand.
func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)}
}

// At returns an ID stamped with t. IDs from one Generator sort in call
// order as long as t does not go backwards.
func (g *Generator) At(t time.Time) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

var std = NewGenerator()

// New returns an ID stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns an ID stamped with t, panicking if entropy is exhausted.
func NewAt(t time.Time) string {
	s, err := std.At(t)
	if err != nil {
		panic(err)
	}
	return s
}

// Time extracts the timestamp encoded in s.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
