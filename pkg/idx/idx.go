// Package idx mints request identifiers. IDs are ULIDs so request logs sort
// by arrival time.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type RequestID string

// Zero is the empty RequestID.
const Zero RequestID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	globalOnce sync.Once
	global     *generator
)

// generator is a tool to safely generate ULIDs concurrently using a monotonic
// source.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) newAt(t time.Time) RequestID {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(t), g.entropy)
	return RequestID(u.String())
}

func initGlobal() {
	global = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a RequestID stamped with the current UTC time.
func New() RequestID {
	return NewAt(time.Now().UTC())
}

// NewAt generates an ID at the provided time.
func NewAt(t time.Time) RequestID {
	globalOnce.Do(initGlobal)
	return global.newAt(t)
}

// Parse validates a client supplied request id.
func Parse(s string) (RequestID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return RequestID(s), nil
}

// FromHeader returns the id carried in an X-Request-ID value when it is a
// valid ULID, otherwise a fresh one.
func FromHeader(v string) RequestID {
	if id, err := Parse(v); err == nil {
		return id
	}
	return New()
}

func (id RequestID) IsZero() bool { return id == Zero }

func (id RequestID) String() string { return string(id) }

// Time extracts the embedded UTC timestamp, or the zero time for invalid IDs.
func (id RequestID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
