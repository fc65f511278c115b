package capability

import (
	"fmt"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
)

// ID identifies one interpretation concern (guarding, printing, decoding...).
// IDs compare by identity: two calls to New with the same name yield distinct IDs.
type ID struct {
	token *token
}

type token struct {
	name string
	seq  uint32
}

var (
	registryMu sync.Mutex
	registry   []ID
	nextSeq    atomic.Uint64
)

// New issues a fresh capability identifier. The name is descriptive only.
func New(name string) ID {
	seq, err := safecast.Conv[uint32](nextSeq.Add(1))
	if err != nil {
		panic(fmt.Errorf("capability id overflow: %w", err))
	}
	id := ID{token: &token{name: name, seq: seq}}
	registryMu.Lock()
	registry = append(registry, id)
	registryMu.Unlock()
	return id
}

// All returns every identifier issued so far, in issue order.
func All() []ID {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]ID, len(registry))
	copy(out, registry)
	return out
}

// Name returns the descriptive name the ID was issued with.
func (id ID) Name() string {
	if id.token == nil {
		return ""
	}
	return id.token.name
}

// Valid reports whether the ID was issued by New.
func (id ID) Valid() bool {
	return id.token != nil
}

func (id ID) String() string {
	if id.token == nil {
		return "capability(<nil>)"
	}
	return fmt.Sprintf("capability(%s#%d)", id.token.name, id.token.seq)
}

// Well-known capabilities shared by the interpreters in this module.
var (
	Guard       = New("guard")
	Generator   = New("generator")
	Printer     = New("printer")
	Decoder     = New("decoder")
	JSONDecoder = New("json-decoder")
	JSONEncoder = New("json-encoder")
)
