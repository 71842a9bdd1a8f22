// Package runtime hosts registered programs and dispatches raw instruction
// payloads to them, in the manner of an on-chain execution environment. The
// runtime itself knows nothing about payload contents; programs decode and
// interpret the bytes they receive.
package runtime

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/bytecalc/gobytecalc/pkg/proto"
)

// ErrProgramNotFound is returned by Invoke when no program is registered at
// the requested address.
var ErrProgramNotFound = errors.New("program not found")

// Program is a callable unit hosted by the Runtime. ProcessInstruction
// receives the invocation context, interprets the raw payload and reports
// the terminal outcome of the call.
type Program interface {
	ProcessInstruction(ic *Invocation) error
}

// Stats is a point-in-time snapshot of the runtime counters.
type Stats struct {
	Programs    int    `json:"programs"`
	Invocations uint64 `json:"invocations"`
	Failures    uint64 `json:"failures"`
}

// Runtime dispatches invocations to registered programs. All methods are
// safe for concurrent use.
type Runtime struct {
	mu          sync.RWMutex
	programs    map[proto.Address]Program
	logger      *zap.Logger
	invocations atomic.Uint64
	failures    atomic.Uint64
}

type Option func(*Runtime) error

// WithLogger sets the logger used to mirror invocation trace lines.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		r.logger = logger
		return nil
	}
}

// NewRuntime creates an empty runtime with the given options applied.
func NewRuntime(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		programs: make(map[proto.Address]Program),
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		if err := o(r); err != nil {
			return nil, errors.Wrap(err, "failed to create runtime")
		}
	}
	return r, nil
}

// Register makes the program invocable at the given address. Registering a
// second program at an occupied address is an error.
func (r *Runtime) Register(address proto.Address, p Program) error {
	if p == nil {
		return errors.New("nil program")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[address]; ok {
		return errors.Errorf("program already registered at address '%s'", address.String())
	}
	r.programs[address] = p
	return nil
}

// Invoke dispatches the raw payload to the program registered at the given
// address, passing the account context through untouched. The returned
// result carries the invocation trace and return data even when the program
// fails; the error, if any, is the program's terminal failure wrapped with
// the invocation context.
func (r *Runtime) Invoke(ctx context.Context, address proto.Address, accounts []proto.Address, data []byte) (InvocationResult, error) {
	if err := ctx.Err(); err != nil {
		return InvocationResult{}, errors.Wrap(err, "invocation aborted")
	}
	r.mu.RLock()
	p, ok := r.programs[address]
	r.mu.RUnlock()
	if !ok {
		return InvocationResult{}, errors.Wrapf(ErrProgramNotFound, "no program registered at address '%s'", address.String())
	}
	r.invocations.Inc()
	ic := &Invocation{program: address, accounts: accounts, data: data, logger: r.logger}
	if err := p.ProcessInstruction(ic); err != nil {
		r.failures.Inc()
		return ic.result(), errors.Wrapf(err, "invocation of program '%s' failed", address.String())
	}
	return ic.result(), nil
}

// Programs returns the addresses of all registered programs in a stable
// order.
func (r *Runtime) Programs() []proto.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addresses := make([]proto.Address, 0, len(r.programs))
	for a := range r.programs {
		addresses = append(addresses, a)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return bytes.Compare(addresses[i][:], addresses[j][:]) < 0
	})
	return addresses
}

// Stats returns a snapshot of the runtime counters.
func (r *Runtime) Stats() Stats {
	r.mu.RLock()
	n := len(r.programs)
	r.mu.RUnlock()
	return Stats{
		Programs:    n,
		Invocations: r.invocations.Load(),
		Failures:    r.failures.Load(),
	}
}
