package numeric

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/joeycumines/go-bignum/bigf"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownOp is returned when an operation is not registered.
	ErrUnknownOp = errors.New(`numeric: unknown operation`)
	// ErrArity is returned when an operation is called with the wrong
	// number of arguments.
	ErrArity = errors.New(`numeric: wrong number of arguments`)
)

type (
	// Handler evaluates an operation, with arguments already checked
	// against the arity of the Op. Floats are computed at the precision of
	// ctx, or of their float operands.
	Handler func(ctx bigf.Context, args []Value) ([]Value, error)

	// Op is a named operation.
	Op struct {
		Fn Handler
		// Name is the lookup key, which is case-insensitive.
		Name string
		// Args names the arguments, e.g. "x y".
		Args string
		// Summary is a short description.
		Summary string
		// MinArgs and MaxArgs bound the number of arguments.
		MinArgs int
		MaxArgs int
	}

	// Registry maps names to operations. It is safe for concurrent use.
	Registry struct {
		ops map[string]*Op
		mu  sync.RWMutex
	}
)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*Op)}
}

// DefaultRegistry returns a new registry, containing the builtin
// operations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, op := range builtins() {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds op, failing if the name is empty or already taken, or the
// arity is invalid.
func (r *Registry) Register(op Op) error {
	key := strings.ToLower(op.Name)
	switch {
	case key == ``:
		return errors.New(`numeric: register: empty name`)
	case op.Fn == nil:
		return errors.Errorf(`numeric: register %q: nil handler`, op.Name)
	case op.MinArgs < 0 || op.MaxArgs < op.MinArgs:
		return errors.Errorf(`numeric: register %q: invalid arity`, op.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ops[key]; ok {
		return errors.Errorf(`numeric: register %q: duplicate name`, op.Name)
	}
	r.ops[key] = &op
	return nil
}

// Lookup returns the operation with the given name.
func (r *Registry) Lookup(name string) (*Op, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[strings.ToLower(name)]
	return op, ok
}

// Ops returns every operation, sorted by name.
func (r *Registry) Ops() []*Op {
	r.mu.RLock()
	ops := make([]*Op, 0, len(r.ops))
	for _, op := range r.ops {
		ops = append(ops, op)
	}
	r.mu.RUnlock()
	slices.SortFunc(ops, func(a, b *Op) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ops
}

// Names returns the name of every operation, sorted.
func (r *Registry) Names() []string {
	ops := r.Ops()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

// Call evaluates the named operation.
func (r *Registry) Call(ctx bigf.Context, name string, args ...Value) ([]Value, error) {
	op, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOp, `%q`, name)
	}
	if len(args) < op.MinArgs || len(args) > op.MaxArgs {
		return nil, errors.Wrapf(ErrArity, `%s: got %d, want %s`, op.Name, len(args), op.arity())
	}
	return op.Fn(ctx, args)
}

// Eval parses args per ParseBase, at the precision of ctx, then evaluates
// the named operation.
func (r *Registry) Eval(ctx bigf.Context, base int, name string, args ...string) ([]Value, error) {
	values := make([]Value, len(args))
	for i, s := range args {
		v, err := ParseBase(s, base, ctx.Prec)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return r.Call(ctx, name, values...)
}

func (op *Op) arity() string {
	if op.MinArgs == op.MaxArgs {
		return strconv.Itoa(op.MinArgs)
	}
	return strconv.Itoa(op.MinArgs) + `-` + strconv.Itoa(op.MaxArgs)
}

// Usage returns the name and arguments, e.g. "atan2 y x".
func (op *Op) Usage() string {
	if op.Args == `` {
		return op.Name
	}
	return op.Name + ` ` + op.Args
}
