package railway

import (
	"fmt"
	"sort"
	"strings"
)

// OperationFailed is raised by Strict when the wrapped component's Result
// fails. It carries the full Result so
// callers can inspect Faults, partial Context, etc.
type OperationFailed struct {
	Result Result
}

func (e *OperationFailed) Error() string {
	return fmt.Sprintf("railway: operation failed: %s", FormatFaults(e.Result.Faults))
}

// strict is the raising wrapper described in 
type strict struct {
	child Component
}

// Strict returns a Component whose Call panics with *OperationFailed when
// the wrapped component fails, and otherwise behaves identically. Intended
// for embedding inside plain Go code that wants to treat failure as
// exceptional rather than carried on the Result.
func Strict(child Component) Component {
	return &strict{child: child}
}

func (s *strict) Name() string         { return "strict(" + s.child.Name() + ")" }
func (s *strict) Signature() Signature { return s.child.Signature() }

func (s *strict) Call(params Params, ctx Context) Result {
	r := s.child.Call(params, ctx)
	if r.Failure() {
		panic(&OperationFailed{Result: r})
	}
	return r
}

// CallStrict runs c and panics with *OperationFailed on failure, otherwise
// returning the successful Result. Equivalent to Strict(c).Call(params, ctx)
// without needing to wire a wrapper Component ahead of time.
func CallStrict(c Component, params Params, ctx Context) Result {
	r := c.Call(params, ctx)
	if r.Failure() {
		panic(&OperationFailed{Result: r})
	}
	return r
}

// FormatFaults renders a list of Faults as a single human-readable summary,
// grouping by code and sorting by frequency.
func FormatFaults(faults []Fault) string {
	if len(faults) == 0 {
		return "no faults"
	}
	if len(faults) == 1 {
		return faults[0].describe()
	}

	counts := map[string]int{}
	for _, f := range faults {
		counts[f.describe()]++
	}
	type entry struct {
		msg   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for msg, c := range counts {
		entries = append(entries, entry{msg, c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	parts := make([]string, len(entries))
	for i, e := range entries {
		if e.count == 1 {
			parts[i] = fmt.Sprintf("%q (1)", e.msg)
		} else {
			parts[i] = fmt.Sprintf("%q (%d)", e.msg, e.count)
		}
	}
	return fmt.Sprintf("%d faults: %s", len(faults), strings.Join(parts, ", "))
}

func (f Fault) describe() string {
	label := f.Code
	if label == "" {
		label = f.Message
	} else if f.Message != "" {
		label = f.Code + ": " + f.Message
	}
	if len(f.Path) == 0 {
		return label
	}
	return label + " @ " + strings.Join(f.Path, ".")
}

// AggregateFault wraps several Faults as a single Go error, e.g. for
// boundaries that must return a plain `error` (tests, CLI exit codes)
// instead of carrying a Result.
type AggregateFault struct {
	Faults []Fault
}

func (e *AggregateFault) Error() string { return FormatFaults(e.Faults) }
