package fault

import "errors"

// Engine evaluates an ordered set of fault objects: the OS-defined list
// first, then the caller's user-defined list, matching
// os_fault_object_list[] being scanned ahead of user_fault_object_list[].
type Engine struct {
	os   []*Object
	user []*Object
}

// NewEngine constructs an Engine over the given OS and user fault object
// lists. The slices are retained, not copied: objects are mutated
// in-place by ScanAll.
func NewEngine(osObjects, userObjects []*Object) *Engine {
	return &Engine{os: osObjects, user: userObjects}
}

// ScanAll evaluates every enabled object in the OS list, then the user
// list, in order. It returns the scan's reduced Action (the
// highest-priority class among currently Latched objects), the
// Transitions observed this cycle (for logging), and a combined error
// for any malformed descriptors encountered (scanning continues past a
// malformed descriptor; it is simply skipped for the remainder of this
// cycle).
func (e *Engine) ScanAll() (Action, []Transition, error) {
	var (
		action      Action
		transitions []Transition
		errs        []error
	)

	scan := func(objs []*Object) {
		for _, o := range objs {
			if o == nil || !o.Enabled {
				continue
			}
			t, err := o.step()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if t.Kind != NoTransition {
				transitions = append(transitions, t)
			}
			if o.Latched {
				if a := classAction(o.Class); a > action {
					action = a
				}
			}
		}
	}

	scan(e.os)
	scan(e.user)

	return action, transitions, errors.Join(errs...)
}

// Objects returns every registered object (OS list, then user list), for
// status reporting.
func (e *Engine) Objects() []*Object {
	out := make([]*Object, 0, len(e.os)+len(e.user))
	out = append(out, e.os...)
	out = append(out, e.user...)
	return out
}
