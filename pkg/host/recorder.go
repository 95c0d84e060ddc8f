package host

import "sync"

// Call is one recorded Adapter invocation.
type Call struct {
	Op     Op
	Target Node   // node the call mutated (parent for SetText/AppendChild/RemoveChild)
	Child  Node   // appended or removed child
	Tag    string // CreateNode
	Name   string // SetStyle property
	Value  string // text, class or style value
}

// Recorder is an Adapter that records every call before forwarding it to the
// wrapped Adapter.
type Recorder struct {
	next Adapter

	mu    sync.Mutex
	calls []Call
}

var _ Adapter = (*Recorder)(nil)

// NewRecorder wraps next. If next is nil, calls are only recorded.
func NewRecorder(next Adapter) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how many calls of op were recorded. Zero counts all calls.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if op == 0 {
		return len(r.calls)
	}
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// CreateNode implements Adapter.
func (r *Recorder) CreateNode(tag string) Node {
	var n Node
	if r.next != nil {
		n = r.next.CreateNode(tag)
	}
	r.record(Call{Op: OpCreateNode, Target: n, Tag: tag})
	return n
}

// SetText implements Adapter.
func (r *Recorder) SetText(parent Node, text string) {
	r.record(Call{Op: OpSetText, Target: parent, Value: text})
	if r.next != nil {
		r.next.SetText(parent, text)
	}
}

// SetClass implements Adapter.
func (r *Recorder) SetClass(n Node, class string) {
	r.record(Call{Op: OpSetClass, Target: n, Value: class})
	if r.next != nil {
		r.next.SetClass(n, class)
	}
}

// SetStyle implements Adapter.
func (r *Recorder) SetStyle(n Node, prop, value string) {
	r.record(Call{Op: OpSetStyle, Target: n, Name: prop, Value: value})
	if r.next != nil {
		r.next.SetStyle(n, prop, value)
	}
}

// AppendChild implements Adapter.
func (r *Recorder) AppendChild(parent, child Node) {
	r.record(Call{Op: OpAppendChild, Target: parent, Child: child})
	if r.next != nil {
		r.next.AppendChild(parent, child)
	}
}

// RemoveChild implements Adapter.
func (r *Recorder) RemoveChild(parent, child Node) {
	r.record(Call{Op: OpRemoveChild, Target: parent, Child: child})
	if r.next != nil {
		r.next.RemoveChild(parent, child)
	}
}
