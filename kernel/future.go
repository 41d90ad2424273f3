package kernel

// Poll is the outcome of resuming a Future once.
type Poll uint8

const (
	Pending Poll = iota
	Ready
)

func (p Poll) String() string {
	switch p {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Future is a resumable computation that produces no value.
//
// Poll must return promptly. A Future that returns Pending is responsible for
// arranging that w is woken once it can make progress; it may be polled
// spuriously and must tolerate that.
type Future interface {
	Poll(w Waker) Poll
}

// Dropper is implemented by futures that hold registrations which must be
// released when the future is discarded, completed or not.
type Dropper interface {
	Drop()
}

// FutureFunc adapts a function to the Future interface.
type FutureFunc func(w Waker) Poll

func (f FutureFunc) Poll(w Waker) Poll { return f(w) }

// Drop releases f's registrations if it implements Dropper.
func Drop(f Future) {
	if d, ok := f.(Dropper); ok {
		d.Drop()
	}
}

// Task is a named unit of work driven by an Executor.
type Task struct {
	name string
	fut  Future
}

// NewTask wraps a future for submission.
func NewTask(name string, f Future) Task {
	return Task{name: name, fut: f}
}

func (t Task) Name() string { return t.name }

func (t Task) present() bool { return t.fut != nil }
