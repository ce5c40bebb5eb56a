package engine

// Task is a resumable timed job advanced once per tick by a TaskRunner.
// Tick runs every advance with the elapsed time so far; Done runs once, on
// the advance where Elapsed first reaches Duration. A zero Duration
// completes on the first advance.
type Task struct {
	Name     string
	Duration float32
	Tick     func(elapsed, deltaTime float32)
	Done     func()

	elapsed  float32
	finished bool
}

// Elapsed returns the time the task has been running.
func (t *Task) Elapsed() float32 {
	return t.elapsed
}

// Finished reports whether Done has run.
func (t *Task) Finished() bool {
	return t.finished
}

// Cancel stops the task without running Done.
func (t *Task) Cancel() {
	t.finished = true
}

func (t *Task) advance(deltaTime float32) {
	if t.finished {
		return
	}
	t.elapsed += deltaTime
	if t.Tick != nil {
		t.Tick(t.elapsed, deltaTime)
	}
	if t.elapsed >= t.Duration {
		t.finished = true
		if t.Done != nil {
			t.Done()
		}
	}
}

// TaskRunner owns the active tasks of a simulation. Tasks started while the
// runner is advancing are queued and first advance on the next tick, so a
// task never runs twice in one tick.
type TaskRunner struct {
	active    []*Task
	pending   []*Task
	advancing bool
}

func NewTaskRunner() *TaskRunner {
	return &TaskRunner{}
}

// Start schedules t and returns it.
func (r *TaskRunner) Start(t *Task) *Task {
	if r.advancing {
		r.pending = append(r.pending, t)
	} else {
		r.active = append(r.active, t)
	}
	return t
}

// After schedules fn to run once delay seconds have passed.
func (r *TaskRunner) After(name string, delay float32, fn func()) *Task {
	return r.Start(&Task{Name: name, Duration: delay, Done: fn})
}

// Advance moves every active task forward by deltaTime and drops finished ones.
func (r *TaskRunner) Advance(deltaTime float32) {
	r.advancing = true
	kept := r.active[:0]
	for _, t := range r.active {
		t.advance(deltaTime)
		if !t.finished {
			kept = append(kept, t)
		}
	}
	// Clear the tail so finished tasks can be collected
	for i := len(kept); i < len(r.active); i++ {
		r.active[i] = nil
	}
	r.active = append(kept, r.pending...)
	r.pending = nil
	r.advancing = false
}

// Len returns the number of tasks that will advance on the next tick.
func (r *TaskRunner) Len() int {
	return len(r.active) + len(r.pending)
}
