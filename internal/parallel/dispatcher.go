package parallel

import (
	"runtime"
	"sync"
)

// Task is a unit of work run by a Dispatcher worker.
type Task func()

// Dispatcher is a fixed-size pool of worker goroutines fed from a FIFO task queue.
//
// Tasks close over caller-owned state; the dispatcher never copies it, so anything a task
// touches must stay alive until Join returns. Tasks submitted before a Join may run in
// any order and concurrently.
type Dispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   []Task
	threads int
	exit    bool
	workers sync.WaitGroup

	pendingMu   sync.Mutex
	pendingCond *sync.Cond
	pending     int

	closeOnce sync.Once
}

// DefaultThreads returns the hardware parallelism available to the process, at least 1.
func DefaultThreads() int {
	return max(runtime.NumCPU(), 1)
}

// NewDispatcher starts a dispatcher with the given number of workers.
// A non-positive count selects DefaultThreads.
func NewDispatcher(threads int) *Dispatcher {
	if threads <= 0 {
		threads = DefaultThreads()
	}

	d := &Dispatcher{threads: threads}
	d.cond = sync.NewCond(&d.mu)
	d.pendingCond = sync.NewCond(&d.pendingMu)

	d.workers.Add(threads)
	for i := 0; i < threads; i++ {
		go d.work()
	}
	return d
}

// Threads returns the fixed worker count.
func (d *Dispatcher) Threads() int {
	return d.threads
}

// Add enqueues a task and wakes one idle worker. It panics after Close.
func (d *Dispatcher) Add(task Task) {
	d.mu.Lock()
	if d.exit {
		d.mu.Unlock()
		panic("dispatcher: add after close")
	}
	d.pendingMu.Lock()
	d.pending++
	d.pendingMu.Unlock()
	d.tasks = append(d.tasks, task)
	d.mu.Unlock()
	d.cond.Signal()
}

// PendingTasks returns the number of tasks queued or executing.
func (d *Dispatcher) PendingTasks() int {
	d.pendingMu.Lock()
	defer d.pendingMu.Unlock()
	return d.pending
}

// Join blocks until every submitted task has finished. New tasks may be added afterwards.
func (d *Dispatcher) Join() {
	d.pendingMu.Lock()
	for d.pending > 0 {
		d.pendingCond.Wait()
	}
	d.pendingMu.Unlock()
}

// Close stops the workers and waits for them to exit.
//
// Tasks still queued are abandoned; a task already running finishes first. Call Join
// before Close when their side effects matter. Close is idempotent.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.exit = true
		d.mu.Unlock()
		d.cond.Broadcast()
		d.workers.Wait()
	})
}

func (d *Dispatcher) work() {
	defer d.workers.Done()

	for {
		d.mu.Lock()
		for !d.exit && len(d.tasks) == 0 {
			d.cond.Wait()
		}
		if d.exit {
			d.mu.Unlock()
			return
		}
		task := d.tasks[0]
		d.tasks[0] = nil
		d.tasks = d.tasks[1:]
		d.mu.Unlock()

		task()

		d.pendingMu.Lock()
		d.pending--
		if d.pending == 0 {
			d.pendingCond.Broadcast()
		}
		d.pendingMu.Unlock()
	}
}
