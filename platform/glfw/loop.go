//go:build glfw

package glfw

import (
	"runtime"
	"sync"
	"time"

	glfw3 "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/wippyai/native-adapter/errors"
)

// pollInterval is how often the loop pumps GLFW events while idle.
const pollInterval = 10 * time.Millisecond

type result struct {
	err      error
	panicked bool
	payload  any
}

// loop owns the GLFW thread.
type loop struct {
	calls    chan func()
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func startLoop() (*loop, error) {
	l := &loop{
		calls: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	ready := make(chan error, 1)
	go l.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return l, nil
}

func (l *loop) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.done)

	if err := glfw3.Init(); err != nil {
		ready <- errors.Wrap(errors.PhaseLoad, errors.KindPlatform, err, "initialize glfw")
		return
	}
	defer glfw3.Terminate()
	ready <- nil

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case fn := <-l.calls:
			fn()
		case <-ticker.C:
			l.poll()
		case <-l.quit:
			return
		}
	}
}

func (l *loop) poll() {
	// A failing poll must not kill the GLFW thread.
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("glfw event poll panicked")
		}
	}()
	glfw3.PollEvents()
}

// call runs fn on the GLFW thread and waits for it. A panic in fn is
// re-raised on the calling goroutine.
func (l *loop) call(fn func() error) error {
	ch := make(chan result, 1)
	req := func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{panicked: true, payload: r}
			}
		}()
		ch <- result{err: fn()}
	}

	select {
	case l.calls <- req:
	case <-l.done:
		return errors.NotInitialized(errors.PhasePlatform, "glfw backend")
	}

	res := <-ch
	if res.panicked {
		panic(res.payload)
	}
	return res.err
}

// stop ends the loop after the current call and waits for GLFW to terminate.
func (l *loop) stop() {
	l.stopOnce.Do(func() { close(l.quit) })
	<-l.done
}
