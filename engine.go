package streamable

import "github.com/rs/zerolog"

type stageState uint8

const (
	stageOpen stageState = iota
	// Stage rejected further input, Finish is due.
	stageStopped
	stageFinished
	// Stage sits upstream of a stop: its output can no longer be consumed,
	// so Finish is skipped.
	stageAbandoned
)

// frame is a sequence being drained into stages[stage].
type frame struct {
	next  func() (any, bool)
	stop  func()
	stage int
}

// run is one evaluation of a pipeline.
//
// Frames form a stack: the innermost live sequence is always on top, so
// a sequence produced by expansion is drained before the sequence that
// produced it resumes. Recursion only happens through chains of
// non-expanding stages and is bounded by the number of stages.
type run struct {
	stages []stage
	states []stageState
	sink   func(any) bool

	frames []frame
	// frames created by expansions during the current step
	pending []frame
	// stages below settled are finished or abandoned
	settled int

	sinkStopped bool
	released    bool
	closed      bool

	pulled int64
	log    zerolog.Logger
}

func newRun(p *pipeline, sink func(any) bool) *run {
	next, stop := p.src.open()

	r := &run{
		stages: p.stages,
		states: make([]stageState, len(p.stages)),
		sink:   sink,
		frames: []frame{{next: next, stop: stop}},
		log:    currentLogger().With().Int("stages", len(p.stages)).Logger(),
	}

	r.log.Debug().Msg("stream run started")

	for i, st := range r.stages {
		if st.stopped {
			r.stopAt(i)
		}
	}

	return r
}

// step pulls one element from the top frame and pushes it through the stages,
// then finishes every stage whose input is exhausted.
// It returns false when nothing is left to do.
func (r *run) step() bool {
	if len(r.frames) == 0 {
		r.settle()

		return len(r.frames) > 0
	}

	top := len(r.frames) - 1
	f := r.frames[top]

	v, ok := f.next()
	if !ok {
		f.stop()
		r.frames = r.frames[:top]
	} else {
		if f.stage == 0 {
			r.pulled++
		}

		r.apply(v, f.stage)
		r.flush()
	}

	r.settle()

	return true
}

// apply pushes v into stage i.
// It returns true if v or anything derived from it was rejected downstream.
func (r *run) apply(v any, i int) bool {
	if i == len(r.stages) {
		if r.sinkStopped {
			return true
		}

		if r.sink(v) {
			r.stopSink()

			return true
		}

		return false
	}

	if r.states[i] != stageOpen {
		return true
	}

	e := &emitter{run: r, from: i}
	stop := r.stages[i].apply(v, e.emit)

	if stop && r.states[i] == stageOpen {
		r.stopAt(i)
	}

	return stop || e.ignoreRest
}

func (r *run) accepts(i int) bool {
	if i == len(r.stages) {
		return !r.sinkStopped
	}

	return r.states[i] == stageOpen
}

// flush moves frames created during this step on top of the stack,
// the first created ending up on top.
func (r *run) flush() {
	for i := len(r.pending) - 1; i >= 0; i-- {
		r.frames = append(r.frames, r.pending[i])
	}

	clear(r.pending)
	r.pending = r.pending[:0]
}

// settle finishes stages in order once no frame is left.
// Frames still on the stack hold output produced before anything a Finish
// could emit, so finishing waits for them to drain.
func (r *run) settle() {
	for r.settled < len(r.stages) && len(r.frames) == 0 {
		i := r.settled
		r.settled++

		if r.states[i] == stageOpen || r.states[i] == stageStopped {
			r.finish(i)
		}

		r.flush()
	}
}

func (r *run) finish(i int) {
	r.states[i] = stageFinished

	e := &emitter{run: r, from: i}
	r.stages[i].finish(e.emit)
}

// stopAt handles stage i rejecting further input.
func (r *run) stopAt(i int) {
	r.states[i] = stageStopped

	for k := 0; k < i; k++ {
		if r.states[k] == stageOpen || r.states[k] == stageStopped {
			r.states[k] = stageAbandoned
		}
	}

	var dropped int
	r.frames, dropped = dropFrames(r.frames, i)
	r.pending, _ = dropFrames(r.pending, i)

	r.log.Debug().
		Int("stage", i).
		Str("gatherer", r.stages[i].name).
		Int("abandoned_frames", dropped).
		Msg("stage requested stop")
}

func (r *run) stopSink() {
	r.sinkStopped = true

	for k := range r.states {
		if r.states[k] == stageOpen || r.states[k] == stageStopped {
			r.states[k] = stageAbandoned
		}
	}

	var dropped int
	r.frames, dropped = dropFrames(r.frames, len(r.stages))
	r.pending, _ = dropFrames(r.pending, len(r.stages))

	r.log.Debug().Int("abandoned_frames", dropped).Msg("collector requested stop")
}

// dropFrames stops and removes frames draining into stage i or above it.
func dropFrames(frames []frame, i int) ([]frame, int) {
	kept := frames[:0]

	for _, f := range frames {
		if f.stage > i {
			kept = append(kept, f)
			continue
		}

		f.stop()
	}

	dropped := len(frames) - len(kept)
	clear(frames[len(kept):])

	return kept, dropped
}

// release stops every open sequence without closing stages.
// It is the only cleanup done when a user callback panics.
func (r *run) release() {
	if r.released {
		return
	}

	r.released = true

	for _, f := range r.frames {
		f.stop()
	}

	for _, f := range r.pending {
		f.stop()
	}

	r.frames, r.pending = nil, nil
}

// close releases the run and closes every stage exactly once.
func (r *run) close() {
	if r.closed {
		return
	}

	r.closed = true
	r.release()

	for _, st := range r.stages {
		st.close()
	}

	r.log.Debug().Int64("pulled", r.pulled).Msg("stream run closed")
}

// emitter forwards output of stage from to the next stage.
type emitter struct {
	run        *run
	from       int
	ignoreRest bool
}

func (e *emitter) emit(v any) {
	if e.ignoreRest {
		return
	}

	r, next := e.run, e.from+1
	if !r.accepts(next) {
		e.ignoreRest = true

		return
	}

	if !r.stages[e.from].expands {
		if r.apply(v, next) {
			e.ignoreRest = true
		}

		return
	}

	open, _ := v.(expansion)
	if open == nil {
		return
	}

	nextFn, stop := open()
	r.pending = append(r.pending, frame{next: nextFn, stop: stop, stage: next})
}
