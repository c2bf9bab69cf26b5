package capability

import (
	"fmt"
	"io"
	"sync"

	logging "github.com/ipfs/go-log/v2"
)

// Emitter receives one human-readable line for every hook and base action
// that runs. The wording of lines is informational; their order is not.
type Emitter interface {
	Emit(line string)
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(line string)

// Emit calls f(line).
func (f EmitterFunc) Emit(line string) {
	f(line)
}

// Discard is an Emitter that drops every line.
var Discard Emitter = EmitterFunc(func(string) {})

func orDiscard(e Emitter) Emitter {
	if e == nil {
		return Discard
	}
	return e
}

// WriterEmitter writes every line, newline terminated, to an io.Writer.
type WriterEmitter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterEmitter returns an Emitter writing to w. A nil w discards.
func NewWriterEmitter(w io.Writer) *WriterEmitter {
	if w == nil {
		w = io.Discard
	}
	return &WriterEmitter{w: w}
}

// Emit implements Emitter. Write errors are dropped: a trace line that
// cannot be written is not a failure of the capability that produced it.
func (e *WriterEmitter) Emit(line string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, _ = fmt.Fprintln(e.w, line)
}

// Recorder keeps every emitted line in memory.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit implements Emitter.
func (r *Recorder) Emit(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

// Lines returns a copy of the lines recorded so far.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset drops all recorded lines.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()
}

// LogEmitter forwards lines to a go-log logger at info level.
type LogEmitter struct {
	log *logging.ZapEventLogger
}

// NewLogEmitter returns an Emitter logging under the given subsystem name.
func NewLogEmitter(system string) *LogEmitter {
	return &LogEmitter{log: logging.Logger(system)}
}

// Emit implements Emitter.
func (e *LogEmitter) Emit(line string) {
	e.log.Info(line)
}
