// Package profiler records nested timing scopes into a ring buffer and
// exports them in the speedscope evented format. It is off until Init.
package profiler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Init enables recording with room for capacity open/close events. A
// non-positive capacity disables it again.
func Init(capacity int) {
	if capacity <= 0 {
		rec.ready.Store(false)
		return
	}
	rec.init(capacity)
}

func Enabled() bool { return rec.ready.Load() }

// Start begins a scope and returns the func that ends it.
func Start(name string) func() {
	if !rec.ready.Load() {
		return func() {}
	}
	id := intern(name)
	begin := time.Now().UnixNano()
	rec.push(event{at: begin, frame: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < begin {
			end = begin
		}
		rec.push(event{at: end, frame: id})
	}
}

// DumpFile writes the recorded scopes to a speedscope file in the temp dir
// and returns its path.
func DumpFile() (string, error) {
	path := filepath.Join(os.TempDir(), "cratepush.speedscope.json")
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	if err := WriteSpeedscope(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	return path, nil
}

// Runtime is a snapshot of Go runtime counters for the debug overlay.
type Runtime struct {
	HeapAlloc  uint64
	Mallocs    uint64
	NumGC      uint32
	Goroutines int
	CPUs       int
}

func ReadRuntime() Runtime {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Runtime{
		HeapAlloc:  m.HeapAlloc,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}

// ---------- event ring ----------

type event struct {
	at    int64 // unix nanoseconds
	frame int
	open  bool
}

type ring struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []event
}

func (r *ring) init(capacity int) {
	r.ready.Store(false)
	r.cap = uint64(capacity)
	r.evs = make([]event, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *ring) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot returns the retained events in write order.
func (r *ring) snapshot() []event {
	if !r.ready.Load() {
		return nil
	}
	n := r.write.Load()
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var rec ring

// ---------- scope names ----------

var (
	muFrames sync.Mutex
	frames   []string
	index    = map[string]int{}
)

func intern(name string) int {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}

// ---------- speedscope ----------

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"` // "evented"
	Name       string    `json:"name"`
	Unit       string    `json:"unit"` // "microseconds"
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// WriteSpeedscope encodes the retained scopes. Closes without a matching
// open (cut off by the ring) are skipped and scopes still open at the end
// are closed at the last timestamp.
func WriteSpeedscope(w io.Writer) error {
	evs := rec.snapshot()
	if len(evs) == 0 {
		return fmt.Errorf("profiler: no events recorded")
	}

	muFrames.Lock()
	fs := make([]ssFrame, len(frames))
	for i, name := range frames {
		fs[i] = ssFrame{Name: name}
	}
	muFrames.Unlock()

	base := evs[0].at
	out := make([]ssEvent, 0, len(evs))
	stack := make([]int, 0, 64)
	last := int64(0)

	for _, e := range evs {
		at := (e.at - base) / 1000
		if at < last {
			at = last
		}
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "cratepush",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "cratepush-profiler",
		Name:     "cratepush capture",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return nil
}
