package multitouch

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned when a test script has no steps.
var ErrEmptyScript = errors.New("no steps")

// testStep represents a single action in a gesture script.
type testStep struct {
	Action string  `json:"action" yaml:"action"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	X2     float64 `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty" yaml:"y2,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	From   float64 `json:"from,omitempty" yaml:"from,omitempty"`
	To     float64 `json:"to,omitempty" yaml:"to,omitempty"`
	Index  int     `json:"index,omitempty" yaml:"index,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	Ms     int     `json:"ms,omitempty" yaml:"ms,omitempty"`
}

// testScript is the top-level structure for a gesture script.
type testScript struct {
	Steps []testStep `json:"steps" yaml:"steps"`
}

// TestRunner replays a gesture script through an Injector, one event per
// Step call.
type TestRunner struct {
	steps  []testStep
	cursor int
	in     *Injector
	done   bool
}

// LoadTestScript parses a JSON gesture script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	return newTestRunner(script)
}

// LoadTestScriptYAML parses a YAML gesture script.
func LoadTestScriptYAML(yamlData []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(yamlData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	return newTestRunner(script)
}

func newTestRunner(script testScript) (*TestRunner, error) {
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		if !knownStep(st.Action) {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, in: NewInjector()}, nil
}

func knownStep(action string) bool {
	switch action {
	case "press", "move", "move2", "lift", "release", "cancel", "drag", "pinch", "wait":
		return true
	}
	return false
}

// Injector returns the injector the runner queues events on.
func (r *TestRunner) Injector() *Injector {
	return r.in
}

// Done reports whether every step has run and every event was delivered.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step delivers one event to handle, expanding the next script step when the
// queue is empty. It returns false once the script is exhausted.
func (r *TestRunner) Step(handle func(*RawEvent) bool) bool {
	for r.in.Pending() == 0 {
		if r.cursor >= len(r.steps) {
			r.done = true
			return false
		}
		r.expand(r.steps[r.cursor])
		r.cursor++
	}
	ev, _ := r.in.Next()
	handle(&ev)
	if r.cursor >= len(r.steps) && r.in.Pending() == 0 {
		r.done = true
	}
	return true
}

// Run delivers the whole script and returns the number of events sent.
func (r *TestRunner) Run(handle func(*RawEvent) bool) int {
	n := 0
	for r.Step(handle) {
		n++
	}
	return n
}

// expand queues the events for one step.
func (r *TestRunner) expand(st testStep) {
	in := r.in
	switch st.Action {
	case "press":
		in.Press(st.X, st.Y)
	case "move":
		in.Move(st.X, st.Y)
	case "move2":
		in.MoveTwo(st.X, st.Y, st.X2, st.Y2)
	case "lift":
		in.Lift(st.Index)
	case "release":
		in.Release()
	case "cancel":
		in.Cancel()
	case "drag":
		in.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		in.Pinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "wait":
		in.Wait(time.Duration(st.Ms) * time.Millisecond)
	}
}
