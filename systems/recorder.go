package systems

import "github.com/pthm-cable/ecosystem/telemetry"

// Recorder receives events emitted by systems.
type Recorder interface {
	Record(ev telemetry.Event)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ev telemetry.Event)

func (f RecorderFunc) Record(ev telemetry.Event) { f(ev) }

type nopRecorder struct{}

func (nopRecorder) Record(telemetry.Event) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
