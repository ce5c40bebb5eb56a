package session

import (
	"fmt"

	"ascent/internal/engine"
	"ascent/internal/platform/logger"
)

// Recorder keeps the best height reached across sessions.
type Recorder interface {
	RecordHighestClimb(height float32) (bool, error)
}

// Outcome tracks the best height of the running session and ends it once.
type Outcome struct {
	Scenes   SceneLoader
	Records  Recorder
	EndScene string

	// OnEnd receives the reason the session ended.
	OnEnd engine.EventWithArg[string]

	log     *logger.Logger
	highest float32
	ended   bool
	reason  string
}

func NewOutcome(scenes SceneLoader, records Recorder, log *logger.Logger) *Outcome {
	if log == nil {
		log = logger.Discard()
	}
	return &Outcome{
		Scenes:   scenes,
		Records:  records,
		EndScene: EndScene,
		log:      log,
	}
}

// Observe feeds the current climbed height.
func (o *Outcome) Observe(height float32) {
	if height > o.highest {
		o.highest = height
	}
}

// Highest returns the best height seen this session.
func (o *Outcome) Highest() float32 { return o.highest }

func (o *Outcome) Ended() bool { return o.ended }

func (o *Outcome) Reason() string { return o.reason }

// End records the best height and requests the end scene. Only the first
// call has any effect; a failed record does not stop the scene request.
func (o *Outcome) End(reason string) error {
	if o.ended {
		return nil
	}
	o.ended = true
	o.reason = reason

	if o.Records != nil {
		improved, err := o.Records.RecordHighestClimb(o.highest)
		if err != nil {
			o.log.Errorf("Outcome: saving highest climb: %v", err)
		} else if improved {
			o.log.Infof("Outcome: new highest climb %.1f m", o.highest)
		}
	}
	o.log.Event("SESSION_END", reason, fmt.Sprintf("highest %.1f m", o.highest))
	o.OnEnd.Invoke(reason)
	return RequestScene(o.Scenes, o.EndScene, o.log)
}
