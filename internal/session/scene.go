// Package session holds the rules around a climb: the rising water, the
// finish line, and how a session ends and hands over to the next scene.
package session

import (
	"errors"
	"fmt"
	"sync"

	"ascent/internal/engine"
	"ascent/internal/platform/logger"
)

// Scene names known to the game.
const (
	ClimbScene = "ClimbScene"
	EndScene   = "EndScene"
)

var (
	ErrEmptySceneName = errors.New("session: empty scene name")
	ErrUnknownScene   = errors.New("session: unknown scene")
)

// SceneLoader switches the active scene by name.
type SceneLoader interface {
	LoadScene(name string) error
}

// RequestScene asks loader for the named scene. An empty name is logged and
// the request dropped.
func RequestScene(loader SceneLoader, name string, log *logger.Logger) error {
	if name == "" {
		log.Error("SceneLoader: target scene name is empty")
		return ErrEmptySceneName
	}
	if loader == nil {
		log.Warnf("SceneLoader: no loader for %q", name)
		return fmt.Errorf("request %q: no scene loader", name)
	}
	if err := loader.LoadScene(name); err != nil {
		log.Errorf("SceneLoader: %v", err)
		return err
	}
	log.Event("SCENE_REQUEST", name, "scene change requested")
	return nil
}

// Director is a SceneLoader over a fixed set of scenes. It only tracks which
// one is active; listeners do the actual switch.
type Director struct {
	mu      sync.Mutex
	scenes  map[string]bool
	current string

	// OnChange runs on the goroutine that requested the change.
	OnChange engine.EventWithArg[string]
}

func NewDirector(scenes ...string) *Director {
	d := &Director{scenes: make(map[string]bool, len(scenes))}
	for _, s := range scenes {
		d.scenes[s] = true
	}
	return d
}

func (d *Director) LoadScene(name string) error {
	d.mu.Lock()
	if !d.scenes[name] {
		d.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	d.current = name
	d.mu.Unlock()

	d.OnChange.Invoke(name)
	return nil
}

// Current returns the active scene, empty before the first load.
func (d *Director) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}
