// Package simulation wires a disco loop to a simulated render view and the
// services around it: recording, monitoring and logging.
package simulation

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/sarchlab/discolight/datarecording"
	"github.com/sarchlab/discolight/disco"
	"github.com/sarchlab/discolight/monitoring"
	"github.com/sarchlab/discolight/renderview"
	"github.com/sarchlab/discolight/timing"
)

// Component is anything registered with the simulation by name.
type Component interface {
	Name() string
}

// A Simulation runs a disco loop against a simulated render view.
type Simulation struct {
	id     string
	seed   int64
	logger *log.Logger

	engine timing.Engine
	view   *renderview.View
	script *disco.Script

	dataRecorder datarecording.Recorder
	execRecorder *datarecording.ExecRecorder
	monitor      *monitoring.Monitor
	monitorURL   string

	components    []Component
	compNameIndex map[string]int

	terminateOnce sync.Once
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Seed returns the seed of the colour generator.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// GetEngine returns the engine the renderer runs on.
func (s *Simulation) GetEngine() timing.Engine {
	return s.engine
}

// GetView returns the simulated render view.
func (s *Simulation) GetView() *renderview.View {
	return s.view
}

// GetScript returns the disco loop.
func (s *Simulation) GetScript() *disco.Script {
	return s.script
}

// GetDataRecorder returns the data recorder, or nil if recording is off.
func (s *Simulation) GetDataRecorder() datarecording.Recorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor, or nil if monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring page, or an empty string
// if monitoring is off.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// RegisterComponent registers a component with the simulation. Names must
// be unique.
func (s *Simulation) RegisterComponent(c Component) {
	name := c.Name()
	if _, exists := s.compNameIndex[name]; exists {
		panic("component " + name + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[name] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// GetComponentByName returns the component with the given name, or nil.
func (s *Simulation) GetComponentByName(name string) Component {
	i, ok := s.compNameIndex[name]
	if !ok {
		return nil
	}

	return s.components[i]
}

// Components returns all the registered components.
func (s *Simulation) Components() []Component {
	return s.components
}

// Run runs the view and the loop until the loop finishes, ctx is done or
// rendering fails. A loop that ran its iterations returns nil.
func (s *Simulation) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var viewErr error

	viewDone := make(chan struct{})

	go func() {
		defer close(viewDone)

		err := s.view.Run(ctx)
		if !errors.Is(err, context.Canceled) {
			viewErr = err
			cancel()
		}
	}()

	scriptErr := s.script.Run(ctx)

	cancel()
	<-viewDone

	if viewErr != nil && !errors.Is(viewErr, ctx.Err()) {
		return viewErr
	}

	return scriptErr
}

// Terminate writes the end of the run into the recording, closes it and
// stops the monitoring server. Calling it more than once has no effect.
func (s *Simulation) Terminate() {
	s.terminateOnce.Do(func() {
		if s.dataRecorder != nil {
			s.execRecorder.End()

			if err := s.dataRecorder.Close(); err != nil {
				s.logger.Printf("closing recording: %v", err)
			}
		}

		if s.monitor != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := s.monitor.Shutdown(ctx); err != nil {
				s.logger.Printf("stopping monitor: %v", err)
			}
		}
	})
}
