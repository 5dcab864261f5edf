package disco

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sarchlab/discolight/hooking"
	"github.com/sarchlab/discolight/light"
)

// Script is the disco light loop.
type Script struct {
	*hooking.HookableBase

	name          string
	host          Host
	view          ImageView
	generator     *light.Generator
	threshold     float64
	maxIterations int
	now           func() time.Time

	seq int
}

// Name returns the name of the script.
func (s *Script) Name() string {
	return s.name
}

// Big returns the channel the next iteration forces to full intensity.
func (s *Script) Big() light.Channel {
	return s.generator.Big()
}

// Iterations returns the number of finished iterations.
func (s *Script) Iterations() int {
	return s.seq
}

// Run repeats Step until ctx is cancelled or, if a maximum number of
// iterations is configured, until that many iterations have finished.
func (s *Script) Run(ctx context.Context) error {
	for s.maxIterations == 0 || s.seq < s.maxIterations {
		if _, err := s.Step(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Step runs one iteration of the loop.
func (s *Script) Step(ctx context.Context) (Iteration, error) {
	instance, err := s.host.WaitForInstance(ctx)
	if err != nil {
		return Iteration{}, fmt.Errorf("waiting for instance: %w", err)
	}

	it := Iteration{
		Seq:      s.seq + 1,
		Instance: instance,
		Big:      s.generator.Big(),
		Start:    s.now(),
	}
	s.invoke(HookPosIterationStart, it)

	it.Color = s.generator.Pick()
	s.publishColor(it)
	s.view.SetNewColorSignal(it.Color.R, it.Color.G, it.Color.B)
	s.invoke(HookPosColorPicked, it)

	_, err = s.host.WaitForInstanceAtLeast(ctx, instance+1)
	if err != nil {
		return it, fmt.Errorf("waiting for instance %d: %w", instance+1, err)
	}

	it.Progress, err = s.host.WaitForPercentageDone(ctx, s.threshold)
	if err != nil {
		return it, fmt.Errorf("waiting for %.1f%% done: %w", s.threshold, err)
	}

	s.generator.Advance()

	it.Elapsed = s.now().Sub(it.Start)
	s.publishElapsed(it)

	s.seq = it.Seq
	s.invoke(HookPosIterationEnd, it)

	return it, nil
}

func (s *Script) publishColor(it Iteration) {
	s.host.SetStatusOverlay(OverlaySlotTitle, OverlayTitle)
	s.host.SetStatusOverlay(OverlaySlotRed, fmt.Sprintf("R: %.2f", it.Color.R))
	s.host.SetStatusOverlay(OverlaySlotGreen, fmt.Sprintf("G: %.2f", it.Color.G))
	s.host.SetStatusOverlay(OverlaySlotBlue, fmt.Sprintf("B: %.2f", it.Color.B))
}

func (s *Script) publishElapsed(it Iteration) {
	ms := strconv.FormatInt(it.ElapsedMilliseconds(), 10)

	s.host.Print("Elapsed milliseconds:", ms)
	s.host.SetStatusOverlay(OverlaySlotElapsed, "Elapsed milliseconds: "+ms)
}

func (s *Script) invoke(pos *hooking.HookPos, it Iteration) {
	if s.NumHooks() == 0 {
		return
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   it,
	})
}
