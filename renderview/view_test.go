package renderview_test

import (
	"bytes"
	"context"
	"image/png"
	"log"
	"math"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/discolight/hooking"
	"github.com/sarchlab/discolight/renderview"
	"github.com/sarchlab/discolight/timing"
)

type hookRecorder struct {
	mu    sync.Mutex
	items []hooking.HookCtx
}

func (r *hookRecorder) Func(ctx hooking.HookCtx) {
	r.mu.Lock()
	r.items = append(r.items, ctx)
	r.mu.Unlock()
}

func (r *hookRecorder) at(pos *hooking.HookPos) []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []any
	for _, ctx := range r.items {
		if ctx.Pos == pos {
			items = append(items, ctx.Item)
		}
	}

	return items
}

var _ = Describe("View", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		logBuf *bytes.Buffer
		view   *renderview.View
	)

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		logBuf = new(bytes.Buffer)
		view = renderview.MakeBuilder().
			WithProgressPerTick(10).
			WithLogger(log.New(logBuf, "", 0)).
			Build("View")
	})

	AfterEach(func() {
		cancel()
	})

	startView := func() chan error {
		errs := make(chan error, 1)
		go func() {
			errs <- view.Run(ctx)
		}()
		return errs
	}

	Context("overlay", func() {
		It("should grow to fit the slot", func() {
			view.SetStatusOverlay(3, "three")

			Expect(view.StatusOverlay()).To(Equal([]string{"", "", "", "three"}))
		})

		It("should overwrite a slot", func() {
			view.SetStatusOverlay(1, "a")
			view.SetStatusOverlay(1, "b")

			Expect(view.StatusOverlay()).To(Equal([]string{"", "b"}))
		})

		It("should clear on a negative slot", func() {
			view.SetStatusOverlay(2, "x")
			view.ClearStatusOverlay()

			Expect(view.StatusOverlay()).To(BeEmpty())
		})

		It("should report overlay changes to hooks", func() {
			rec := &hookRecorder{}
			view.AcceptHook(rec)

			view.SetStatusOverlay(1, "Light Color")
			view.SetStatusOverlay(-1, "ignored")

			Expect(rec.at(renderview.HookPosOverlay)).To(Equal([]any{
				renderview.OverlayChange{Slot: 1, Text: "Light Color"},
				renderview.OverlayChange{Slot: -1, Text: ""},
			}))
		})

		It("should return a copy", func() {
			view.SetStatusOverlay(0, "mine")
			lines := view.StatusOverlay()
			lines[0] = "changed"

			Expect(view.StatusOverlay()[0]).To(Equal("mine"))
		})
	})

	Context("host primitives", func() {
		It("should start at instance 0 with no progress", func() {
			instance, err := view.WaitForInstance(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(instance).To(Equal(0))
			Expect(view.Progress()).To(Equal(0.0))
		})

		It("should fail WaitForInstance on a cancelled context", func() {
			cancel()

			_, err := view.WaitForInstance(ctx)

			Expect(err).To(MatchError(context.Canceled))
		})

		It("should print into the log", func() {
			view.Print("Elapsed milliseconds:", "12")

			Expect(logBuf.String()).To(Equal("Elapsed milliseconds: 12\n"))
		})

		It("should sleep until the context is done", func() {
			cancel()

			Expect(view.Sleep(ctx, time.Hour)).To(MatchError(context.Canceled))
			Expect(view.Sleep(context.Background(), time.Millisecond)).To(Succeed())
		})
	})

	Context("rendering", func() {
		It("should apply a colour and render it to completion", func() {
			errs := startView()

			view.SetNewColorSignal(1, 0.25, 0.5)

			instance, err := view.WaitForInstanceAtLeast(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(instance).To(Equal(1))

			pct, err := view.WaitForPercentageDone(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(pct).To(Equal(100.0))

			Expect(view.Light()).To(Equal(colorful.Color{R: 1, G: 0.25, B: 0.5}))
			Expect(view.Renderer().Done()).To(BeTrue())
			Expect(logBuf.String()).To(ContainSubstring(
				"New color (1.0000, 0.2500, 0.5000)"))

			cancel()
			Eventually(errs).Should(Receive(MatchError(context.Canceled)))
		})

		It("should reset progress before bumping the instance", func() {
			rec := &hookRecorder{}
			view.AcceptHook(rec)
			startView()

			view.SetNewColorSignal(1, 0, 0)
			_, err := view.WaitForPercentageDone(ctx, 100)
			Expect(err).NotTo(HaveOccurred())

			var progressAtUpdate []float64
			view.AcceptHook(hooking.HookFunc(func(hc hooking.HookCtx) {
				if hc.Pos == renderview.HookPosSceneUpdate {
					progressAtUpdate = append(progressAtUpdate, view.Progress())
				}
			}))

			view.SetNewColorSignal(0, 1, 0)
			_, err = view.WaitForInstanceAtLeast(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			_, err = view.WaitForPercentageDone(ctx, 100)
			Expect(err).NotTo(HaveOccurred())

			Expect(progressAtUpdate).To(Equal([]float64{0}))

			updates := rec.at(renderview.HookPosSceneUpdate)
			Expect(updates).To(HaveLen(2))
			Expect(updates[1].(renderview.SceneUpdate).Instance).To(Equal(2))

			progress := rec.at(renderview.HookPosProgress)
			Expect(progress).To(ContainElement(0.0))
			Expect(progress[len(progress)-1]).To(Equal(100.0))
		})

		It("should let a new colour preempt a running render", func() {
			view = renderview.MakeBuilder().
				WithProgressPerTick(1).
				WithRealTimePerTick(time.Millisecond).
				WithLogger(log.New(GinkgoWriter, "", 0)).
				Build("SlowView")
			startView()

			view.SetNewColorSignal(1, 0, 0)
			_, err := view.WaitForPercentageDone(ctx, 5)
			Expect(err).NotTo(HaveOccurred())

			view.SetNewColorSignal(0, 0, 1)
			instance, err := view.WaitForInstanceAtLeast(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(instance).To(Equal(2))
			Expect(view.Progress()).To(BeNumerically("<", 100))

			_, err = view.WaitForPercentageDone(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Light()).To(Equal(colorful.Color{B: 1}))
		})
	})

	Context("stopping", func() {
		It("should return when the context ends while the engine is paused", func() {
			view.Engine().Pause()
			errs := startView()

			view.SetNewColorSignal(1, 0, 0)
			_, err := view.WaitForInstanceAtLeast(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Consistently(view.Progress, 20*time.Millisecond).Should(BeZero())

			cancel()
			Eventually(errs).Should(Receive(MatchError(context.Canceled)))
			Expect(view.Progress()).To(BeZero())
		})

		It("should render again in a later Run", func() {
			first, stopFirst := context.WithCancel(ctx)
			errs := make(chan error, 1)
			go func() { errs <- view.Run(first) }()

			view.SetNewColorSignal(1, 0, 0)
			_, err := view.WaitForPercentageDone(ctx, 100)
			Expect(err).NotTo(HaveOccurred())

			stopFirst()
			Eventually(errs).Should(Receive(MatchError(context.Canceled)))

			startView()
			view.SetNewColorSignal(0, 1, 0)
			instance, err := view.WaitForInstanceAtLeast(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(instance).To(Equal(2))

			pct, err := view.WaitForPercentageDone(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(pct).To(Equal(100.0))
		})
	})

	Context("snapshot", func() {
		It("should fill the image with the light colour", func() {
			view = renderview.MakeBuilder().
				WithSnapshotSize(200, 100).
				WithLogger(log.New(GinkgoWriter, "", 0)).
				Build("View")
			startView()
			view.SetNewColorSignal(1, 0, 0)
			_, err := view.WaitForPercentageDone(ctx, 100)
			Expect(err).NotTo(HaveOccurred())

			img := view.Snapshot()

			Expect(img.Bounds().Dx()).To(Equal(200))
			Expect(img.Bounds().Dy()).To(Equal(100))
			r, g, b, _ := img.At(199, 0).RGBA()
			Expect([]uint32{r >> 8, g >> 8, b >> 8}).To(Equal([]uint32{255, 0, 0}))
		})

		It("should draw the overlay text", func() {
			view.SetStatusOverlay(0, "Light Color")
			img := view.Snapshot()

			bg := img.At(319, 0)
			differs := false
			for x := 8; x < 90 && !differs; x++ {
				for y := 2; y < 16; y++ {
					if img.At(x, y) != bg {
						differs = true
						break
					}
				}
			}

			Expect(differs).To(BeTrue())
		})

		It("should encode as PNG", func() {
			buf := new(bytes.Buffer)

			Expect(view.WritePNG(buf)).To(Succeed())

			img, err := png.Decode(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(Equal(320))
		})
	})

	Context("builder", func() {
		It("should reject invalid parameters", func() {
			Expect(func() {
				renderview.MakeBuilder().WithFreq(0).Build("V")
			}).To(Panic())
			Expect(func() {
				renderview.MakeBuilder().WithProgressPerTick(0).Build("V")
			}).To(Panic())
			Expect(func() {
				renderview.MakeBuilder().WithProgressPerTick(math.NaN()).Build("V")
			}).To(Panic())
			Expect(func() {
				renderview.MakeBuilder().WithFreq(timing.Freq(math.NaN())).Build("V")
			}).To(Panic())
			Expect(func() {
				renderview.MakeBuilder().WithQueueSize(0).Build("V")
			}).To(Panic())
			Expect(func() {
				renderview.MakeBuilder().WithSnapshotSize(0, 10).Build("V")
			}).To(Panic())
		})

		It("should put the renderer on the given engine", func() {
			engine := timing.NewSerialEngine()
			v := renderview.MakeBuilder().WithEngine(engine).Build("V")

			Expect(v.Engine()).To(BeIdenticalTo(engine))
			Expect(v.Renderer().Name()).To(Equal("V.Renderer"))
			Expect(engine.NumHooks()).To(Equal(1))
		})
	})
})
