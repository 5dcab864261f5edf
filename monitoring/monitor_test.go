package monitoring_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/discolight/disco"
	"github.com/sarchlab/discolight/hooking"
	"github.com/sarchlab/discolight/monitoring"
	"github.com/sarchlab/discolight/renderview"
	"github.com/sarchlab/discolight/timing"
)

var _ = Describe("Monitor", func() {
	var (
		ctx     context.Context
		cancel  context.CancelFunc
		engine  *timing.SerialEngine
		view    *renderview.View
		monitor *monitoring.Monitor
		server  *httptest.Server
	)

	get := func(path string) (int, []byte) {
		rsp, err := http.Get(server.URL + path)
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).NotTo(HaveOccurred())

		return rsp.StatusCode, body
	}

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		engine = timing.NewSerialEngine()
		view = renderview.MakeBuilder().
			WithEngine(engine).
			WithProgressPerTick(25).
			WithLogger(log.New(GinkgoWriter, "", 0)).
			Build("View")

		monitor = monitoring.NewMonitor().WithLogger(log.New(GinkgoWriter, "", 0))
		monitor.RegisterEngine(engine)
		monitor.RegisterView(view)
		monitor.RegisterComponent(view.Renderer())

		server = httptest.NewServer(monitor.Handler())
	})

	AfterEach(func() {
		server.Close()
		cancel()
	})

	It("should serve the light colour", func() {
		go func() { _ = view.Run(ctx) }()
		view.SetNewColorSignal(1, 0, 0.5)
		_, err := view.WaitForPercentageDone(ctx, 100)
		Expect(err).NotTo(HaveOccurred())

		code, body := get("/api/light")

		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(
			`{"r": 1, "g": 0, "b": 0.5, "hex": "#ff0080"}`))
	})

	It("should serve the overlay", func() {
		view.SetStatusOverlay(disco.OverlaySlotTitle, disco.OverlayTitle)

		code, body := get("/api/overlay")

		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`["", "Light Color"]`))
	})

	It("should serve progress and progress bars", func() {
		bar := monitor.CreateProgressBar("Iterations", 3)
		tracker := monitoring.NewIterationTracker(bar)
		tracker.Func(hooking.HookCtx{Pos: disco.HookPosIterationStart})
		tracker.Func(hooking.HookCtx{Pos: disco.HookPosIterationEnd})

		code, body := get("/api/progress")

		Expect(code).To(Equal(http.StatusOK))

		var rsp struct {
			Instance int     `json:"instance"`
			Progress float64 `json:"progress"`
			Bars     []struct {
				Name     string `json:"name"`
				Total    uint64 `json:"total"`
				Finished uint64 `json:"finished"`
			} `json:"bars"`
		}
		Expect(json.Unmarshal(body, &rsp)).To(Succeed())
		Expect(rsp.Instance).To(Equal(0))
		Expect(rsp.Bars).To(HaveLen(1))
		Expect(rsp.Bars[0].Name).To(Equal("Iterations"))
		Expect(rsp.Bars[0].Finished).To(Equal(uint64(1)))

		monitor.CompleteProgressBar(bar)
		_, body = get("/api/progress")
		Expect(body).To(ContainSubstring(`"bars":[]`))
	})

	It("should pause and continue the engine", func() {
		code, _ := get("/api/pause")
		Expect(code).To(Equal(http.StatusOK))
		Expect(engine.IsPaused()).To(BeTrue())

		_, body := get("/api/now")
		Expect(body).To(MatchJSON(`{"now": 0, "cycle": 0, "paused": true}`))

		code, _ = get("/api/continue")
		Expect(code).To(Equal(http.StatusOK))
		Expect(engine.IsPaused()).To(BeFalse())
	})

	It("should report the render cycle", func() {
		go func() { _ = view.Run(ctx) }()
		view.SetNewColorSignal(0, 1, 0)
		_, err := view.WaitForPercentageDone(ctx, 100)
		Expect(err).NotTo(HaveOccurred())
		Eventually(engine.CurrentTime).Should(BeNumerically(">", 0.004))

		var rsp struct {
			Now   float64 `json:"now"`
			Cycle uint64  `json:"cycle"`
		}
		_, body := get("/api/now")
		Expect(json.Unmarshal(body, &rsp)).To(Succeed())

		Expect(rsp.Cycle).To(BeNumerically(">=", 4))
		Expect(rsp.Cycle).To(Equal(
			view.Renderer().Freq.Cycle(timing.VTimeInSec(rsp.Now))))
	})

	It("should serve a PNG snapshot", func() {
		code, body := get("/api/snapshot.png")

		Expect(code).To(Equal(http.StatusOK))
		img, err := png.Decode(bytes.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(320))
	})

	It("should list and describe components", func() {
		_, body := get("/api/list_components")
		Expect(body).To(MatchJSON(`["View", "View.Renderer"]`))

		code, _ := get("/api/component/View.Renderer")
		Expect(code).To(Equal(http.StatusOK))

		code, _ = get("/api/component/Nope")
		Expect(code).To(Equal(http.StatusNotFound))
	})

	It("should report resource usage", func() {
		code, body := get("/api/resource")

		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring("memory_size"))
	})

	It("should serve the page", func() {
		code, body := get("/")

		Expect(code).To(Equal(http.StatusOK))
		Expect(string(body)).To(HavePrefix("<!DOCTYPE html>"))
	})

	It("should reject a bad profile duration", func() {
		code, _ := get("/api/profile?seconds=abc")

		Expect(code).To(Equal(http.StatusBadRequest))
	})

	It("should start and stop a real server", func() {
		url, err := monitor.StartServer()
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(HavePrefix("http://localhost:"))

		Expect(monitor.Shutdown(context.Background())).To(Succeed())
	})
})
