package notify_test

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/discolight/notify"
)

var _ = Describe("Value", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	})

	AfterEach(func() {
		cancel()
	})

	It("should return the current value", func() {
		v := notify.NewValue(3)
		Expect(v.Get()).To(Equal(3))

		v.Set(4)
		Expect(v.Get()).To(Equal(4))
	})

	It("should return immediately when the threshold is already met", func() {
		v := notify.NewValue(5)

		got, err := v.WaitAtLeast(ctx, 5)

		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(5))
	})

	It("should block until the threshold is reached", func() {
		v := notify.NewValue(0.0)
		done := make(chan float64)

		go func() {
			defer GinkgoRecover()
			got, err := v.WaitAtLeast(ctx, 2.0)
			Expect(err).NotTo(HaveOccurred())
			done <- got
		}()

		v.Set(1.0)
		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

		v.Set(2.5)
		Eventually(done).Should(Receive(Equal(2.5)))
	})

	It("should wait for a strictly greater value", func() {
		v := notify.NewValue(1)
		done := make(chan int)

		go func() {
			got, _ := v.WaitGreater(ctx, 1)
			done <- got
		}()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
		v.Set(2)
		Eventually(done).Should(Receive(Equal(2)))
	})

	It("should wait for a different value", func() {
		v := notify.NewValue("a")
		done := make(chan string)

		go func() {
			got, _ := v.WaitDifferent(ctx, "a")
			done <- got
		}()

		v.Set("a")
		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
		v.Set("b")
		Eventually(done).Should(Receive(Equal("b")))
	})

	It("should never treat NaN as reaching a threshold", func() {
		v := notify.NewValue(math.NaN())
		short, stop := context.WithTimeout(ctx, 20*time.Millisecond)
		defer stop()

		_, err := v.WaitAtLeast(short, 0)

		Expect(err).To(MatchError(context.DeadlineExceeded))
	})

	It("should stop waiting when the context is cancelled", func() {
		v := notify.NewValue(0)
		errs := make(chan error)

		go func() {
			_, err := v.WaitAtLeast(ctx, 10)
			errs <- err
		}()

		cancel()
		Eventually(errs).Should(Receive(MatchError(context.Canceled)))
	})

	It("should update atomically", func() {
		v := notify.NewValue(0)
		done := make(chan struct{})

		for i := 0; i < 10; i++ {
			go func() {
				v.Update(func(cur int) int { return cur + 1 })
				done <- struct{}{}
			}()
		}

		for i := 0; i < 10; i++ {
			Eventually(done).Should(Receive())
		}

		Expect(v.Get()).To(Equal(10))
	})
})
