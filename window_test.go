package winchan

import "testing"

func TestWindowInitialPendingSurfacesOnce(t *testing.T) {
	w := newWindow(10)

	incr, ready := w.PollIncrement(NopWaker)
	if !ready || incr != 10 {
		t.Fatalf("expected initial increment of 10, got (%d, %v)", incr, ready)
	}
	if got := w.Advertised(); got != 10 {
		t.Fatalf("expected advertised 10, got %d", got)
	}

	incr, ready = w.PollIncrement(NopWaker)
	if ready {
		t.Fatalf("expected not ready on second poll, got incr=%d", incr)
	}
}

func TestWindowClaimAdvertised(t *testing.T) {
	w := newWindow(10)
	w.PollIncrement(NopWaker)

	w.ClaimAdvertised(4)
	if got := w.Advertised(); got != 6 {
		t.Fatalf("expected advertised 6 after claiming 4, got %d", got)
	}
}

func TestWindowClaimAdvertisedOverflowPanics(t *testing.T) {
	w := newWindow(10)
	w.PollIncrement(NopWaker)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when claiming more than advertised")
		}
	}()
	w.ClaimAdvertised(11)
}

func TestWindowAdvertiseIncrementWakesParkedPoll(t *testing.T) {
	w := newWindow(0)
	w.PollIncrement(NopWaker) // drains the zero initial pending, parks nothing useful

	woke := false
	waker := WakerFunc(func() { woke = true })

	incr, ready := w.PollIncrement(waker)
	if ready {
		t.Fatalf("expected not ready with zero pending, got incr=%d", incr)
	}

	w.AdvertiseIncrement(5)
	if !woke {
		t.Fatalf("expected AdvertiseIncrement to wake the parked waker")
	}

	incr, ready = w.PollIncrement(NopWaker)
	if !ready || incr != 5 {
		t.Fatalf("expected increment of 5 after wake, got (%d, %v)", incr, ready)
	}
}

func TestWindowShrinkConsumesFutureIncrementsAsUnderflow(t *testing.T) {
	w := newWindow(10)
	w.PollIncrement(NopWaker) // advertised=10, pending=0

	w.Shrink(7)
	w.AdvertiseIncrement(3)

	incr, ready := w.PollIncrement(NopWaker)
	if ready {
		t.Fatalf("expected no increment: 3 consumed entirely by 7 units of underflow, got incr=%d", incr)
	}

	w.AdvertiseIncrement(10)
	incr, ready = w.PollIncrement(NopWaker)
	if !ready || incr != 6 {
		t.Fatalf("expected remaining underflow of 4 to consume 4 of the next 10, leaving 6, got (%d, %v)", incr, ready)
	}
}

func TestWindowShrinkHonorsAlreadyAdvertisedCredit(t *testing.T) {
	w := newWindow(10)
	w.PollIncrement(NopWaker)

	w.Shrink(10)

	if got := w.Advertised(); got != 10 {
		t.Fatalf("Shrink must not rescind already-advertised credit, got %d", got)
	}
	w.ClaimAdvertised(10)
}

func TestWindowOrphanedRequiresAllPartiesGone(t *testing.T) {
	w := newWindow(0)
	if w.orphaned() {
		t.Fatalf("fresh window must not be orphaned")
	}

	w.markSenderGone()
	if w.orphaned() {
		t.Fatalf("window with a live receiver must not be orphaned")
	}

	w.chunkCreated()
	w.markReceiverGone()
	if w.orphaned() {
		t.Fatalf("window with an outstanding chunk must not be orphaned")
	}

	w.chunkReleased(0)
	if !w.orphaned() {
		t.Fatalf("window with no sender, receiver, or chunks must be orphaned")
	}
}
