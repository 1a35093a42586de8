package hidhost

import (
	"testing"
	"time"

	"github.com/agausmann/windowmaster/internal/wmid"
	"pgregory.net/rapid"
)

// TestLongPressNeverAlsoEmitsSelectProperty checks that for any sequence of
// press durations, a hold lasting at least LongPressDuration always
// produces an open/close-menu event and never also a select/toggle event
// on release: the two are mutually exclusive outcomes of one press.
func TestLongPressNeverAlsoEmitsSelectProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		holdMillis := rapid.IntRange(0, 1000).Draw(rt, "holdMillis")

		dev := &fakeDevice{}
		epoch := time.Unix(0, 0)
		clockTime := epoch
		w := NewWorker(&fakeSource{}, false, func() time.Time { return clockTime })

		src := w.source.(*fakeSource)
		src.handles = []DeviceHandle{rev1Handle(dev, "abc")}
		added := w.Tick()
		if len(added) != 1 {
			rt.Fatalf("expected one device-added event, got %d", len(added))
		}
		deviceId := added[0].Device
		channelId := wmid.ChannelId{Device: deviceId, Index: 0}

		dev.reports = [][]byte{inputReport([6]int8{}, 1)}
		w.Tick()

		clockTime = epoch.Add(time.Duration(holdMillis) * time.Millisecond)
		dev.reports = [][]byte{inputReport([6]int8{}, 1)}
		midEvents := w.Tick()

		dev.reports = [][]byte{inputReport([6]int8{}, 0)}
		releaseEvents := w.Tick()

		sawOpenOrClose := false
		for _, ev := range midEvents {
			if ev.Kind == EventChannelInput && ev.Input.Channel == channelId &&
				(ev.Input.Kind == ChannelInputOpenMenu || ev.Input.Kind == ChannelInputCloseMenu) {
				sawOpenOrClose = true
			}
		}
		sawSelectOrToggle := false
		for _, ev := range releaseEvents {
			if ev.Kind == EventChannelInput && ev.Input.Channel == channelId &&
				(ev.Input.Kind == ChannelInputMenuSelect || ev.Input.Kind == ChannelInputToggleMuted) {
				sawSelectOrToggle = true
			}
		}

		if holdMillis >= int(LongPressDuration/time.Millisecond) {
			if !sawOpenOrClose {
				rt.Fatalf("hold of %dms should have opened/closed the menu", holdMillis)
			}
			if sawSelectOrToggle {
				rt.Fatalf("hold of %dms triggered a long press and must not also emit select/toggle on release", holdMillis)
			}
		} else {
			if sawOpenOrClose {
				rt.Fatalf("hold of %dms is below the long-press threshold but opened/closed the menu", holdMillis)
			}
			if !sawSelectOrToggle {
				rt.Fatalf("short hold of %dms should emit select/toggle on release", holdMillis)
			}
		}
	})
}
