package coordinator

import (
	"testing"

	"github.com/agausmann/windowmaster/internal/hidhost"
	"github.com/agausmann/windowmaster/internal/menu"
	"github.com/agausmann/windowmaster/internal/wmid"
	"github.com/stretchr/testify/require"
)

// TestReopeningMenuReplacesPreviousAtomically exercises scenario "At-most-once
// menu": a channel never holds two menus, and reopening discards any
// in-progress rotation on the old one.
func TestReopeningMenuReplacesPreviousAtomically(t *testing.T) {
	r, _, _, _, hidOut := newTestRuntime()
	stream := wmid.NextStreamId()
	r.streams.open(stream, wmid.StreamInfo{Name: "only"})
	ch := wmid.ChannelId{Device: wmid.NextDeviceId(), Index: 0}

	r.openMenu(ch)
	<-hidOut
	r.menus[ch].Move(3)
	require.NotEqual(t, 0, r.menus[ch].CurrentIndex)

	r.openMenu(ch)
	<-hidOut

	require.Len(t, r.menus, 1, "a channel must never accumulate more than one open menu")
	require.Equal(t, 0, r.menus[ch].CurrentIndex, "reopening must start the replacement menu fresh")
}

// TestScenarioERotateAndSelect follows spec scenario E literally: a 4-option
// menu rotated by +2 lands on index 2, and selecting it binds the channel to
// that option and reports its resolved state.
func TestScenarioERotateAndSelect(t *testing.T) {
	r, _, _, _, hidOut := newTestRuntime()
	ch := wmid.ChannelId{Device: wmid.NextDeviceId(), Index: 0}
	bound := wmid.NextStreamId()
	r.streams.open(bound, wmid.StreamInfo{Name: "target", InitialState: wmid.StreamState{Volume: 0.42}})

	b := menu.DirectBinding(bound)
	r.menus[ch] = menu.New([]menu.Option{
		{Name: "None", Binding: nil},
		{Name: "Default Device", Binding: func() *menu.Binding { x := menu.DefaultDeviceBinding(); return &x }()},
		{Name: "Active Window", Binding: func() *menu.Binding { x := menu.ActiveWindowBinding(); return &x }()},
		{Name: "target", Binding: &b},
	})

	r.handleChannelInput(hidhost.ChannelInput{Channel: ch, Kind: hidhost.ChannelInputMenuNext, Steps: 2})
	require.Equal(t, 2, r.menus[ch].CurrentIndex)

	r.handleChannelInput(hidhost.ChannelInput{Channel: ch, Kind: hidhost.ChannelInputMenuSelect})

	require.Len(t, hidOut, 2)
	<-hidOut // MenuClosed
	changed := <-hidOut
	require.Equal(t, hidhost.ChannelOutputStateChanged, changed.Kind)
	require.Equal(t, wmid.DefaultStreamState, changed.State, "index 2 is Active Window, unresolved: no window focus assigned")

	require.True(t, r.graph.g.ContainsEdge(ch, menu.ActiveWindowBinding()))
}
