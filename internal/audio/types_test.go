package audio_test

import (
	"testing"

	"github.com/agausmann/windowmaster/internal/audio"
	"github.com/agausmann/windowmaster/internal/wmid"
	"github.com/stretchr/testify/require"
)

func TestStepVolumeClampsToUnitRange(t *testing.T) {
	id := wmid.StreamId(1)
	state := wmid.StreamState{Volume: 0.99}

	next := audio.StepVolume(id, 5).Apply(state)
	require.Equal(t, 1.0, next.Volume)

	state = wmid.StreamState{Volume: 0.01}
	next = audio.StepVolume(id, -5).Apply(state)
	require.Equal(t, 0.0, next.Volume)
}

func TestStepVolumeUsesNamedStepSize(t *testing.T) {
	id := wmid.StreamId(1)
	state := wmid.StreamState{Volume: 0.5}
	next := audio.StepVolume(id, 1).Apply(state)
	require.InDelta(t, 0.5+audio.VolumeStepSize, next.Volume, 1e-9)
}

func TestToggleMutedFlipsState(t *testing.T) {
	id := wmid.StreamId(1)
	state := wmid.StreamState{Muted: false}
	next := audio.ToggleMuted(id).Apply(state)
	require.True(t, next.Muted)
	next = audio.ToggleMuted(id).Apply(next)
	require.False(t, next.Muted)
}

func TestSetVolumeOverridesCurrent(t *testing.T) {
	id := wmid.StreamId(1)
	state := wmid.StreamState{Volume: 0.2}
	next := audio.SetVolume(id, 0.8).Apply(state)
	require.Equal(t, 0.8, next.Volume)
}
