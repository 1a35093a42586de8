package coordinator

import "github.com/agausmann/windowmaster/internal/wmid"

// streamEntry is the coordinator's local copy of one open audio stream
// (spec §3 "Stream registry").
type streamEntry struct {
	info  wmid.StreamInfo
	state wmid.StreamState
}

// streamRegistry mirrors every currently-open audio stream, keyed by
// StreamId. Entries are created on StreamOpened, updated on StateChanged,
// and removed on StreamClosed; a Direct binding referring to a removed
// stream is "dangling" and evaluates to wmid.DefaultStreamState (spec §3).
type streamRegistry struct {
	streams map[wmid.StreamId]streamEntry
}

func newStreamRegistry() *streamRegistry {
	return &streamRegistry{streams: make(map[wmid.StreamId]streamEntry)}
}

func (r *streamRegistry) open(id wmid.StreamId, info wmid.StreamInfo) {
	r.streams[id] = streamEntry{info: info, state: info.InitialState}
}

func (r *streamRegistry) close(id wmid.StreamId) {
	delete(r.streams, id)
}

func (r *streamRegistry) setState(id wmid.StreamId, state wmid.StreamState) {
	entry, ok := r.streams[id]
	if !ok {
		return
	}
	entry.state = state
	r.streams[id] = entry
}

func (r *streamRegistry) state(id wmid.StreamId) (wmid.StreamState, bool) {
	entry, ok := r.streams[id]
	if !ok {
		return wmid.StreamState{}, false
	}
	return entry.state, true
}

// names returns every currently-open stream's id and display name, used to
// build the Direct-binding tail of a newly opened menu (spec §4.J
// OpenMenu).
func (r *streamRegistry) names() []streamName {
	out := make([]streamName, 0, len(r.streams))
	for id, entry := range r.streams {
		out = append(out, streamName{id: id, name: entry.info.Name})
	}
	return out
}

type streamName struct {
	id   wmid.StreamId
	name string
}
