package coordinator

import (
	"github.com/agausmann/windowmaster/internal/bigraph"
	"github.com/agausmann/windowmaster/internal/menu"
	"github.com/agausmann/windowmaster/internal/wmid"
)

// graph is the coordinator's binding graph (spec §3 "Binding graph", §4.I):
// an undirected bipartite graph between channels and bindings, with at most
// one edge between any (channel, binding) pair.
type graph struct {
	g *bigraph.Graph[wmid.ChannelId, menu.Binding]
}

func newGraph() *graph {
	return &graph{g: bigraph.New[wmid.ChannelId, menu.Binding]()}
}

// bind adds the edge (ch, b), creating either endpoint if new.
func (gr *graph) bind(ch wmid.ChannelId, b menu.Binding) {
	gr.g.AddEdge(ch, b)
}

// clearBindings removes every edge incident to ch, leaving ch itself in the
// graph with zero degree (spec §4.J MenuSelect: "remove all existing edges
// from ChannelId").
func (gr *graph) clearBindings(ch wmid.ChannelId) {
	neighbors := gr.g.NeighborsOfLeft(ch)
	for _, b := range neighbors {
		gr.g.RemoveEdge(ch, b)
	}
	gr.g.AddLeft(ch)
}

// bindingsOf returns every binding currently bound to ch.
func (gr *graph) bindingsOf(ch wmid.ChannelId) []menu.Binding {
	return gr.g.NeighborsOfLeft(ch)
}

// channelsBoundTo returns every channel currently bound to b.
func (gr *graph) channelsBoundTo(b menu.Binding) []wmid.ChannelId {
	return gr.g.NeighborsOfRight(b)
}
