package worldmap

import "container/heap"

// LocalNodeKind classifies a node in a settlement's intra-site graph.
type LocalNodeKind uint8

const (
	NodeHouse LocalNodeKind = iota
	NodeMarket
	NodeShrine
	NodeGuardhouse
	NodeStorage
	NodeWell
	NodeGate
	NodeFields
	NodeDocks
	NodeClinic
	NodeLibrary
	NodeTavern
	NodeStreets
)

// LocalPos is a 2-D position within a settlement's local coordinate space.
type LocalPos struct {
	X, Y float64
}

// LocalNode is one place within a settlement's local graph.
type LocalNode struct {
	ID   string
	Kind LocalNodeKind
	Name string
	Pos  LocalPos
	Meta map[string]string
}

// LocalEdge connects two local nodes with a walking distance in meters.
type LocalEdge struct {
	From, To string
	Meters   float64
}

// LocalGraph is the small walkable graph inside one settlement.
type LocalGraph struct {
	Nodes []LocalNode
	Edges []LocalEdge

	adjacency map[string][]LocalEdge
}

// Build indexes Edges into an adjacency list. Call once after populating
// Nodes/Edges (e.g. at world-seed time); the graph is read-only afterward.
func (g *LocalGraph) Build() {
	g.adjacency = make(map[string][]LocalEdge, len(g.Nodes))
	for _, e := range g.Edges {
		g.adjacency[e.From] = append(g.adjacency[e.From], e)
		g.adjacency[e.To] = append(g.adjacency[e.To], LocalEdge{From: e.To, To: e.From, Meters: e.Meters})
	}
}

type pqItem struct {
	node string
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra over the local graph and returns the
// ordered list of node ids from 'from' to 'to' (inclusive) and the total
// distance in meters. Returns ok=false if no path exists.
func (g *LocalGraph) ShortestPath(from, to string) (path []string, meters float64, ok bool) {
	if g.adjacency == nil {
		g.Build()
	}
	if from == to {
		return []string{from}, 0, true
	}

	dist := make(map[string]float64)
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := &priorityQueue{{node: from, dist: 0}}
	dist[from] = 0
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == to {
			break
		}
		for _, e := range g.adjacency[cur.node] {
			nd := cur.dist + e.Meters
			if existing, seen := dist[e.To]; !seen || nd < existing {
				dist[e.To] = nd
				prev[e.To] = cur.node
				heap.Push(pq, pqItem{node: e.To, dist: nd})
			}
		}
	}

	if _, reached := dist[to]; !reached {
		return nil, 0, false
	}

	// Walk prev pointers back to front, then reverse.
	for n := to; n != from; n = prev[n] {
		path = append(path, n)
	}
	path = append(path, from)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[to], true
}
