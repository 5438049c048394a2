package store

import "github.com/NOT44353/Test-Avalants-Final/pkg/models"

// NodeStats summarizes the hierarchy for the stats endpoint.
type NodeStats struct {
	TotalNodes int `json:"totalNodes"`
	RootNodes  int `json:"rootNodes"`
	MaxDepth   int `json:"maxDepth"`
}

// PutNode inserts or overwrites a hierarchy node and records the
// parent->child edge plus the search tokens. The parent does not need to
// exist (yet, or ever): orphans are still indexed under their parent key.
// Every call appends to the parent's child list; there is no removal.
func (s *Store) PutNode(n models.HierarchyNode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes[n.ID] = n
	s.parents[n.ID] = n.ParentID
	if n.ParentID != "" {
		s.children[n.ParentID] = append(s.children[n.ParentID], n.ID)
	}
	s.indexNodeLocked(n)
}

func (s *Store) Node(id string) (models.HierarchyNode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	return n, ok
}

func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// RootNodes returns every node with no parent, in store iteration order.
func (s *Store) RootNodes() []models.HierarchyNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var roots []models.HierarchyNode
	for _, n := range s.nodes {
		if n.ParentID == "" {
			roots = append(roots, n)
		}
	}
	return roots
}

// Children returns the recorded children of a node in append order. Empty
// for unknown ids or leaves.
func (s *Store) Children(nodeID string) []models.HierarchyNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.children[nodeID]
	out := make([]models.HierarchyNode, 0, len(ids))
	for _, id := range ids {
		if n, ok := s.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// PathToRoot walks parent links upward from nodeID and returns the path in
// root-to-leaf order, ending with the queried node. Unknown ids yield an
// empty path; a missing ancestor truncates the walk. The walk is bounded
// by a visited set: if it ever revisits a node the parent relation is
// cyclic and the path is reported as nil rather than looping forever.
func (s *Store) PathToRoot(nodeID string) []models.PathEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathToRootLocked(nodeID)
}

func (s *Store) pathToRootLocked(nodeID string) []models.PathEntry {
	var path []models.PathEntry
	visited := make(map[string]struct{})

	for id := nodeID; id != ""; {
		if _, seen := visited[id]; seen {
			return nil
		}
		visited[id] = struct{}{}

		n, ok := s.nodes[id]
		if !ok {
			break
		}
		path = append([]models.PathEntry{{ID: n.ID, Name: n.Name}}, path...)
		id = n.ParentID
	}
	return path
}

// Stats walks every node once to compute totals and the deepest path.
func (s *Store) Stats() NodeStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := NodeStats{TotalNodes: len(s.nodes)}
	for _, n := range s.nodes {
		if n.ParentID == "" {
			stats.RootNodes++
		}
		if depth := len(s.pathToRootLocked(n.ID)); depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
	}
	return stats
}

// SubtreeSize counts the nodes reachable from nodeID through the children
// index, including the node itself. BFS with a visited set, so it
// terminates even on malformed (cyclic) data.
func (s *Store) SubtreeSize(nodeID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[nodeID]; !ok {
		return 0
	}

	visited := map[string]struct{}{}
	queue := []string{nodeID}
	count := 0

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		count++
		queue = append(queue, s.children[id]...)
	}
	return count
}
