package store_test

import (
	"fmt"
	"testing"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/store"
	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

// chain builds root -> c1 -> c2 -> ... -> c<hops>.
func chain(s *store.Store, hops int) {
	s.PutNode(models.HierarchyNode{ID: "root", Name: "Company"})
	parent := "root"
	for i := 1; i <= hops; i++ {
		id := fmt.Sprintf("c%d", i)
		s.PutNode(models.HierarchyNode{ID: id, ParentID: parent, Name: "Level " + id})
		parent = id
	}
}

func TestPathToRoot_Length(t *testing.T) {
	s := store.New()
	chain(s, 4)

	path := s.PathToRoot("c4")
	if len(path) != 5 {
		t.Fatalf("Expected path length 5, got %d", len(path))
	}
	if path[0].ID != "root" {
		t.Errorf("Path should start at the root, got %s", path[0].ID)
	}
	if path[len(path)-1].ID != "c4" {
		t.Errorf("Path should end at the queried node, got %s", path[len(path)-1].ID)
	}
}

func TestPathToRoot_UnknownID(t *testing.T) {
	s := store.New()
	chain(s, 1)

	if path := s.PathToRoot("ghost"); len(path) != 0 {
		t.Errorf("Expected empty path for unknown id, got %v", path)
	}
}

func TestPathToRoot_TruncatesAtMissingParent(t *testing.T) {
	s := store.New()
	// Orphan: parent never inserted.
	s.PutNode(models.HierarchyNode{ID: "x", ParentID: "missing", Name: "Orphan"})

	path := s.PathToRoot("x")
	if len(path) != 1 || path[0].ID != "x" {
		t.Errorf("Expected truncated single-entry path, got %v", path)
	}
}

func TestPathToRoot_CycleFailsClosed(t *testing.T) {
	s := store.New()
	s.PutNode(models.HierarchyNode{ID: "a", ParentID: "b", Name: "A"})
	s.PutNode(models.HierarchyNode{ID: "b", ParentID: "a", Name: "B"})

	if path := s.PathToRoot("a"); path != nil {
		t.Errorf("Cyclic parent relation should yield nil path, got %v", path)
	}
}

func TestChildren_CallOrder(t *testing.T) {
	s := store.New()
	s.PutNode(models.HierarchyNode{ID: "p", Name: "Parent"})
	want := []string{"c3", "c1", "c2"}
	for _, id := range want {
		s.PutNode(models.HierarchyNode{ID: id, ParentID: "p", Name: "Child " + id})
	}

	kids := s.Children("p")
	if len(kids) != len(want) {
		t.Fatalf("Expected %d children, got %d", len(want), len(kids))
	}
	for i, id := range want {
		if kids[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, kids[i].ID)
		}
	}
}

func TestChildren_OrphanTolerant(t *testing.T) {
	s := store.New()
	s.PutNode(models.HierarchyNode{ID: "c", ParentID: "future-parent", Name: "Child"})

	kids := s.Children("future-parent")
	if len(kids) != 1 || kids[0].ID != "c" {
		t.Errorf("Child should be indexed under a not-yet-existing parent, got %v", kids)
	}
}

func TestChildren_Unknown(t *testing.T) {
	s := store.New()
	if kids := s.Children("nope"); len(kids) != 0 {
		t.Errorf("Expected no children for unknown id, got %v", kids)
	}
}

func TestRootNodes(t *testing.T) {
	s := store.New()
	s.PutNode(models.HierarchyNode{ID: "r1", Name: "Company"})
	s.PutNode(models.HierarchyNode{ID: "r2", Name: "Organization"})
	s.PutNode(models.HierarchyNode{ID: "c", ParentID: "r1", Name: "Team"})

	roots := s.RootNodes()
	if len(roots) != 2 {
		t.Errorf("Expected 2 roots, got %d", len(roots))
	}
}

func TestSubtreeSize(t *testing.T) {
	s := store.New()
	s.PutNode(models.HierarchyNode{ID: "p", Name: "Parent"})
	s.PutNode(models.HierarchyNode{ID: "a", ParentID: "p", Name: "A"})
	s.PutNode(models.HierarchyNode{ID: "b", ParentID: "p", Name: "B"})
	s.PutNode(models.HierarchyNode{ID: "a1", ParentID: "a", Name: "A1"})

	if got := s.SubtreeSize("p"); got != 4 {
		t.Errorf("Expected subtree size 4, got %d", got)
	}
	if got := s.SubtreeSize("a"); got != 2 {
		t.Errorf("Expected subtree size 2, got %d", got)
	}
	if got := s.SubtreeSize("ghost"); got != 0 {
		t.Errorf("Expected 0 for unknown node, got %d", got)
	}
}

func TestStats(t *testing.T) {
	s := store.New()
	chain(s, 3)
	s.PutNode(models.HierarchyNode{ID: "r2", Name: "Organization"})

	stats := s.Stats()
	if stats.TotalNodes != 5 {
		t.Errorf("Expected 5 nodes, got %d", stats.TotalNodes)
	}
	if stats.RootNodes != 2 {
		t.Errorf("Expected 2 roots, got %d", stats.RootNodes)
	}
	if stats.MaxDepth != 4 {
		t.Errorf("Expected max depth 4, got %d", stats.MaxDepth)
	}
}
