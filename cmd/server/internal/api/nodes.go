package api

import (
	"net/http"
	"strings"

	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

const maxSearchResults = 100

func (a *API) rootNodes(w http.ResponseWriter, r *http.Request) {
	roots := a.store.RootNodes()
	if roots == nil {
		roots = []models.HierarchyNode{}
	}
	a.ok(w, roots)
}

func (a *API) getNode(w http.ResponseWriter, r *http.Request) {
	node, ok := a.store.Node(r.PathValue("id"))
	if !ok {
		a.fail(w, http.StatusNotFound, "Node not found")
		return
	}
	a.ok(w, node)
}

func (a *API) nodeChildren(w http.ResponseWriter, r *http.Request) {
	a.ok(w, a.store.Children(r.PathValue("id")))
}

func (a *API) nodeBreadcrumb(w http.ResponseWriter, r *http.Request) {
	path := a.store.PathToRoot(r.PathValue("id"))
	if path == nil {
		path = []models.PathEntry{}
	}
	a.ok(w, path)
}

// nodeSearchResult is one hit with its root path, so the tree view can
// expand straight to it.
type nodeSearchResult struct {
	ID   string             `json:"id"`
	Name string             `json:"name"`
	Path []models.PathEntry `json:"path"`
}

// searchNodes returns matching nodes plus the set of ancestor ids the
// client should expand to reveal them.
func (a *API) searchNodes(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		a.fail(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	limit := intParam(r.URL.Query().Get("limit"), maxSearchResults)
	if limit < 1 || limit > maxSearchResults {
		limit = maxSearchResults
	}

	ids := a.store.SearchNodes(query)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	results := make([]nodeSearchResult, 0, len(ids))
	expandSet := make(map[string]struct{})
	for _, id := range ids {
		node, ok := a.store.Node(id)
		if !ok {
			continue
		}
		path := a.store.PathToRoot(id)
		results = append(results, nodeSearchResult{ID: node.ID, Name: node.Name, Path: path})
		// Ancestors only; the hit itself stays collapsed.
		for i := 0; i < len(path)-1; i++ {
			expandSet[path[i].ID] = struct{}{}
		}
	}

	expand := make([]string, 0, len(expandSet))
	for id := range expandSet {
		expand = append(expand, id)
	}

	a.ok(w, map[string]interface{}{
		"results": results,
		"expand":  expand,
	})
}

func (a *API) nodeStats(w http.ResponseWriter, r *http.Request) {
	a.ok(w, a.store.Stats())
}
