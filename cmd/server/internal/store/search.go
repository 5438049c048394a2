package store

import (
	"strings"

	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

// The search index is a candidate filter, not the final truth: tokens are
// matched loosely in both containment directions, then every candidate
// record is re-verified against the full query substring. Precision over
// raw speed, without an n-gram index.

func (s *Store) indexAccountLocked(a models.Account) {
	for _, tok := range accountTokens(a) {
		set, ok := s.accountTokens[tok]
		if !ok {
			set = make(map[int64]struct{})
			s.accountTokens[tok] = set
		}
		set[a.ID] = struct{}{}
	}
}

func (s *Store) indexNodeLocked(n models.HierarchyNode) {
	for _, tok := range strings.Fields(strings.ToLower(n.Name)) {
		set, ok := s.nodeTokens[tok]
		if !ok {
			set = make(map[string]struct{})
			s.nodeTokens[tok] = set
		}
		set[n.ID] = struct{}{}
	}
}

// accountTokens splits the name on whitespace and the contact on '@' and
// '.', all lowercased.
func accountTokens(a models.Account) []string {
	toks := strings.Fields(strings.ToLower(a.Name))
	toks = append(toks, strings.FieldsFunc(strings.ToLower(a.Contact), func(r rune) bool {
		return r == '@' || r == '.'
	})...)
	return toks
}

// SearchAccounts returns the ids of accounts whose name or contact
// contains the query, case-insensitively. Result order is unspecified.
func (s *Store) SearchAccounts(query string) []int64 {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[int64]struct{})
	for tok, ids := range s.accountTokens {
		if !tokenMatches(tok, q) {
			continue
		}
		for id := range ids {
			a, ok := s.accounts[id]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(a.Name), q) ||
				strings.Contains(strings.ToLower(a.Contact), q) {
				results[id] = struct{}{}
			}
		}
	}

	out := make([]int64, 0, len(results))
	for id := range results {
		out = append(out, id)
	}
	return out
}

// SearchNodes returns the ids of hierarchy nodes whose name contains the
// query, case-insensitively. Result order is unspecified.
func (s *Store) SearchNodes(query string) []string {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[string]struct{})
	for tok, ids := range s.nodeTokens {
		if !tokenMatches(tok, q) {
			continue
		}
		for id := range ids {
			n, ok := s.nodes[id]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(n.Name), q) {
				results[id] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(results))
	for id := range results {
		out = append(out, id)
	}
	return out
}

func tokenMatches(tok, query string) bool {
	return strings.Contains(tok, query) || strings.Contains(query, tok)
}
