package accounting

import "github.com/daftarhq/daftar/internal/core/domain"

// ChildIndex builds a parent-to-children index from the account forest. Roots
// are keyed by the empty string.
func ChildIndex(accounts []domain.Account) map[string][]domain.Account {
	children := make(map[string][]domain.Account, len(accounts))
	for _, acc := range accounts {
		children[acc.ParentAccountID] = append(children[acc.ParentAccountID], acc)
	}
	return children
}

// RollUp propagates own-period amounts up the account forest: each node's
// total is its own amount plus the rolled totals of all children. The walk
// memoises visited nodes, so no node is counted twice even if the parent
// graph is malformed.
func RollUp(accounts []domain.Account, own map[string]int64) map[string]int64 {
	children := ChildIndex(accounts)
	totals := make(map[string]int64, len(accounts))
	visited := make(map[string]bool, len(accounts))

	var walk func(acc domain.Account) int64
	walk = func(acc domain.Account) int64 {
		if visited[acc.AccountID] {
			return totals[acc.AccountID]
		}
		visited[acc.AccountID] = true
		total := own[acc.AccountID]
		for _, ch := range children[acc.AccountID] {
			total += walk(ch)
		}
		totals[acc.AccountID] = total
		return total
	}

	for _, root := range children[""] {
		walk(root)
	}
	return totals
}
