package l3merge

import "sort"

// UnionFind groups raw contact indices into clusters. Each index points at
// its cluster leader and every leader keeps the full member list, so Find
// is constant time and Union copies the smaller cluster into the larger.
type UnionFind struct {
	leaders  []int
	clusters map[int][]int
}

// NewUnionFind returns n singleton clusters.
func NewUnionFind(n int) *UnionFind {
	u := &UnionFind{leaders: make([]int, n), clusters: make(map[int][]int, n)}
	for i := 0; i < n; i++ {
		u.leaders[i] = i
		u.clusters[i] = []int{i}
	}
	return u
}

// Find returns the leader of i's cluster.
func (u *UnionFind) Find(i int) int {
	return u.leaders[i]
}

// Size returns the member count of i's cluster.
func (u *UnionFind) Size(i int) int {
	return len(u.clusters[u.leaders[i]])
}

// Union joins the clusters of a and b and returns the surviving leader.
// The smaller cluster moves into the larger; on a tie b's moves into a's.
func (u *UnionFind) Union(a, b int) int {
	la, lb := u.leaders[a], u.leaders[b]
	if la == lb {
		return la
	}
	if len(u.clusters[lb]) > len(u.clusters[la]) {
		la, lb = lb, la
	}
	for _, m := range u.clusters[lb] {
		u.leaders[m] = la
	}
	u.clusters[la] = append(u.clusters[la], u.clusters[lb]...)
	delete(u.clusters, lb)
	return la
}

// Clusters returns every cluster with sorted members, ordered by their
// smallest member.
func (u *UnionFind) Clusters() [][]int {
	out := make([][]int, 0, len(u.clusters))
	for _, members := range u.clusters {
		m := append([]int(nil), members...)
		sort.Ints(m)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
