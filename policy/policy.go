package policy

import (
	"context"
	"sort"
	"strings"

	"github.com/viant/printshare/model"
)

// Leader selection modes.
const (
	LeaderFirst = "first" // lowest id in range (default)
	LeaderLast  = "last"  // highest id in range
)

// Release orders.
const (
	ReleaseAscending  = "ascending"  // ascending student id (default)
	ReleaseDescending = "descending" // descending student id
	ReleaseLeaderLast = "leaderLast" // ascending, leader takes the last turn
)

// Policy controls group formation and hand-off order for a run.
//
//   - Leader picks the leader of groups that do not name one explicitly.
//   - Release decides the order in which the leader wakes members.
//
// A nil *Policy means defaults and is therefore the zero-cost choice.
type Policy struct {
	Leader  string `json:"leader,omitempty" yaml:"leader,omitempty"`
	Release string `json:"release,omitempty" yaml:"release,omitempty"`
}

// Default returns the default policy.
func Default() *Policy {
	return &Policy{Leader: LeaderFirst, Release: ReleaseAscending}
}

// Validate returns a configuration error for unknown modes.
func (p *Policy) Validate() error {
	if p == nil {
		return nil
	}
	switch strings.ToLower(p.Leader) {
	case "", LeaderFirst, LeaderLast:
	default:
		return model.NewConfigError("policy.leader", "unsupported mode %q", p.Leader)
	}
	switch strings.ToLower(p.Release) {
	case "", ReleaseAscending, ReleaseDescending, strings.ToLower(ReleaseLeaderLast):
	default:
		return model.NewConfigError("policy.release", "unsupported order %q", p.Release)
	}
	return nil
}

// LeaderOf returns the leader id for the range [from, to].
func (p *Policy) LeaderOf(from, to int) int {
	if p != nil && strings.EqualFold(p.Leader, LeaderLast) {
		return to
	}
	return from
}

// ReleaseOrder returns every member of g exactly once, in the order the leader
// wakes them.
func (p *Policy) ReleaseOrder(g *model.Group) []int {
	members := g.Members()
	mode := ReleaseAscending
	if p != nil && p.Release != "" {
		mode = p.Release
	}
	switch strings.ToLower(mode) {
	case ReleaseDescending:
		sort.Sort(sort.Reverse(sort.IntSlice(members)))
	case strings.ToLower(ReleaseLeaderLast):
		ordered := make([]int, 0, len(members))
		for _, id := range members {
			if id != g.Leader {
				ordered = append(ordered, id)
			}
		}
		members = append(ordered, g.Leader)
	}
	return members
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the *Policy from ctx, nil when absent.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
