package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/printshare/model"
)

func TestPolicy_ReleaseOrder(t *testing.T) {
	group := &model.Group{From: 3, To: 6, Leader: 4}
	testCases := []struct {
		name     string
		policy   *Policy
		expected []int
	}{
		{name: "nil policy", policy: nil, expected: []int{3, 4, 5, 6}},
		{name: "ascending", policy: &Policy{Release: ReleaseAscending}, expected: []int{3, 4, 5, 6}},
		{name: "descending", policy: &Policy{Release: ReleaseDescending}, expected: []int{6, 5, 4, 3}},
		{name: "leader last", policy: &Policy{Release: ReleaseLeaderLast}, expected: []int{3, 5, 6, 4}},
		{name: "case insensitive", policy: &Policy{Release: "LeaderLast"}, expected: []int{3, 5, 6, 4}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.policy.ReleaseOrder(group))
		})
	}
}

func TestPolicy_LeaderOf(t *testing.T) {
	var p *Policy
	assert.Equal(t, 2, p.LeaderOf(2, 5))
	assert.Equal(t, 2, Default().LeaderOf(2, 5))
	assert.Equal(t, 5, (&Policy{Leader: LeaderLast}).LeaderOf(2, 5))
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, (*Policy)(nil).Validate())
	assert.NoError(t, Default().Validate())
	assert.ErrorIs(t, (&Policy{Leader: "random"}).Validate(), model.ErrInvalidConfig)
	assert.ErrorIs(t, (&Policy{Release: "shuffled"}).Validate(), model.ErrInvalidConfig)
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	p := &Policy{Leader: LeaderLast}
	ctx := WithPolicy(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
}
