package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sage/internal/domains/review/policy"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		rating    int
		threshold int
		want      policy.Outcome
	}{
		{name: "rating above threshold releases", rating: 5, threshold: 3, want: policy.OutcomeRelease},
		{name: "rating at threshold releases", rating: 3, threshold: 3, want: policy.OutcomeRelease},
		{name: "rating below threshold escalates", rating: 2, threshold: 3, want: policy.OutcomeEscalate},
		{name: "lowest rating escalates", rating: 1, threshold: 3, want: policy.OutcomeEscalate},
		{name: "threshold of one releases everything", rating: 1, threshold: 1, want: policy.OutcomeRelease},
		{name: "threshold of five only releases perfect ratings", rating: 4, threshold: 5, want: policy.OutcomeEscalate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Resolve(tt.rating, tt.threshold))
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "release", policy.OutcomeRelease.String())
	assert.Equal(t, "escalate", policy.OutcomeEscalate.String())
}
