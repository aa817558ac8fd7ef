// Package policy decides what a submitted rating does to the escrow. It is
// deliberately pure so the rule can be tested without a database or gateway.
package policy

type Outcome int

const (
	// OutcomeRelease pays the payee out immediately.
	OutcomeRelease Outcome = iota
	// OutcomeEscalate opens a complaint and parks the booking for review.
	OutcomeEscalate
)

func (o Outcome) String() string {
	if o == OutcomeRelease {
		return "release"
	}

	return "escalate"
}

// Resolve maps a rating to its escrow outcome. A rating at or above the
// threshold releases; anything below escalates.
func Resolve(rating, releaseThreshold int) Outcome {
	if rating >= releaseThreshold {
		return OutcomeRelease
	}

	return OutcomeEscalate
}
