package profile

import "github.com/umputun/booruscope/pkg/domain"

// Rebuild computes the profile from scratch out of ledger records.
// Records are folded in the given order with the same increments Apply uses,
// so rebuilding and incremental updates converge for any mix of reactions.
// Records without a reaction are skipped.
func Rebuild(records []domain.SeenRecord) *Profile {
	p := New()
	for _, rec := range records {
		if !rec.Status.IsReaction() {
			continue
		}
		p.Apply(rec.Tags, rec.Rating, rec.Status)
	}
	return p
}
