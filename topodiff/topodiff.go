// Package topodiff compares a kernel snapshot taken before an op against
// one taken after, and classifies every entity as Unchanged, Created,
// Deleted, or Modified.
package topodiff

import (
	"sort"

	"github.com/foundrycad/waffle-iron/sig"
)

// Reason explains why an entity was reclassified from a candidate
// deletion/creation pair into a Modified pairing.
type Reason int

const (
	ReasonNone Reason = iota
	Trimmed
	Split
	Merged
	Moved
)

func (r Reason) String() string {
	switch r {
	case Trimmed:
		return "Trimmed"
	case Split:
		return "Split"
	case Merged:
		return "Merged"
	case Moved:
		return "Moved"
	default:
		return "None"
	}
}

// ModifiedPair links a before-entity to the after-entity the similarity
// pass decided replaces it.
type ModifiedPair struct {
	Before sig.Entity
	After  sig.Entity
	Reason Reason
}

// Result partitions every entity seen in before and after into exactly
// one bucket.
type Result struct {
	Unchanged []sig.Entity
	Created   []sig.Entity
	Deleted   []sig.Entity
	Modified  []ModifiedPair
}

// Options tunes the similarity threshold used to reclassify a
// deleted/created pair into Modified. Fillet and chamfer intentionally
// trim more aggressively than other ops, so they use a higher threshold
// to avoid over-matching unrelated faces.
type Options struct {
	ModifiedThreshold float64
}

// DefaultOptions matches the empirically chosen cutoff.
func DefaultOptions() Options {
	return Options{ModifiedThreshold: sig.SameEntityThreshold}
}

// sameIDUnchangedThreshold is the similarity a same-id pair must reach to
// stay Unchanged; anything lower is reported as Modified.
const sameIDUnchangedThreshold = 0.999

// Diff implements the four-pass classification: intersect by id, then
// candidate deleted/created sets, then greedy best-match reclassification.
func Diff(before, after []sig.Entity, opts Options) Result {
	if opts.ModifiedThreshold <= 0 {
		opts.ModifiedThreshold = sig.SameEntityThreshold
	}

	beforeByID := make(map[sig.KernelId]sig.Entity, len(before))
	for _, e := range before {
		beforeByID[e.ID] = e
	}
	afterByID := make(map[sig.KernelId]sig.Entity, len(after))
	for _, e := range after {
		afterByID[e.ID] = e
	}

	var res Result

	var deletedCandidates, createdCandidates []sig.Entity

	for _, e := range before {
		a, ok := afterByID[e.ID]
		if !ok {
			deletedCandidates = append(deletedCandidates, e)
			continue
		}
		// Same kernel id on both sides still needs its signature
		// re-checked: a kernel that preserves ids across a mutation can
		// hand back the same id for a face that moved, trimmed, or grew
		// enough that it is no longer really "the same" entity.
		if sig.Similarity(e.Sig, a.Sig) >= sameIDUnchangedThreshold {
			res.Unchanged = append(res.Unchanged, e)
		} else {
			res.Modified = append(res.Modified, ModifiedPair{
				Before: e,
				After:  a,
				Reason: classify(e, a),
			})
		}
	}
	for _, e := range after {
		if _, ok := beforeByID[e.ID]; ok {
			continue // already classified Unchanged or Modified above
		}
		createdCandidates = append(createdCandidates, e)
	}

	sort.Slice(deletedCandidates, func(i, j int) bool {
		return sig.EntityLess(deletedCandidates[i], deletedCandidates[j])
	})
	sort.Slice(createdCandidates, func(i, j int) bool {
		return sig.EntityLess(createdCandidates[i], createdCandidates[j])
	})

	createdUsed := make([]bool, len(createdCandidates))
	for _, d := range deletedCandidates {
		bestIdx := -1
		bestScore := opts.ModifiedThreshold
		for i, c := range createdCandidates {
			if createdUsed[i] || c.Sig.Kind != d.Sig.Kind {
				continue
			}
			score := sig.Similarity(d.Sig, c.Sig)
			if score >= bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			createdUsed[bestIdx] = true
			res.Modified = append(res.Modified, ModifiedPair{
				Before: d,
				After:  createdCandidates[bestIdx],
				Reason: classify(d, createdCandidates[bestIdx]),
			})
			continue
		}
		res.Deleted = append(res.Deleted, d)
	}

	for i, c := range createdCandidates {
		if !createdUsed[i] {
			res.Created = append(res.Created, c)
		}
	}

	return res
}

// classify picks a human-readable reason for a Modified reclassification
// from the relative change in the entity's measure (area/length).
func classify(before, after sig.Entity) Reason {
	if before.Sig.Measure == 0 {
		return Moved
	}
	ratio := after.Sig.Measure / before.Sig.Measure
	degreeGrew := after.Sig.AdjacencyDegree > before.Sig.AdjacencyDegree
	switch {
	case ratio < 0.97 && degreeGrew:
		return Split
	case ratio < 0.97:
		return Trimmed
	case ratio > 1.03:
		return Merged
	default:
		return Moved
	}
}
