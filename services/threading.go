package services

import (
	"sort"
	"time"

	"tech-invent-api/models"
)

// BuildThreads groups a set of proposals into resubmission threads. Roots
// come back with their History filled (latest version first) and are
// themselves ordered by the submission date of their newest version.
//
// A child whose root is not in the input set cannot be attached anywhere;
// such orphans are dropped from the result and counted so callers can
// surface the gap instead of hiding it. This happens when a status filter
// matches a resubmission but not its root.
func BuildThreads(proposals []models.Proposal) (roots []models.Proposal, orphans int) {
	byRoot := make(map[int]int) // root proposal id -> index in roots

	for _, p := range proposals {
		if p.IsRoot() {
			p.History = []models.Proposal{}
			byRoot[p.ProposalID] = len(roots)
			roots = append(roots, p)
		}
	}

	for _, p := range proposals {
		if p.IsRoot() {
			continue
		}
		idx, ok := byRoot[*p.OriginalProposalID]
		if !ok {
			orphans++
			continue
		}
		roots[idx].History = append(roots[idx].History, p)
	}

	for i := range roots {
		sortBySubmissionDateDesc(roots[i].History)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return latestActivity(&roots[i]).After(latestActivity(&roots[j]))
	})

	return roots, orphans
}

// latestActivity is the submission date of the newest version in a thread.
func latestActivity(root *models.Proposal) time.Time {
	if len(root.History) > 0 {
		return root.History[0].SubmissionDate
	}
	return root.SubmissionDate
}

func sortBySubmissionDateDesc(proposals []models.Proposal) {
	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].SubmissionDate.After(proposals[j].SubmissionDate)
	})
}
