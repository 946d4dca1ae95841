package services

import (
	"sort"
	"strconv"

	"tech-invent-api/models"
)

// Financials are the money rollups shown on the admin dashboard.
type Financials struct {
	TotalBudget     float64 `json:"totalBudget"`
	TotalPrizePool  float64 `json:"totalPrizePool"`
	AvgParticipants float64 `json:"avgParticipants"`
}

// TopSubmitter is one entry of the top-5 submitters chart.
type TopSubmitter struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// DashboardStats is the aggregate report backing the admin dashboard.
type DashboardStats struct {
	TotalUsers        int64          `json:"totalUsers"`
	NewProposalsCount int            `json:"newProposalsCount"`
	StatusCounts      map[string]int `json:"statusCounts"`
	EventTypeCounts   map[string]int `json:"eventTypeCounts"`
	EventLevelCounts  map[string]int `json:"eventLevelCounts"`
	EventModeCounts   map[string]int `json:"eventModeCounts"`
	SponsorshipCounts map[string]int `json:"sponsorshipCounts"`
	PrizePoolCounts   map[string]int `json:"prizePoolCounts"`
	RegFeesCounts     map[string]int `json:"regFeesCounts"`
	Financials        Financials     `json:"financials"`
	TopUsers          []TopSubmitter `json:"topUsers"`
}

// ComputeDashboardStats groups the proposal set in a single pass. Empty
// field values are left out of the count maps. Ties in the top-5 ranking
// are broken arbitrarily but deterministically (lower user id first).
func ComputeDashboardStats(proposals []models.Proposal, totalUsers int64) *DashboardStats {
	stats := &DashboardStats{
		TotalUsers:        totalUsers,
		StatusCounts:      map[string]int{},
		EventTypeCounts:   map[string]int{},
		EventLevelCounts:  map[string]int{},
		EventModeCounts:   map[string]int{},
		SponsorshipCounts: map[string]int{},
		PrizePoolCounts:   map[string]int{},
		RegFeesCounts:     map[string]int{},
		TopUsers:          []TopSubmitter{},
	}

	type userTally struct {
		name  string
		count int
	}
	byUser := make(map[int]*userTally)

	var participantsSum float64
	var participantsN int

	for _, p := range proposals {
		countInto(stats.StatusCounts, p.Status)
		countInto(stats.EventTypeCounts, p.EventType)
		countInto(stats.EventLevelCounts, p.EventLevel)
		countInto(stats.EventModeCounts, p.EventMode)
		countInto(stats.SponsorshipCounts, p.Sponsorship)
		countInto(stats.PrizePoolCounts, p.PrizePool)
		countInto(stats.RegFeesCounts, p.RegistrationFees)

		if p.Status == models.StatusUnderReview {
			stats.NewProposalsCount++
		}

		stats.Financials.TotalBudget += p.Budget
		if p.PrizePool == "Yes" {
			stats.Financials.TotalPrizePool += parseAmount(p.PrizeAmount)
		}
		if n, err := strconv.ParseFloat(p.ExpectedParticipants, 64); err == nil {
			participantsSum += n
			participantsN++
		}

		tally := byUser[p.UserID]
		if tally == nil {
			tally = &userTally{name: p.User.Name}
			byUser[p.UserID] = tally
		}
		tally.count++
	}

	if participantsN > 0 {
		stats.Financials.AvgParticipants = participantsSum / float64(participantsN)
	}

	for id, tally := range byUser {
		stats.TopUsers = append(stats.TopUsers, TopSubmitter{UserID: id, Name: tally.name, Count: tally.count})
	}
	sort.Slice(stats.TopUsers, func(i, j int) bool {
		if stats.TopUsers[i].Count != stats.TopUsers[j].Count {
			return stats.TopUsers[i].Count > stats.TopUsers[j].Count
		}
		return stats.TopUsers[i].UserID < stats.TopUsers[j].UserID
	})
	if len(stats.TopUsers) > 5 {
		stats.TopUsers = stats.TopUsers[:5]
	}

	return stats
}

func countInto(m map[string]int, key string) {
	if key == "" {
		return
	}
	m[key]++
}

func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
