package models

import "time"

// Proposal review statuses.
const (
	StatusUnderReview = "under_review"
	StatusRevision    = "revision"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
)

// ValidStatus reports whether s is one of the four review statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnderReview, StatusRevision, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Proposal is one submitted version of an event-sponsorship proposal.
// A nil OriginalProposalID marks the root of a resubmission thread;
// resubmissions carry the root's id there.
type Proposal struct {
	ProposalID         int       `gorm:"primaryKey;column:proposal_id" json:"proposal_id"`
	UserID             int       `gorm:"column:user_id;index" json:"user_id"`
	OriginalProposalID *int      `gorm:"column:original_proposal_id;index" json:"original_proposal_id"`
	Status             string    `gorm:"column:status;default:under_review" json:"status"`
	Remarks            string    `gorm:"column:remarks" json:"remarks"`
	SubmissionDate     time.Time `gorm:"column:submission_date" json:"submission_date"`

	EventName            string   `gorm:"column:event_name" json:"eventName"`
	EventType            string   `gorm:"column:event_type" json:"eventType"`
	EventLevel           string   `gorm:"column:event_level" json:"eventLevel"`
	EntityName           string   `gorm:"column:entity_name" json:"entityName"`
	EntityType           string   `gorm:"column:entity_type" json:"entityType"`
	OrganizedBy          string   `gorm:"column:organized_by" json:"organizedBy"`
	EventDate            string   `gorm:"column:event_date" json:"eventDate"`
	Venue                string   `gorm:"column:venue" json:"venue"`
	TimeFrom             string   `gorm:"column:time_from" json:"timeFrom"`
	TimeTo               string   `gorm:"column:time_to" json:"timeTo"`
	FacultyCoordinator   string   `gorm:"column:faculty_coordinator" json:"facultyCoordinator"`
	Ecode                string   `gorm:"column:ecode" json:"ecode"`
	Email                string   `gorm:"column:email" json:"email"`
	ContactNumber        string   `gorm:"column:contact_number" json:"contactNumber"`
	RegistrationFees     string   `gorm:"column:registration_fees" json:"registrationFees"`
	FeeAmount            string   `gorm:"column:fee_amount" json:"feeAmount"`
	PrizePool            string   `gorm:"column:prize_pool" json:"prizePool"`
	PrizeAmount          string   `gorm:"column:prize_amount" json:"prizeAmount"`
	EventMode            string   `gorm:"column:event_mode" json:"eventMode"`
	ExpectedParticipants string   `gorm:"column:expected_participants" json:"expectedParticipants"`
	Sponsorship          string   `gorm:"column:sponsorship" json:"sponsorship"`
	SponsorshipType      []string `gorm:"column:sponsorship_type;serializer:json" json:"sponsorshipType"`
	SkillSet             string   `gorm:"column:skill_set" json:"skillSet"`
	SDGMapped            string   `gorm:"column:sdg_mapped" json:"sdgMapped"`
	Description          string   `gorm:"column:description" json:"description"`
	Outcome              string   `gorm:"column:outcome" json:"outcome"`
	Budget               float64  `gorm:"column:budget" json:"budget"`
	VerifiedEmail        string   `gorm:"column:verified_email" json:"verifiedEmail"`

	EventDetailsUrl   string `gorm:"column:event_details_url" json:"eventDetailsUrl"`
	BudgetSummaryUrl  string `gorm:"column:budget_summary_url" json:"budgetSummaryUrl"`
	GuestListUrl      string `gorm:"column:guest_list_url" json:"guestListUrl"`
	MinuteByMinuteUrl string `gorm:"column:minute_by_minute_url" json:"minuteByMinuteUrl"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// History holds resubmissions when proposals are grouped into threads.
	// It is assembled in memory, never persisted.
	History []Proposal `gorm:"-" json:"history,omitempty"`
}

func (Proposal) TableName() string {
	return "proposals"
}

// IsRoot reports whether the proposal anchors its thread.
func (p *Proposal) IsRoot() bool {
	return p.OriginalProposalID == nil
}

// RootID returns the id of the thread root this proposal belongs to.
func (p *Proposal) RootID() int {
	if p.OriginalProposalID != nil {
		return *p.OriginalProposalID
	}
	return p.ProposalID
}
