package services

import (
	"fmt"
	"log"
	"time"

	"tech-invent-api/mailer"
	"tech-invent-api/models"
)

// ProposalService is the proposal lifecycle engine: submission and
// threading, the review status machine, admin filtering and the dashboard
// aggregation. It never touches HTTP concerns.
type ProposalService struct {
	repo ProposalRepository
	mail mailer.Sender
	now  func() time.Time
}

func NewProposalService(repo ProposalRepository, mail mailer.Sender) *ProposalService {
	return &ProposalService{repo: repo, mail: mail, now: time.Now}
}

// Submit creates a new proposal version for the user. Status, remarks and
// submission date supplied by the client are discarded; a resubmission is
// linked to the root of the thread it extends even when the client points
// at an intermediate version.
func (s *ProposalService) Submit(userID int, payload *models.Proposal, resubmitOf *int) (*models.Proposal, error) {
	p := &models.Proposal{
		UserID:         userID,
		Status:         models.StatusUnderReview,
		Remarks:        "",
		SubmissionDate: s.now(),
	}
	copyContent(p, payload)

	if p.VerifiedEmail == "" {
		p.VerifiedEmail = p.Email
	}

	if err := validateRequired(p); err != nil {
		return nil, err
	}

	if resubmitOf != nil {
		original, err := s.repo.FindOwned(*resubmitOf, userID)
		if err != nil {
			return nil, err
		}
		rootID := original.RootID()
		p.OriginalProposalID = &rootID
	}

	if err := s.repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	return p, nil
}

// UpdateStatus moves a proposal to the given review status and records the
// committee remarks, then emails the owner. The status write commits
// before the notification attempt; a delivery failure is logged and
// reported through the notified flag, never rolled back.
func (s *ProposalService) UpdateStatus(proposalID int, status, remarks string) (p *models.Proposal, notified bool, err error) {
	if !models.ValidStatus(status) {
		return nil, false, ErrInvalidStatus
	}
	if remarks == "" {
		return nil, false, ErrRemarksRequired
	}

	if err := s.repo.UpdateStatus(proposalID, status, remarks); err != nil {
		return nil, false, err
	}

	p, err = s.repo.FindByIDWithUser(proposalID)
	if err != nil {
		return nil, false, err
	}

	subject, html, err := mailer.StatusUpdateEmail(p.User.Name, p.EventName, status, remarks)
	if err != nil {
		log.Printf("status update email for proposal %d not rendered: %v", proposalID, err)
		return p, false, nil
	}
	if err := s.mail.Send([]string{p.User.Email}, subject, html); err != nil {
		log.Printf("status update notification for proposal %d failed: %v", proposalID, err)
		return p, false, nil
	}

	return p, true, nil
}

// UpdateContent replaces the descriptive fields of an accepted proposal.
// Owner, status, remarks, submission date and thread linkage survive
// untouched, and no notification is sent.
func (s *ProposalService) UpdateContent(proposalID int, payload *models.Proposal) (*models.Proposal, error) {
	current, err := s.repo.FindByID(proposalID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusAccepted {
		return nil, ErrContentEditNotAllowed
	}

	if err := validateRequired(withContent(payload)); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateContent(proposalID, payload); err != nil {
		return nil, err
	}

	return s.repo.FindByIDWithUser(proposalID)
}

// GetProposalForUser returns a single proposal owned by the user.
func (s *ProposalService) GetProposalForUser(proposalID, userID int) (*models.Proposal, error) {
	return s.repo.FindOwned(proposalID, userID)
}

// GetProposal returns a single proposal with its owner populated.
func (s *ProposalService) GetProposal(proposalID int) (*models.Proposal, error) {
	return s.repo.FindByIDWithUser(proposalID)
}

// GetThreadForUser resolves the thread any member proposal belongs to and
// returns every version, most recent first.
func (s *ProposalService) GetThreadForUser(proposalID, userID int) ([]models.Proposal, error) {
	member, err := s.repo.FindOwned(proposalID, userID)
	if err != nil {
		return nil, err
	}

	thread, err := s.repo.FindThread(member.RootID())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	sortBySubmissionDateDesc(thread)
	return thread, nil
}

// ListThreads returns the user's proposals grouped into threads, newest
// activity first.
func (s *ProposalService) ListThreads(userID int) ([]models.Proposal, error) {
	proposals, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposals: %w", err)
	}
	roots, _ := BuildThreads(proposals)
	return roots, nil
}

// Query returns the flat admin listing for the given filter, owners
// populated, plus the count of resubmissions whose root the filter
// excluded.
func (s *ProposalService) Query(f ProposalFilter) (proposals []models.Proposal, orphans int, err error) {
	proposals, err = s.repo.Search(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query proposals: %w", err)
	}
	_, orphans = BuildThreads(proposals)
	return proposals, orphans, nil
}

// DashboardStats aggregates the whole proposal set for the admin
// dashboard. Read-only, no ordering guarantees beyond the top-5 ranking.
func (s *ProposalService) DashboardStats() (*DashboardStats, error) {
	proposals, err := s.repo.FindAllWithUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposals: %w", err)
	}
	totalUsers, err := s.repo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return ComputeDashboardStats(proposals, totalUsers), nil
}

// copyContent transfers only the descriptive payload between proposals,
// mirroring the column list the repository updates on a content edit.
func copyContent(dst, src *models.Proposal) {
	dst.EventName = src.EventName
	dst.EventType = src.EventType
	dst.EventLevel = src.EventLevel
	dst.EntityName = src.EntityName
	dst.EntityType = src.EntityType
	dst.OrganizedBy = src.OrganizedBy
	dst.EventDate = src.EventDate
	dst.Venue = src.Venue
	dst.TimeFrom = src.TimeFrom
	dst.TimeTo = src.TimeTo
	dst.FacultyCoordinator = src.FacultyCoordinator
	dst.Ecode = src.Ecode
	dst.Email = src.Email
	dst.ContactNumber = src.ContactNumber
	dst.RegistrationFees = src.RegistrationFees
	dst.FeeAmount = src.FeeAmount
	dst.PrizePool = src.PrizePool
	dst.PrizeAmount = src.PrizeAmount
	dst.EventMode = src.EventMode
	dst.ExpectedParticipants = src.ExpectedParticipants
	dst.Sponsorship = src.Sponsorship
	dst.SponsorshipType = src.SponsorshipType
	dst.SkillSet = src.SkillSet
	dst.SDGMapped = src.SDGMapped
	dst.Description = src.Description
	dst.Outcome = src.Outcome
	dst.Budget = src.Budget
	dst.VerifiedEmail = src.VerifiedEmail
	dst.EventDetailsUrl = src.EventDetailsUrl
	dst.BudgetSummaryUrl = src.BudgetSummaryUrl
	dst.GuestListUrl = src.GuestListUrl
	dst.MinuteByMinuteUrl = src.MinuteByMinuteUrl
}

func withContent(payload *models.Proposal) *models.Proposal {
	var p models.Proposal
	copyContent(&p, payload)
	if p.VerifiedEmail == "" {
		p.VerifiedEmail = p.Email
	}
	return &p
}

// validateRequired enforces the creation invariants: the event name, the
// coordinator, the verified email and all four document URLs must be
// present before anything is persisted.
func validateRequired(p *models.Proposal) error {
	switch {
	case p.EventName == "":
		return missingField("eventName")
	case p.FacultyCoordinator == "":
		return missingField("facultyCoordinator")
	case p.VerifiedEmail == "":
		return missingField("verifiedEmail")
	case p.EventDetailsUrl == "":
		return missingField("eventDetailsUrl")
	case p.BudgetSummaryUrl == "":
		return missingField("budgetSummaryUrl")
	case p.GuestListUrl == "":
		return missingField("guestListUrl")
	case p.MinuteByMinuteUrl == "":
		return missingField("minuteByMinuteUrl")
	}
	return nil
}
