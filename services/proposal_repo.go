package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tech-invent-api/models"
)

// ProposalRepository is the document-store boundary of the lifecycle
// engine. The gorm implementation below is the real one; tests use an
// in-memory fake.
type ProposalRepository interface {
	Create(p *models.Proposal) error
	FindByID(id int) (*models.Proposal, error)
	FindByIDWithUser(id int) (*models.Proposal, error)
	FindOwned(id, userID int) (*models.Proposal, error)
	FindByUser(userID int) ([]models.Proposal, error)
	FindThread(rootID int) ([]models.Proposal, error)
	UpdateStatus(id int, status, remarks string) error
	UpdateContent(id int, payload *models.Proposal) error
	Search(f ProposalFilter) ([]models.Proposal, error)
	FindAllWithUsers() ([]models.Proposal, error)
	CountUsers() (int64, error)
}

type gormProposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository returns the gorm-backed repository.
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &gormProposalRepository{db: db}
}

func (r *gormProposalRepository) Create(p *models.Proposal) error {
	return r.db.Create(p).Error
}

func (r *gormProposalRepository) FindByID(id int) (*models.Proposal, error) {
	var p models.Proposal
	if err := r.db.Where("proposal_id = ?", id).First(&p).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

func (r *gormProposalRepository) FindByIDWithUser(id int) (*models.Proposal, error) {
	var p models.Proposal
	if err := r.db.Preload("User").Where("proposal_id = ?", id).First(&p).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

func (r *gormProposalRepository) FindOwned(id, userID int) (*models.Proposal, error) {
	var p models.Proposal
	if err := r.db.Where("proposal_id = ? AND user_id = ?", id, userID).First(&p).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

func (r *gormProposalRepository) FindByUser(userID int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Where("user_id = ?", userID).
		Order("submission_date DESC").
		Find(&proposals).Error
	return proposals, err
}

// FindThread returns the root and every resubmission referencing it.
func (r *gormProposalRepository) FindThread(rootID int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Where("proposal_id = ? OR original_proposal_id = ?", rootID, rootID).
		Order("submission_date DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *gormProposalRepository) UpdateStatus(id int, status, remarks string) error {
	res := r.db.Model(&models.Proposal{}).
		Where("proposal_id = ?", id).
		Updates(map[string]interface{}{
			"status":  status,
			"remarks": remarks,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

// contentColumns are the descriptive fields replaced by a content edit.
// Owner, status, remarks, submission date and thread linkage are never in
// this list.
var contentColumns = []string{
	"event_name", "event_type", "event_level", "entity_name", "entity_type",
	"organized_by", "event_date", "venue", "time_from", "time_to",
	"faculty_coordinator", "ecode", "email", "contact_number",
	"registration_fees", "fee_amount", "prize_pool", "prize_amount",
	"event_mode", "expected_participants", "sponsorship", "sponsorship_type",
	"skill_set", "sdg_mapped", "description", "outcome", "budget",
	"verified_email", "event_details_url", "budget_summary_url",
	"guest_list_url", "minute_by_minute_url",
}

func (r *gormProposalRepository) UpdateContent(id int, payload *models.Proposal) error {
	res := r.db.Model(&models.Proposal{}).
		Where("proposal_id = ?", id).
		Select(contentColumns).
		Updates(payload)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (r *gormProposalRepository) Search(f ProposalFilter) ([]models.Proposal, error) {
	q := r.db.Preload("User")

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if f.Budget != nil {
		q = q.Where("budget "+f.Budget.sqlOp()+" ?", f.Budget.Value)
	}
	if f.Participants != nil {
		q = q.Where("CAST(expected_participants AS DECIMAL(12,2)) "+f.Participants.sqlOp()+" ?", f.Participants.Value)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "submission_date"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}
	q = q.Order(fmt.Sprintf("%s %s", column, direction))

	var proposals []models.Proposal
	err := q.Find(&proposals).Error
	return proposals, err
}

func (r *gormProposalRepository) FindAllWithUsers() ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Preload("User").Find(&proposals).Error
	return proposals, err
}

func (r *gormProposalRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProposalNotFound
	}
	return err
}
