package services

import (
	"sort"

	"tech-invent-api/models"
)

// fakeRepo is the in-memory stand-in for the gorm repository.
type fakeRepo struct {
	proposals map[int]*models.Proposal
	users     map[int]*models.User
	nextID    int
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		proposals: make(map[int]*models.Proposal),
		users:     make(map[int]*models.User),
		nextID:    1,
	}
}

func (r *fakeRepo) addUser(u models.User) {
	copied := u
	r.users[u.UserID] = &copied
}

func (r *fakeRepo) addProposal(p models.Proposal) *models.Proposal {
	if p.ProposalID == 0 {
		p.ProposalID = r.nextID
	}
	if p.ProposalID >= r.nextID {
		r.nextID = p.ProposalID + 1
	}
	copied := p
	r.proposals[copied.ProposalID] = &copied
	return &copied
}

func (r *fakeRepo) Create(p *models.Proposal) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ProposalID = r.nextID
	r.nextID++
	copied := *p
	r.proposals[p.ProposalID] = &copied
	return nil
}

func (r *fakeRepo) FindByID(id int) (*models.Proposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, ErrProposalNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) FindByIDWithUser(id int) (*models.Proposal, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u, ok := r.users[p.UserID]; ok {
		p.User = *u
	}
	return p, nil
}

func (r *fakeRepo) FindOwned(id, userID int) (*models.Proposal, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrProposalNotFound
	}
	return p, nil
}

func (r *fakeRepo) FindByUser(userID int) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range r.proposals {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sortBySubmissionDateDesc(out)
	return out, nil
}

func (r *fakeRepo) FindThread(rootID int) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range r.proposals {
		if p.ProposalID == rootID || (p.OriginalProposalID != nil && *p.OriginalProposalID == rootID) {
			out = append(out, *p)
		}
	}
	sortBySubmissionDateDesc(out)
	return out, nil
}

func (r *fakeRepo) UpdateStatus(id int, status, remarks string) error {
	p, ok := r.proposals[id]
	if !ok {
		return ErrProposalNotFound
	}
	p.Status = status
	p.Remarks = remarks
	return nil
}

func (r *fakeRepo) UpdateContent(id int, payload *models.Proposal) error {
	p, ok := r.proposals[id]
	if !ok {
		return ErrProposalNotFound
	}
	copyContent(p, payload)
	return nil
}

func (r *fakeRepo) Search(f ProposalFilter) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range r.proposals {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.EventType != "" && p.EventType != f.EventType {
			continue
		}
		if f.Budget != nil && !f.Budget.Matches(p.Budget) {
			continue
		}
		if f.Participants != nil && !f.Participants.Matches(parseAmount(p.ExpectedParticipants)) {
			continue
		}
		copied := *p
		if u, ok := r.users[p.UserID]; ok {
			copied.User = *u
		}
		out = append(out, copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmissionDate.After(out[j].SubmissionDate)
	})
	return out, nil
}

func (r *fakeRepo) FindAllWithUsers() ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range r.proposals {
		copied := *p
		if u, ok := r.users[p.UserID]; ok {
			copied.User = *u
		}
		out = append(out, copied)
	}
	return out, nil
}

func (r *fakeRepo) CountUsers() (int64, error) {
	return int64(len(r.users)), nil
}

// fakeMailer records deliveries and can be told to fail.
type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      []string
	subject string
	html    string
}

func (m *fakeMailer) Send(to []string, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}
