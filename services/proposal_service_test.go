package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tech-invent-api/models"
)

func validPayload() *models.Proposal {
	return &models.Proposal{
		EventName:          "AI Hackathon",
		EventType:          "Competition & Hackathon",
		FacultyCoordinator: "Dr. Rao",
		Email:              "rao@example.edu",
		Budget:             25000,
		EventDetailsUrl:    "https://files.example.com/details.pdf",
		BudgetSummaryUrl:   "https://files.example.com/budget.pdf",
		GuestListUrl:       "https://files.example.com/guests.pdf",
		MinuteByMinuteUrl:  "https://files.example.com/schedule.pdf",
	}
}

func newService(repo *fakeRepo, mail *fakeMailer) *ProposalService {
	svc := NewProposalService(repo, mail)
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Hour)
	}
	return svc
}

func TestSubmitForcesInitialState(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	payload := validPayload()
	payload.Status = models.StatusAccepted // must be ignored
	payload.Remarks = "looks great"        // must be ignored

	created, err := svc.Submit(7, payload, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if created.Status != models.StatusUnderReview {
		t.Fatalf("expected status under_review, got %q", created.Status)
	}
	if created.Remarks != "" {
		t.Fatalf("expected empty remarks, got %q", created.Remarks)
	}
	if created.UserID != 7 {
		t.Fatalf("expected owner 7, got %d", created.UserID)
	}
	if created.OriginalProposalID != nil {
		t.Fatalf("expected root proposal, got link to %d", *created.OriginalProposalID)
	}
	if created.SubmissionDate.IsZero() {
		t.Fatal("expected submission date to be set")
	}
	if created.VerifiedEmail != "rao@example.edu" {
		t.Fatalf("expected verified email mirrored from email, got %q", created.VerifiedEmail)
	}
}

func TestSubmitRejectsMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Proposal)
		field  string
	}{
		{"event name", func(p *models.Proposal) { p.EventName = "" }, "eventName"},
		{"coordinator", func(p *models.Proposal) { p.FacultyCoordinator = "" }, "facultyCoordinator"},
		{"verified email", func(p *models.Proposal) { p.Email = ""; p.VerifiedEmail = "" }, "verifiedEmail"},
		{"event details url", func(p *models.Proposal) { p.EventDetailsUrl = "" }, "eventDetailsUrl"},
		{"budget summary url", func(p *models.Proposal) { p.BudgetSummaryUrl = "" }, "budgetSummaryUrl"},
		{"guest list url", func(p *models.Proposal) { p.GuestListUrl = "" }, "guestListUrl"},
		{"minute by minute url", func(p *models.Proposal) { p.MinuteByMinuteUrl = "" }, "minuteByMinuteUrl"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newService(repo, &fakeMailer{})

			payload := validPayload()
			tc.mutate(payload)

			_, err := svc.Submit(1, payload, nil)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
			if len(repo.proposals) != 0 {
				t.Fatal("nothing must be persisted on validation failure")
			}
		})
	}
}

func TestSubmitResubmissionLinksToRoot(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	original, err := svc.Submit(1, validPayload(), nil)
	if err != nil {
		t.Fatalf("Submit root: %v", err)
	}
	beforeStatus := repo.proposals[original.ProposalID].Status

	resub, err := svc.Submit(1, validPayload(), &original.ProposalID)
	if err != nil {
		t.Fatalf("Submit resubmission: %v", err)
	}

	if resub.OriginalProposalID == nil || *resub.OriginalProposalID != original.ProposalID {
		t.Fatalf("expected link to %d, got %v", original.ProposalID, resub.OriginalProposalID)
	}
	if repo.proposals[original.ProposalID].Status != beforeStatus {
		t.Fatal("original proposal must not be mutated")
	}
}

func TestSubmitResubmissionOfChildNormalizesToRoot(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	original, _ := svc.Submit(1, validPayload(), nil)
	middle, _ := svc.Submit(1, validPayload(), &original.ProposalID)

	// Client points at the intermediate version; the stored link must be
	// the thread root.
	latest, err := svc.Submit(1, validPayload(), &middle.ProposalID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if latest.OriginalProposalID == nil || *latest.OriginalProposalID != original.ProposalID {
		t.Fatalf("expected link to root %d, got %v", original.ProposalID, latest.OriginalProposalID)
	}
}

func TestSubmitResubmissionOfForeignProposalRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	other, _ := svc.Submit(2, validPayload(), nil)

	_, err := svc.Submit(1, validPayload(), &other.ProposalID)
	if !errors.Is(err, ErrProposalNotFound) {
		t.Fatalf("expected not-found for foreign original, got %v", err)
	}
}

func TestUpdateStatusPersistsAndNotifiesOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{UserID: 1, Name: "Asha", Email: "asha@example.edu"})
	mail := &fakeMailer{}
	svc := newService(repo, mail)

	p, _ := svc.Submit(1, validPayload(), nil)

	updated, notified, err := svc.UpdateStatus(p.ProposalID, models.StatusRevision, "Add budget breakdown")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !notified {
		t.Fatal("expected notification to be sent")
	}
	if updated.Status != models.StatusRevision || updated.Remarks != "Add budget breakdown" {
		t.Fatalf("unexpected persisted state: %q %q", updated.Status, updated.Remarks)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(mail.sent))
	}
	sent := mail.sent[0]
	if len(sent.to) != 1 || sent.to[0] != "asha@example.edu" {
		t.Fatalf("notification addressed to %v", sent.to)
	}
	if !strings.Contains(sent.html, "Add budget breakdown") {
		t.Fatal("expected remarks in the notification body")
	}

	// Linkage, owner and submission date survive.
	stored := repo.proposals[p.ProposalID]
	if stored.OriginalProposalID != nil || stored.UserID != 1 || !stored.SubmissionDate.Equal(p.SubmissionDate) {
		t.Fatal("status update must not touch owner, linkage or submission date")
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	if _, _, err := svc.UpdateStatus(1, "archived", "x"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, _, err := svc.UpdateStatus(1, models.StatusAccepted, ""); !errors.Is(err, ErrRemarksRequired) {
		t.Fatalf("expected ErrRemarksRequired, got %v", err)
	}
	if _, _, err := svc.UpdateStatus(99, models.StatusAccepted, "ok"); !errors.Is(err, ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound, got %v", err)
	}
}

func TestUpdateStatusKeepsCommitOnNotificationFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{UserID: 1, Name: "Asha", Email: "asha@example.edu"})
	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := newService(repo, mail)

	p, _ := svc.Submit(1, validPayload(), nil)

	updated, notified, err := svc.UpdateStatus(p.ProposalID, models.StatusAccepted, "Approved by committee")
	if err != nil {
		t.Fatalf("delivery failure must not surface as an error: %v", err)
	}
	if notified {
		t.Fatal("expected notified=false")
	}
	if updated.Status != models.StatusAccepted {
		t.Fatal("status change must stay committed despite the failed notification")
	}
}

func TestUpdateContentReplacesOnlyDescriptiveFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	p, _ := svc.Submit(1, validPayload(), nil)
	repo.proposals[p.ProposalID].Status = models.StatusAccepted
	repo.proposals[p.ProposalID].Remarks = "Approved"

	edit := validPayload()
	edit.EventName = "AI Hackathon 2.0"
	edit.Budget = 30000
	edit.Status = models.StatusRejected // must be ignored
	edit.Remarks = "sneaky"             // must be ignored
	edit.UserID = 42                    // must be ignored

	updated, err := svc.UpdateContent(p.ProposalID, edit)
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	if updated.EventName != "AI Hackathon 2.0" || updated.Budget != 30000 {
		t.Fatalf("descriptive fields not replaced: %q %v", updated.EventName, updated.Budget)
	}
	if updated.Status != models.StatusAccepted || updated.Remarks != "Approved" {
		t.Fatalf("status/remarks must survive a content edit, got %q %q", updated.Status, updated.Remarks)
	}
	if updated.UserID != 1 {
		t.Fatalf("owner must survive a content edit, got %d", updated.UserID)
	}
	if !updated.SubmissionDate.Equal(p.SubmissionDate) {
		t.Fatal("submission date must survive a content edit")
	}
}

func TestUpdateContentOnlyWhenAccepted(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	p, _ := svc.Submit(1, validPayload(), nil)

	_, err := svc.UpdateContent(p.ProposalID, validPayload())
	if !errors.Is(err, ErrContentEditNotAllowed) {
		t.Fatalf("expected ErrContentEditNotAllowed, got %v", err)
	}
}

func TestGetThreadReturnsFullLineageFromAnyMember(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	a, _ := svc.Submit(1, validPayload(), nil)
	b, _ := svc.Submit(1, validPayload(), &a.ProposalID)

	for _, memberID := range []int{a.ProposalID, b.ProposalID} {
		thread, err := svc.GetThreadForUser(memberID, 1)
		if err != nil {
			t.Fatalf("GetThreadForUser(%d): %v", memberID, err)
		}
		if len(thread) != 2 {
			t.Fatalf("expected 2 versions, got %d", len(thread))
		}
		if thread[0].ProposalID != b.ProposalID || thread[1].ProposalID != a.ProposalID {
			t.Fatalf("expected [%d %d], got [%d %d]",
				b.ProposalID, a.ProposalID, thread[0].ProposalID, thread[1].ProposalID)
		}
		if !thread[0].SubmissionDate.After(thread[1].SubmissionDate) {
			t.Fatal("thread must be ordered by submission date descending")
		}
	}
}

func TestGetThreadScopedToOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	p, _ := svc.Submit(1, validPayload(), nil)

	if _, err := svc.GetThreadForUser(p.ProposalID, 2); !errors.Is(err, ErrProposalNotFound) {
		t.Fatalf("expected not-found for other user, got %v", err)
	}
}

func TestListThreadsGroupsByThread(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	a, _ := svc.Submit(1, validPayload(), nil)
	svc.Submit(1, validPayload(), &a.ProposalID)
	svc.Submit(1, validPayload(), nil)

	roots, err := svc.ListThreads(1)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(roots))
	}
}

func TestQueryStatusCountMatchesDashboardBucket(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{UserID: 1, Name: "Asha", Email: "asha@example.edu"})
	svc := newService(repo, &fakeMailer{})

	for i := 0; i < 4; i++ {
		p, _ := svc.Submit(1, validPayload(), nil)
		if i < 3 {
			repo.proposals[p.ProposalID].Status = models.StatusAccepted
		}
	}

	listed, _, err := svc.Query(ProposalFilter{Status: models.StatusAccepted})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	stats, err := svc.DashboardStats()
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}

	if len(listed) != stats.StatusCounts[models.StatusAccepted] {
		t.Fatalf("filtered count %d does not match stats bucket %d",
			len(listed), stats.StatusCounts[models.StatusAccepted])
	}
}

func TestQueryReportsOrphanedResubmissions(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeMailer{})

	a, _ := svc.Submit(1, validPayload(), nil)
	b, _ := svc.Submit(1, validPayload(), &a.ProposalID)
	repo.proposals[b.ProposalID].Status = models.StatusRevision

	// Filter matches the resubmission but not its root.
	_, orphans, err := svc.Query(ProposalFilter{Status: models.StatusRevision})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if orphans != 1 {
		t.Fatalf("expected 1 orphan, got %d", orphans)
	}
}
