// Package export renders proposals into spreadsheet form for the review
// portal's download actions.
package export

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"tech-invent-api/models"
)

var listHeaders = []string{
	"ID", "Event Name", "Event Type", "Event Level", "Coordinator",
	"Owner", "Owner Email", "Budget", "Expected Participants",
	"Status", "Remarks", "Submitted",
}

// ProposalList renders a flat proposal listing, one row per proposal.
func ProposalList(list []models.Proposal) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)

	sheet := "Sheet1"
	if err := writeRow(f, sheet, 1, toCells(listHeaders)); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range list {
		cells := []interface{}{
			p.ProposalID, p.EventName, p.EventType, p.EventLevel,
			p.FacultyCoordinator, p.User.Name, p.User.Email, p.Budget,
			p.ExpectedParticipants, p.Status, p.Remarks,
			p.SubmissionDate.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	f.SetSheetName(sheet, "Proposals")
	return f.WriteToBuffer()
}

// ProposalSheet renders a single proposal as the review sheet the
// committee circulates, field label in column A and value in column B.
func ProposalSheet(p *models.Proposal) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)

	sheet := "Sheet1"
	rows := [][2]interface{}{
		{"Event Name", p.EventName},
		{"Event Type", p.EventType},
		{"Event Level", p.EventLevel},
		{"Entity Name", p.EntityName},
		{"Entity Type", p.EntityType},
		{"Organized By", p.OrganizedBy},
		{"Event Date", p.EventDate},
		{"Venue", p.Venue},
		{"Time", p.TimeFrom + " - " + p.TimeTo},
		{"Event Mode", p.EventMode},
		{"Faculty Coordinator", p.FacultyCoordinator},
		{"Employee Code", p.Ecode},
		{"Email", p.Email},
		{"Contact Number", p.ContactNumber},
		{"Expected Participants", p.ExpectedParticipants},
		{"Registration Fees", p.RegistrationFees},
		{"Fee Amount", p.FeeAmount},
		{"Prize Pool", p.PrizePool},
		{"Prize Amount", p.PrizeAmount},
		{"Sponsorship", p.Sponsorship},
		{"Sponsorship Type", strings.Join(p.SponsorshipType, ", ")},
		{"Budget", p.Budget},
		{"Skill Set", p.SkillSet},
		{"SDG Mapped", p.SDGMapped},
		{"Description", p.Description},
		{"Expected Outcome", p.Outcome},
		{"Status", p.Status},
		{"Remarks", p.Remarks},
		{"Submission Date", p.SubmissionDate.Format("2006-01-02 15:04")},
		{"Event Details Document", p.EventDetailsUrl},
		{"Budget Summary Document", p.BudgetSummaryUrl},
		{"Guest List Document", p.GuestListUrl},
		{"Minute-by-Minute Document", p.MinuteByMinuteUrl},
	}

	for i, row := range rows {
		if err := writeRow(f, sheet, i+1, []interface{}{row[0], row[1]}); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	f.SetSheetName(sheet, "Proposal")
	return f.WriteToBuffer()
}

// Filename builds a safe attachment name from the event name.
func Filename(eventName, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, eventName)
	if safe == "" {
		safe = "proposal"
	}
	return "Proposal_" + safe + ext
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.Printf("failed to close spreadsheet: %v", err)
	}
}
