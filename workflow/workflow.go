// Package workflow orchestrates the board's moderation pipeline: a
// submission becomes an open ticket, an administrator approves or
// rejects it, and approval appends the record to the published dataset
// before closing the ticket. All durable state lives behind the store
// interfaces; the workflow itself is stateless.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openjams/jamboard/codec"
	"github.com/openjams/jamboard/model"
	"github.com/openjams/jamboard/store"
)

const (
	SubmissionLabel = "gamejam-submission"
	ApprovedLabel   = "approved"
	RejectedLabel   = "rejected"

	titlePrefix = "GameJam submission: "

	approvedComment = "✅ This GameJam submission has been approved and published."
	rejectedComment = "❌ This GameJam submission has been rejected."
)

// ErrUnparseableSubmission is returned when a ticket body has no
// decodable submission block. The ticket is left untouched; an
// operator has to intervene manually.
var ErrUnparseableSubmission = errors.New("ticket body has no decodable submission")

// ErrTicketClosed is returned when a review decision targets a ticket
// that is already closed. Closed is terminal: re-approving would append
// a duplicate record to the dataset.
var ErrTicketClosed = errors.New("ticket is already closed")

// PartialError reports an approval that published the record but then
// failed to transition the ticket. The dataset is correct; the ticket
// needs manual closing. It must never be masked as success.
type PartialError struct {
	TicketNumber int
	Step         string
	Err          error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("record published, but %s of ticket %d failed: %v", e.Step, e.TicketNumber, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// PendingSubmission is one open ticket awaiting review. Submission is
// nil when the ticket body could not be decoded.
type PendingSubmission struct {
	TicketNumber int               `json:"ticketNumber"`
	TicketURL    string            `json:"ticketUrl"`
	Title        string            `json:"title"`
	CreatedAt    time.Time         `json:"createdAt"`
	Creator      string            `json:"creator,omitempty"`
	Submission   *model.Submission `json:"submission"`
}

// Reviewer runs the moderation pipeline against a ticket store and a
// content store. DatasetPath locates the published dataset document.
type Reviewer struct {
	Tickets     store.TicketStore
	Content     store.ContentStore
	DatasetPath string
}

// Submit opens a review ticket for an already-validated submission.
func (rv *Reviewer) Submit(ctx context.Context, sub model.Submission) (store.CreatedTicket, error) {
	body, err := codec.Encode(sub)
	if err != nil {
		return store.CreatedTicket{}, err
	}

	return rv.Tickets.CreateTicket(ctx, titlePrefix+sub.Title, body, []string{SubmissionLabel})
}

// ListPending returns the open submission tickets, one page's worth.
func (rv *Reviewer) ListPending(ctx context.Context) ([]PendingSubmission, error) {
	tickets, err := rv.Tickets.ListTickets(ctx, SubmissionLabel, store.TicketOpen)
	if err != nil {
		return nil, err
	}

	pending := []PendingSubmission{}
	for _, t := range tickets {
		pending = append(pending, PendingSubmission{
			TicketNumber: t.Number,
			TicketURL:    t.URL,
			Title:        strings.TrimPrefix(t.Title, titlePrefix),
			CreatedAt:    t.CreatedAt,
			Creator:      t.Creator,
			Submission:   codec.Decode(t.Body),
		})
	}
	return pending, nil
}

// Approve publishes the submission held in the given ticket: it decodes
// the ticket body, appends the record to the dataset, writes the
// dataset back under its read revision, then closes the ticket with the
// approved label and an audit comment.
//
// A concurrent dataset write surfaces as store.ErrRevisionConflict and
// aborts the approval before any ticket mutation; the operator retries
// the whole operation. A ticket transition failing after the dataset
// write surfaces as *PartialError.
func (rv *Reviewer) Approve(ctx context.Context, ticketNumber int) error {
	ticket, err := rv.Tickets.GetTicket(ctx, ticketNumber)
	if err != nil {
		return err
	}
	if ticket.State != store.TicketOpen {
		return fmt.Errorf("ticket %d: %w", ticketNumber, ErrTicketClosed)
	}

	sub := codec.Decode(ticket.Body)
	if sub == nil {
		return fmt.Errorf("ticket %d: %w", ticketNumber, ErrUnparseableSubmission)
	}

	jams, revision, err := rv.readDataset(ctx)
	if err != nil {
		return err
	}

	jams = append(jams, publishedRecord(*sub, ticket))

	data, err := json.MarshalIndent(jams, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := rv.Content.WriteDocument(ctx, rv.DatasetPath, data, revision); err != nil {
		return err
	}

	// The record is published past this point. Ticket transition
	// failures leave an open-but-approved ticket for manual cleanup.
	err = rv.Tickets.UpdateTicketState(ctx, ticketNumber, store.TicketClosed, []string{SubmissionLabel, ApprovedLabel})
	if err != nil {
		return &PartialError{TicketNumber: ticketNumber, Step: "closing", Err: err}
	}
	err = rv.Tickets.CommentOnTicket(ctx, ticketNumber, approvedComment)
	if err != nil {
		return &PartialError{TicketNumber: ticketNumber, Step: "commenting", Err: err}
	}

	return nil
}

// Reject closes the ticket with the rejected label and an audit
// comment. The dataset is never touched.
func (rv *Reviewer) Reject(ctx context.Context, ticketNumber int) error {
	ticket, err := rv.Tickets.GetTicket(ctx, ticketNumber)
	if err != nil {
		return err
	}
	if ticket.State != store.TicketOpen {
		return fmt.Errorf("ticket %d: %w", ticketNumber, ErrTicketClosed)
	}

	err = rv.Tickets.UpdateTicketState(ctx, ticketNumber, store.TicketClosed, []string{SubmissionLabel, RejectedLabel})
	if err != nil {
		return err
	}
	return rv.Tickets.CommentOnTicket(ctx, ticketNumber, rejectedComment)
}

// ListPublished returns the published dataset in stored order. A
// missing dataset document is an empty board, not an error.
func (rv *Reviewer) ListPublished(ctx context.Context) ([]model.GameJam, error) {
	jams, _, err := rv.readDataset(ctx)
	return jams, err
}

func (rv *Reviewer) readDataset(ctx context.Context) ([]model.GameJam, string, error) {
	doc, err := rv.Content.ReadDocument(ctx, rv.DatasetPath)
	if errors.Is(err, store.ErrDocumentMissing) {
		return []model.GameJam{}, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	jams := []model.GameJam{}
	if err := json.Unmarshal(doc.Content, &jams); err != nil {
		return nil, "", fmt.Errorf("decoding dataset %s: %w", rv.DatasetPath, err)
	}
	return jams, doc.Revision, nil
}

func publishedRecord(sub model.Submission, ticket store.Ticket) model.GameJam {
	return model.GameJam{
		ID:                      fmt.Sprintf("ticket-%d", ticket.Number),
		Title:                   sub.Title,
		Description:             sub.Description,
		StartDate:               sub.StartDate,
		EndDate:                 sub.EndDate,
		Organizer:               sub.Organizer,
		ImageURL:                sub.ImageURL,
		Theme:                   sub.Theme,
		Information:             sub.Information,
		Website:                 sub.Website,
		TicketNumber:            ticket.Number,
		TicketURL:               ticket.URL,
		TicketCreator:           ticket.Creator,
		TicketCreatedAt:         ticket.CreatedAt,
		ParticipantLimit:        sub.ParticipantLimit,
		ParticipantLimitDetails: sub.ParticipantLimitDetails,
	}
}
