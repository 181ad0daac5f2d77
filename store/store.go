// Package store defines the two remote surfaces the board runs on: a
// ticket API used as the moderation queue, and a content API holding
// the published dataset as a single JSON document. The concrete GitHub
// implementation lives in store/github; any durable queue/store pair
// could be substituted behind these interfaces.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrRemoteUnavailable covers transport, auth and rate-limit
	// failures from either remote surface.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrNotFound is returned when a referenced ticket does not exist.
	ErrNotFound = errors.New("ticket not found")

	// ErrDocumentMissing is returned when the dataset document does not
	// exist yet. Callers treat it as an empty dataset, not as a fault.
	ErrDocumentMissing = errors.New("document missing")

	// ErrRevisionConflict is returned when a conditional write loses
	// the race against a concurrent writer.
	ErrRevisionConflict = errors.New("document revision conflict")
)

type TicketState string

const (
	TicketOpen   TicketState = "open"
	TicketClosed TicketState = "closed"
)

type Ticket struct {
	Number    int
	Title     string
	Body      string
	URL       string
	Creator   string
	CreatedAt time.Time
	Labels    []string
	State     TicketState
}

// CreatedTicket identifies a freshly created ticket.
type CreatedTicket struct {
	Number int    `json:"ticketNumber"`
	URL    string `json:"ticketUrl"`
}

type TicketStore interface {
	CreateTicket(ctx context.Context, title, body string, labels []string) (CreatedTicket, error)
	ListTickets(ctx context.Context, label string, state TicketState) ([]Ticket, error)
	GetTicket(ctx context.Context, number int) (Ticket, error)
	UpdateTicketState(ctx context.Context, number int, state TicketState, labels []string) error
	CommentOnTicket(ctx context.Context, number int, body string) error
}

// Document is a versioned blob read from the content store. Revision
// is the opaque token a subsequent conditional write must present.
type Document struct {
	Content  []byte
	Revision string
}

type ContentStore interface {
	ReadDocument(ctx context.Context, path string) (Document, error)

	// WriteDocument replaces the document at path. An empty revision
	// creates the document; a stale revision fails with
	// ErrRevisionConflict.
	WriteDocument(ctx context.Context, path string, content []byte, revision string) error
}
