package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openjams/jamboard/app"
	"github.com/openjams/jamboard/codec"
	"github.com/openjams/jamboard/model"
	"github.com/openjams/jamboard/store"
	"github.com/openjams/jamboard/workflow"
)

// stubTickets serves one fixed ticket and fails selected operations.
type stubTickets struct {
	ticket    store.Ticket
	updateErr error
}

func (st *stubTickets) CreateTicket(context.Context, string, string, []string) (store.CreatedTicket, error) {
	return store.CreatedTicket{Number: 1, URL: "https://tickets.test/1"}, nil
}

func (st *stubTickets) ListTickets(context.Context, string, store.TicketState) ([]store.Ticket, error) {
	return []store.Ticket{st.ticket}, nil
}

func (st *stubTickets) GetTicket(_ context.Context, number int) (store.Ticket, error) {
	if number != st.ticket.Number {
		return store.Ticket{}, store.ErrNotFound
	}
	return st.ticket, nil
}

func (st *stubTickets) UpdateTicketState(context.Context, int, store.TicketState, []string) error {
	return st.updateErr
}

func (st *stubTickets) CommentOnTicket(context.Context, int, string) error {
	return nil
}

// stubContent returns a fixed dataset or a fixed error, and can fail
// writes with a specific error.
type stubContent struct {
	doc      store.Document
	readErr  error
	writeErr error
}

func (sc *stubContent) ReadDocument(context.Context, string) (store.Document, error) {
	if sc.readErr != nil {
		return store.Document{}, sc.readErr
	}
	return sc.doc, nil
}

func (sc *stubContent) WriteDocument(context.Context, string, []byte, string) error {
	return sc.writeErr
}

func testApp(tickets store.TicketStore, content store.ContentStore) app.App {
	return app.App{
		Reviewer: &workflow.Reviewer{
			Tickets:     tickets,
			Content:     content,
			DatasetPath: "data/gamejams.json",
		},
	}
}

func submissionTicket(t *testing.T) store.Ticket {
	t.Helper()
	body, err := codec.Encode(model.Submission{
		Title:            "Test Jam",
		Description:      "A weekend game jam.",
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		Organizer:        "Org",
		ImageURL:         "https://x/y.png",
		ParticipantLimit: model.NoLimit,
	})
	if err != nil {
		t.Fatal(err)
	}
	return store.Ticket{
		Number: 1,
		Title:  "GameJam submission: Test Jam",
		Body:   body,
		State:  store.TicketOpen,
		Labels: []string{workflow.SubmissionLabel},
	}
}

func TestListGameJamsDegradesToEmptyBoard(t *testing.T) {
	a := testApp(&stubTickets{}, &stubContent{readErr: fmt.Errorf("read: %w", store.ErrRemoteUnavailable)})

	rec := httptest.NewRecorder()
	ListGameJams(a)(rec, httptest.NewRequest("GET", "/api/gamejams", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the remote is down", rec.Code)
	}
	var resp struct {
		GameJams    []model.GameJam            `json:"gamejams"`
		Categorized map[string][]model.GameJam `json:"categorized"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.GameJams) != 0 {
		t.Errorf("gamejams = %v, want empty", resp.GameJams)
	}
	for _, bucket := range []string{"upcoming", "ongoing", "completed"} {
		if _, ok := resp.Categorized[bucket]; !ok {
			t.Errorf("categorized missing %q bucket", bucket)
		}
	}
}

func TestListGameJamsStatusFilter(t *testing.T) {
	dataset := []model.GameJam{
		{ID: "ticket-1", StartDate: time.Now().Add(24 * time.Hour), EndDate: time.Now().Add(48 * time.Hour)},
		{ID: "ticket-2", StartDate: time.Now().Add(-48 * time.Hour), EndDate: time.Now().Add(-24 * time.Hour)},
	}
	data, _ := json.Marshal(dataset)
	a := testApp(&stubTickets{}, &stubContent{doc: store.Document{Content: data, Revision: "r1"}})

	rec := httptest.NewRecorder()
	ListGameJams(a)(rec, httptest.NewRequest("GET", "/api/gamejams?status=upcoming", nil))

	var resp struct {
		GameJams []model.GameJam `json:"gamejams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.GameJams) != 1 || resp.GameJams[0].ID != "ticket-1" {
		t.Errorf("gamejams = %+v, want only ticket-1", resp.GameJams)
	}

	rec = httptest.NewRecorder()
	ListGameJams(a)(rec, httptest.NewRequest("GET", "/api/gamejams?status=bogus", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for unknown filter, want 400", rec.Code)
	}
}

func TestSubmitGameJamValidation(t *testing.T) {
	a := testApp(&stubTickets{}, &stubContent{})

	body := `{"title":"ab","description":"short","participantLimit":"noLimit"}`
	rec := httptest.NewRecorder()
	SubmitGameJam(a)(rec, httptest.NewRequest("POST", "/api/gamejams/submissions", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	for _, field := range []string{"title", "description", "startDate", "imageUrl"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("no error reported for %q: %v", field, resp.Errors)
		}
	}
}

func TestSubmitGameJamCreatesTicket(t *testing.T) {
	a := testApp(&stubTickets{}, &stubContent{})

	body := `{
		"title": "Test Jam",
		"description": "A weekend game jam.",
		"startDate": "2025-01-01T00:00:00Z",
		"endDate": "2025-01-03T00:00:00Z",
		"organizer": "Org",
		"imageUrl": "https://x/y.png",
		"participantLimit": "noLimit"
	}`
	rec := httptest.NewRecorder()
	SubmitGameJam(a)(rec, httptest.NewRequest("POST", "/api/gamejams/submissions", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var created store.CreatedTicket
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if created.Number != 1 || created.URL == "" {
		t.Errorf("created = %+v", created)
	}
}

func TestReviewSubmissionStatusMapping(t *testing.T) {
	okTicket := submissionTicket(t)
	closedTicket := submissionTicket(t)
	closedTicket.State = store.TicketClosed
	emptyDataset := store.Document{Content: []byte(`[]`), Revision: "r1"}

	tests := []struct {
		name       string
		tickets    *stubTickets
		content    *stubContent
		body       string
		wantStatus int
	}{
		{
			"approve succeeds",
			&stubTickets{ticket: okTicket},
			&stubContent{doc: emptyDataset},
			`{"ticketNumber":1,"decision":"approve"}`,
			http.StatusOK,
		},
		{
			"unknown ticket",
			&stubTickets{ticket: okTicket},
			&stubContent{doc: emptyDataset},
			`{"ticketNumber":999,"decision":"approve"}`,
			http.StatusNotFound,
		},
		{
			"unparseable body",
			&stubTickets{ticket: store.Ticket{Number: 1, Body: "mangled", State: store.TicketOpen}},
			&stubContent{doc: emptyDataset},
			`{"ticketNumber":1,"decision":"approve"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"revision conflict",
			&stubTickets{ticket: okTicket},
			&stubContent{doc: emptyDataset, writeErr: fmt.Errorf("write: %w", store.ErrRevisionConflict)},
			`{"ticketNumber":1,"decision":"approve"}`,
			http.StatusConflict,
		},
		{
			"already closed",
			&stubTickets{ticket: closedTicket},
			&stubContent{doc: emptyDataset},
			`{"ticketNumber":1,"decision":"approve"}`,
			http.StatusConflict,
		},
		{
			"partial success",
			&stubTickets{ticket: okTicket, updateErr: fmt.Errorf("update: %w", store.ErrRemoteUnavailable)},
			&stubContent{doc: emptyDataset},
			`{"ticketNumber":1,"decision":"approve"}`,
			http.StatusBadGateway,
		},
		{
			"bad decision",
			&stubTickets{ticket: okTicket},
			&stubContent{doc: emptyDataset},
			`{"ticketNumber":1,"decision":"maybe"}`,
			http.StatusBadRequest,
		},
		{
			"reject succeeds",
			&stubTickets{ticket: okTicket},
			&stubContent{doc: emptyDataset},
			`{"ticketNumber":1,"decision":"reject"}`,
			http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApp(tt.tickets, tt.content)

			rec := httptest.NewRecorder()
			ReviewSubmission(a)(rec, httptest.NewRequest("POST", "/api/admin/review", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body)
			}
		})
	}
}

func TestListPendingSubmissions(t *testing.T) {
	a := testApp(&stubTickets{ticket: submissionTicket(t)}, &stubContent{})

	rec := httptest.NewRecorder()
	ListPendingSubmissions(a)(rec, httptest.NewRequest("GET", "/api/admin/submissions", nil))

	var resp struct {
		Submissions []workflow.PendingSubmission `json:"submissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.Submissions) != 1 {
		t.Fatalf("submissions = %+v, want 1", resp.Submissions)
	}
	got := resp.Submissions[0]
	if got.Title != "Test Jam" {
		t.Errorf("title = %q, want prefix stripped", got.Title)
	}
	if got.Submission == nil || got.Submission.Organizer != "Org" {
		t.Errorf("submission = %+v, want decoded", got.Submission)
	}
}
