package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/openjams/jamboard/app"
	"github.com/openjams/jamboard/httpx"
	"github.com/openjams/jamboard/log"
	"github.com/openjams/jamboard/store"
	"github.com/openjams/jamboard/workflow"
)

// ListPendingSubmissions serves the moderation queue. Like the public
// listing, a remote failure degrades to an empty queue.
func ListPendingSubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := app.Reviewer.ListPending(r.Context())
		if err != nil {
			log.Errorf("admin.pending.list: %s", err)
			pending = []workflow.PendingSubmission{}
		}

		render.JSON(w, r, map[string]any{
			"submissions": pending,
		})
	}
}

type reviewRequest struct {
	TicketNumber int    `json:"ticketNumber"`
	Decision     string `json:"decision"` // "approve" or "reject"
}

// ReviewSubmission applies an admin decision to a pending ticket. Every
// failure mode gets its own status so the operator knows what to do:
// 404 unknown ticket, 409 the ticket is already closed or the dataset
// write race was lost (retry an open ticket's approval), 422
// undecodable ticket body (fix by hand), 502 record published but
// ticket stuck open (close by hand).
func ReviewSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := reviewRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil || req.TicketNumber == 0 {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		switch req.Decision {
		case "approve":
			err = app.Reviewer.Approve(r.Context(), req.TicketNumber)
		case "reject":
			err = app.Reviewer.Reject(r.Context(), req.TicketNumber)
		default:
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "admin.review.decision")
			return
		}

		var partial *workflow.PartialError
		switch {
		case err == nil:
			log.Infof("admin.review: ticket %d %sd", req.TicketNumber, req.Decision)
			render.JSON(w, r, map[string]any{"success": true})

		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "admin.review", req.TicketNumber)

		case errors.Is(err, workflow.ErrTicketClosed):
			httpx.LogStatusMsg(w, http.StatusConflict, log.WarnLevel, "admin.review.closed",
				"ticket %d is already closed; the decision was not applied", req.TicketNumber)

		case errors.Is(err, workflow.ErrUnparseableSubmission):
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.WarnLevel, "admin.review.decode",
				"ticket %d has no decodable submission; handle it manually", req.TicketNumber)

		case errors.Is(err, store.ErrRevisionConflict):
			httpx.LogStatusMsg(w, http.StatusConflict, log.WarnLevel, "admin.review.conflict",
				"a concurrent update won the dataset write; retry the approval")

		case errors.As(err, &partial):
			log.Errorf("admin.review.partial: %s", partial)
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, map[string]any{
				"error":        "partial",
				"message":      partial.Error(),
				"ticketNumber": partial.TicketNumber,
			})

		default:
			httpx.LogInternalError(w, "admin.review", err)
		}
	}
}
