package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/openjams/jamboard/app"
	"github.com/openjams/jamboard/httpx"
	"github.com/openjams/jamboard/log"
	"github.com/openjams/jamboard/model"
)

// ListGameJams serves the published board. Without a status query
// parameter the response carries the whole dataset plus the three
// lifecycle groups; with ?status= it carries the filtered list only.
// If the remote store cannot be reached the listing degrades to an
// empty board rather than failing the page.
func ListGameJams(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jams, err := app.Reviewer.ListPublished(r.Context())
		if err != nil {
			log.Errorf("gamejams.list: %s", err)
			jams = []model.GameJam{}
		}

		// one clock for the whole batch
		now := time.Now()

		if status := r.URL.Query().Get("status"); status != "" {
			s := model.Status(status)
			if s != model.StatusUpcoming && s != model.StatusOngoing && s != model.StatusCompleted {
				httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.status")
				return
			}
			render.JSON(w, r, map[string]any{
				"gamejams": model.FilterByStatus(jams, s, now),
			})
			return
		}

		render.JSON(w, r, map[string]any{
			"gamejams":    jams,
			"categorized": model.GroupByStatus(jams, now),
		})
	}
}

// SubmitGameJam validates a submission and opens a review ticket for
// it. Validation failures report per-field messages; remote failures
// are always surfaced, never masked.
func SubmitGameJam(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission := model.Submission{}
		err := render.DecodeJSON(r.Body, &submission)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if errs := submission.Validate(); errs != nil {
			log.Debugf("gamejams.submit.validate: %v", errs)
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, map[string]any{"errors": errs})
			return
		}

		created, err := app.Reviewer.Submit(r.Context(), submission)
		if err != nil {
			httpx.LogInternalError(w, "gamejams.submit", err)
			return
		}

		log.Infof("gamejams.submit: ticket %d created", created.Number)
		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, created)
	}
}
