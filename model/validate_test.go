package model

import (
	"testing"
	"time"
)

func validSubmission() Submission {
	return Submission{
		Title:            "Test Jam",
		Description:      "A weekend game jam for testing.",
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		Organizer:        "Org",
		ImageURL:         "https://x/y.png",
		ParticipantLimit: NoLimit,
	}
}

func TestValidateAcceptsValidSubmission(t *testing.T) {
	if errs := validSubmission().Validate(); errs != nil {
		t.Errorf("valid submission rejected: %v", errs)
	}
}

func TestValidateRejectsBadSubmissions(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
	}{
		{"short title", func(s *Submission) { s.Title = "ab" }, "title"},
		{"short description", func(s *Submission) { s.Description = "too short" }, "description"},
		{"end before start", func(s *Submission) { s.EndDate = s.StartDate.Add(-time.Hour) }, "endDate"},
		{"end equals start", func(s *Submission) { s.EndDate = s.StartDate }, "endDate"},
		{"missing organizer", func(s *Submission) { s.Organizer = "" }, "organizer"},
		{"bad image url", func(s *Submission) { s.ImageURL = "ftp://x/y.png" }, "imageUrl"},
		{"bad website", func(s *Submission) { s.Website = "not a url" }, "website"},
		{"unknown limit", func(s *Submission) { s.ParticipantLimit = "whatever" }, "participantLimit"},
		{"other without details", func(s *Submission) { s.ParticipantLimit = OtherLimit }, "participantLimitDetails"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)

			errs := s.Validate()
			if errs == nil {
				t.Fatal("submission accepted, want a validation error")
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("no error reported for field %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateOtherLimitWithDetails(t *testing.T) {
	s := validSubmission()
	s.ParticipantLimit = OtherLimit
	s.ParticipantLimitDetails = "Teams of 4 or fewer."

	if errs := s.Validate(); errs != nil {
		t.Errorf("submission rejected: %v", errs)
	}
}
