package model

import "time"

// ParticipantLimit is the closed set of participation restrictions a
// GameJam can declare.
type ParticipantLimit string

const (
	NoLimit       ParticipantLimit = "noLimit"
	StudentsOnly  ParticipantLimit = "studentsOnly"
	AgeRestricted ParticipantLimit = "ageRestricted"
	OtherLimit    ParticipantLimit = "other"
)

// Submission is the user-provided GameJam data, pre-moderation. It is
// what the submission form posts and what gets embedded in the review
// ticket body.
type Submission struct {
	Title                   string           `json:"title" validate:"required,min=3"`
	Description             string           `json:"description" validate:"required,min=10"`
	StartDate               time.Time        `json:"startDate" validate:"required"`
	EndDate                 time.Time        `json:"endDate" validate:"required,gtfield=StartDate"`
	Organizer               string           `json:"organizer" validate:"required,min=2"`
	ImageURL                string           `json:"imageUrl" validate:"required,http_url"`
	Theme                   string           `json:"theme,omitempty"`
	Information             string           `json:"information,omitempty"`
	Website                 string           `json:"website,omitempty" validate:"omitempty,http_url"`
	ParticipantLimit        ParticipantLimit `json:"participantLimit" validate:"required,oneof=noLimit studentsOnly ageRestricted other"`
	ParticipantLimitDetails string           `json:"participantLimitDetails,omitempty" validate:"required_if=ParticipantLimit other"`
}

// GameJam is a published record in the dataset: a Submission plus the
// assigned id and the metadata of the ticket it was approved from.
type GameJam struct {
	ID                      string           `json:"id"`
	Title                   string           `json:"title"`
	Description             string           `json:"description"`
	StartDate               time.Time        `json:"startDate"`
	EndDate                 time.Time        `json:"endDate"`
	Organizer               string           `json:"organizer"`
	ImageURL                string           `json:"imageUrl"`
	Theme                   string           `json:"theme,omitempty"`
	Information             string           `json:"information"`
	Website                 string           `json:"website,omitempty"`
	TicketNumber            int              `json:"ticketNumber"`
	TicketURL               string           `json:"ticketUrl,omitempty"`
	TicketCreator           string           `json:"ticketCreator,omitempty"`
	TicketCreatedAt         time.Time        `json:"ticketCreatedAt"`
	ParticipantLimit        ParticipantLimit `json:"participantLimit"`
	ParticipantLimitDetails string           `json:"participantLimitDetails,omitempty"`
}
