// Package codec renders a GameJam submission into a review ticket body
// and extracts it back out. The body carries two views of the same
// data: a human-readable markdown section for the moderator, and a
// fenced ```json block for the approval workflow. The machine block is
// authoritative; the markdown is presentation only.
package codec

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/openjams/jamboard/model"
)

var machineBlock = regexp.MustCompile("(?s)```json\\s*\n(.*?)\n```")

var limitText = map[model.ParticipantLimit]string{
	model.NoLimit:       "Open to everyone",
	model.StudentsOnly:  "Students only",
	model.AgeRestricted: "Age restricted",
	model.OtherLimit:    "Other restriction",
}

// Encode renders the submission as a ticket body. Decode(Encode(s))
// returns s for every valid submission.
func Encode(sub model.Submission) (string, error) {
	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding submission: %w", err)
	}

	var b strings.Builder
	b.WriteString("## GameJam Submission\n\n")
	b.WriteString("### Basic information\n\n")
	writeField(&b, "Title", sub.Title)
	writeField(&b, "Description", sub.Description)
	writeField(&b, "Start date", sub.StartDate.Format("2006-01-02 15:04 MST"))
	writeField(&b, "End date", sub.EndDate.Format("2006-01-02 15:04 MST"))
	writeField(&b, "Organizer", sub.Organizer)
	writeField(&b, "Cover image", sub.ImageURL)
	writeField(&b, "Theme", orNone(sub.Theme))
	writeField(&b, "Website", orNone(sub.Website))
	writeField(&b, "Participant limit", limitText[sub.ParticipantLimit])
	if sub.ParticipantLimitDetails != "" {
		writeField(&b, "Limit details", sub.ParticipantLimitDetails)
	}

	b.WriteString("\n### Details\n\n```\n")
	b.WriteString(orNone(sub.Information))
	b.WriteString("\n```\n\n")

	b.WriteString("<!-- Machine-readable submission data. Do not edit. -->\n")
	b.WriteString("```json\n")
	b.Write(data)
	b.WriteString("\n```\n")

	return b.String(), nil
}

// Decode extracts the submission embedded in a ticket body. It returns
// nil when the body has no fenced json block or the block does not
// parse; callers surface that to an operator instead of failing hard.
// Encode always writes the machine block last, after any user-supplied
// text, so the last fence in the body is the authoritative one.
func Decode(body string) *model.Submission {
	matches := machineBlock.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	var sub model.Submission
	if err := json.Unmarshal([]byte(matches[len(matches)-1][1]), &sub); err != nil {
		return nil
	}
	return &sub
}

func writeField(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "- **%s**: %s\n", name, value)
}

func orNone(value string) string {
	if value == "" {
		return "none"
	}
	return value
}
