// Package github implements the board's ticket and content surfaces on
// the GitHub REST API: issues double as the moderation queue, and a
// JSON file in the repository holds the published dataset. The file's
// blob SHA is the revision token for conditional writes.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openjams/jamboard/store"
)

const defaultBaseURL = "https://api.github.com"

// listPageSize bounds ListTickets to a single page of results.
const listPageSize = 100

type Client struct {
	// BaseURL may be overridden for tests; it defaults to the public
	// GitHub API.
	BaseURL string

	owner string
	repo  string
	token string
	http  *http.Client
}

func NewClient(owner, repo, token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		owner:   owner,
		repo:    repo,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

var _ store.TicketStore = (*Client)(nil)
var _ store.ContentStore = (*Client)(nil)

func (c *Client) CreateTicket(ctx context.Context, title, body string, labels []string) (store.CreatedTicket, error) {
	var issue ghIssue
	err := c.do(ctx, http.MethodPost, c.repoPath("issues"), ghCreateIssue{
		Title:  title,
		Body:   body,
		Labels: labels,
	}, &issue)
	if err != nil {
		return store.CreatedTicket{}, fmt.Errorf("create ticket: %w", err)
	}

	return store.CreatedTicket{Number: issue.Number, URL: issue.HTMLURL}, nil
}

func (c *Client) ListTickets(ctx context.Context, label string, state store.TicketState) ([]store.Ticket, error) {
	query := url.Values{
		"labels":   {label},
		"state":    {string(state)},
		"per_page": {fmt.Sprint(listPageSize)},
	}

	var issues []ghIssue
	err := c.do(ctx, http.MethodGet, c.repoPath("issues")+"?"+query.Encode(), nil, &issues)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	tickets := []store.Ticket{}
	for _, issue := range issues {
		if issue.PullRequest != nil {
			continue
		}
		tickets = append(tickets, issueToTicket(issue))
	}
	return tickets, nil
}

func (c *Client) GetTicket(ctx context.Context, number int) (store.Ticket, error) {
	var issue ghIssue
	err := c.do(ctx, http.MethodGet, c.repoPath("issues", number), nil, &issue)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return store.Ticket{}, fmt.Errorf("get ticket %d: %w", number, store.ErrNotFound)
		}
		return store.Ticket{}, fmt.Errorf("get ticket %d: %w", number, err)
	}

	return issueToTicket(issue), nil
}

func (c *Client) UpdateTicketState(ctx context.Context, number int, state store.TicketState, labels []string) error {
	err := c.do(ctx, http.MethodPatch, c.repoPath("issues", number), ghUpdateIssue{
		State:  string(state),
		Labels: labels,
	}, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return fmt.Errorf("update ticket %d: %w", number, store.ErrNotFound)
		}
		return fmt.Errorf("update ticket %d: %w", number, err)
	}
	return nil
}

func (c *Client) CommentOnTicket(ctx context.Context, number int, body string) error {
	err := c.do(ctx, http.MethodPost, c.repoPath("issues", number, "comments"), ghComment{Body: body}, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return fmt.Errorf("comment on ticket %d: %w", number, store.ErrNotFound)
		}
		return fmt.Errorf("comment on ticket %d: %w", number, err)
	}
	return nil
}

func (c *Client) ReadDocument(ctx context.Context, path string) (store.Document, error) {
	var content ghContent
	err := c.do(ctx, http.MethodGet, c.repoPath("contents", path), nil, &content)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return store.Document{}, fmt.Errorf("read %s: %w", path, store.ErrDocumentMissing)
		}
		return store.Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	// the contents API wraps base64 at 60 columns
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content.Content, "\n", ""))
	if err != nil {
		return store.Document{}, fmt.Errorf("read %s: decoding content: %w", path, err)
	}

	return store.Document{Content: raw, Revision: content.SHA}, nil
}

func (c *Client) WriteDocument(ctx context.Context, path string, content []byte, revision string) error {
	message := "Update GameJam dataset"
	if revision == "" {
		message = "Create GameJam dataset"
	}

	err := c.do(ctx, http.MethodPut, c.repoPath("contents", path), ghWriteContent{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     revision,
	}, nil)
	if err != nil {
		// the contents API reports a stale or missing sha as 409 or 422
		if isStatus(err, http.StatusConflict) || isStatus(err, http.StatusUnprocessableEntity) {
			return fmt.Errorf("write %s: %w", path, store.ErrRevisionConflict)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func issueToTicket(issue ghIssue) store.Ticket {
	t := store.Ticket{
		Number: issue.Number,
		Title:  issue.Title,
		Body:   issue.Body,
		URL:    issue.HTMLURL,
		State:  store.TicketState(issue.State),
		Labels: make([]string, 0, len(issue.Labels)),
	}
	for _, l := range issue.Labels {
		t.Labels = append(t.Labels, l.Name)
	}
	if issue.User != nil {
		t.Creator = issue.User.Login
	}
	if created, err := time.Parse(time.RFC3339, issue.CreatedAt); err == nil {
		t.CreatedAt = created
	}
	return t
}

func (c *Client) repoPath(parts ...any) string {
	path := fmt.Sprintf("/repos/%s/%s", c.owner, c.repo)
	for _, p := range parts {
		path += fmt.Sprintf("/%v", p)
	}
	return path
}

// statusError carries a non-2xx API response so callers can translate
// specific statuses into store error kinds. Everything not translated
// collapses into ErrRemoteUnavailable.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("github: status %d: %s", e.status, e.body)
}

func (e *statusError) Is(target error) bool {
	return target == store.ErrRemoteUnavailable
}

func isStatus(err error, status int) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	return se.status == status
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(detail))}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
