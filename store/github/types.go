package github

// Minimal GitHub REST payload structs. Only the fields the board needs
// are modelled; the API returns far more. JSON field names match the
// GitHub REST v3 documentation.

type ghUser struct {
	Login string `json:"login"`
}

type ghLabel struct {
	Name string `json:"name"`
}

type ghIssue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	User      *ghUser   `json:"user"`
	Labels    []ghLabel `json:"labels"`
	State     string    `json:"state"` // "open" or "closed"
	CreatedAt string    `json:"created_at"`

	// Present on list responses; issues with this set are pull
	// requests and are not tickets.
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

type ghCreateIssue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

type ghUpdateIssue struct {
	State  string   `json:"state"`
	Labels []string `json:"labels"`
}

type ghComment struct {
	Body string `json:"body"`
}

type ghContent struct {
	Content string `json:"content"` // base64, possibly with embedded newlines
	SHA     string `json:"sha"`
}

type ghWriteContent struct {
	Message string `json:"message"`
	Content string `json:"content"` // base64
	SHA     string `json:"sha,omitempty"`
}
