package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DBUrl       string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool

	// Remote store settings. The board's published data and its
	// moderation queue both live in a GitHub repository.
	GitHubToken string
	RepoOwner   string
	RepoName    string
	DatasetPath string
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.DBUrl, "db-url", "jamboard.sqlite", "path to SQLite3 DB file (default jamboard.sqlite)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", os.Getenv("TOKEN_SECRET"), "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", 120, "token TTL in seconds (default 120)")
	flag.StringVar(&cfg.RepoOwner, "repo-owner", os.Getenv("GITHUB_REPO_OWNER"), "owner of the GitHub repository backing the board")
	flag.StringVar(&cfg.RepoName, "repo-name", os.Getenv("GITHUB_REPO_NAME"), "name of the GitHub repository backing the board")
	flag.StringVar(&cfg.DatasetPath, "dataset-path", "data/gamejams.json", "path of the published dataset file in the repository")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")

	switch {
	case cfg.TokenSecret == "":
		err = errors.New("missing parameter -token-secret")
	case cfg.RepoOwner == "":
		err = errors.New("missing parameter -repo-owner")
	case cfg.RepoName == "":
		err = errors.New("missing parameter -repo-name")
	case cfg.GitHubToken == "":
		err = errors.New("missing environment variable GITHUB_TOKEN")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
