package app

import (
	"database/sql"

	"github.com/go-chi/oauth"
	"github.com/openjams/jamboard/config"
	"github.com/openjams/jamboard/workflow"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Reviewer *workflow.Reviewer
}
