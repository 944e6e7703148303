// Package remote is the single access point to the hosted repository.
//
// Every validator talks to a Fetcher. Two implementations exist: HTTPClient
// performs one GET against the REST API per call, MockClient answers from
// the offline fixture set. Both return the response body as raw JSON and
// report failures as *models.Fault, so callers cannot tell them apart.
package remote

//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks Fetcher

import (
	"context"
	"encoding/json"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/fixture"
	"github.com/harrison/verifier/internal/models"
)

// Fetcher retrieves one repository resource by its path relative to
// /repos/<owner>/<repo>/. A nil error means the body is the decoded-JSON
// payload; a NotFound fault means the resource does not exist; anything else
// is a Transport fault. Implementations never retry.
type Fetcher interface {
	Fetch(ctx context.Context, creds models.Credentials, path string) (json.RawMessage, error)
}

// New selects the implementation for the run: the bundled fixtures when
// offline, the live API otherwise.
func New(cfg *config.Config, offline bool) (Fetcher, error) {
	if offline {
		return NewMockClient(fixture.Sample()), nil
	}
	return NewHTTPClient(cfg.Remote)
}
