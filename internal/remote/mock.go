package remote

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/harrison/verifier/internal/fixture"
	"github.com/harrison/verifier/internal/models"
)

// MockClient answers from a fixture set without touching the network.
// The fixture is chosen by the leading segment of the path:
//
//	contents/<file>        analysis document, base64 encoded
//	commits/<sha>          commit detail
//	issues?<query>         issue listing page (page, per_page honoured)
//	issues/<number>        single issue
//
// Every other path is not found.
type MockClient struct {
	set *fixture.Set
}

// NewMockClient creates a mock client over set.
func NewMockClient(set *fixture.Set) *MockClient {
	return &MockClient{set: set}
}

// Fetch implements Fetcher. Credentials are ignored.
func (m *MockClient) Fetch(ctx context.Context, _ models.Credentials, path string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.WrapFault(models.FaultTransport, err, "calling fixture for %s", path)
	}

	switch {
	case strings.HasPrefix(path, "contents/"):
		file := strings.TrimPrefix(path, "contents/")
		if i := strings.IndexByte(file, '?'); i >= 0 {
			file = file[:i]
		}
		return m.set.Contents(file), nil

	case strings.HasPrefix(path, "commits/"):
		if body, ok := m.set.Commit(strings.TrimPrefix(path, "commits/")); ok {
			return body, nil
		}

	case strings.HasPrefix(path, "issues?"):
		q, err := url.ParseQuery(strings.TrimPrefix(path, "issues?"))
		if err != nil {
			return nil, models.WrapFault(models.FaultTransport, err, "invalid listing query %s", path)
		}
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))
		return m.set.IssuePage(page, perPage), nil

	case strings.HasPrefix(path, "issues/"):
		n, err := strconv.Atoi(strings.TrimPrefix(path, "issues/"))
		if err == nil {
			if body, ok := m.set.Issue(n); ok {
				return body, nil
			}
		}
	}

	return nil, models.NewFault(models.FaultNotFound, "%s not found", path)
}
