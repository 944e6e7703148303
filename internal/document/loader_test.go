package document

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/models"
	"github.com/harrison/verifier/internal/remote/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sampleDoc = `{
  "target_commit_sha": "0f4b0c1e2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d",
  "commit_author": "example-author",
  "commit_date": "2025-09-10",
  "parameter_changes": {"p": {"before": 4, "after": 2, "line_number": 120}},
  "related_issue_number_list": [101]
}`

var creds = models.Credentials{Token: "t", Owner: "o", Repo: "r"}

func contentsBody(t *testing.T, content string) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(models.ContentsResponse{Path: "analysis_results.json", Encoding: "base64", Content: content})
	require.NoError(t, err)
	return data
}

func target() config.AnalysisConfig {
	return config.AnalysisConfig{FilePath: "analysis_results.json", Format: FormatJSON}
}

func TestLoader_Load(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(sampleDoc))
	wrapped := make([]string, 0, len(encoded)/60+1)
	for len(encoded) > 60 {
		wrapped = append(wrapped, encoded[:60])
		encoded = encoded[60:]
	}
	wrapped = append(wrapped, encoded)

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), creds, "contents/analysis_results.json").
		Return(contentsBody(t, strings.Join(wrapped, "\n")+"\n"), nil)

	doc, err := NewLoader(fetcher, target()).Load(context.Background(), creds)

	require.NoError(t, err)
	assert.Equal(t, "example-author", doc.CommitAuthor)
	assert.Len(t, doc.ParameterChanges, 1)
	assert.Equal(t, json.Number("120"), doc.ParameterChanges["p"].LineNumber)
}

func TestLoader_Path(t *testing.T) {
	cfg := target()
	cfg.Ref = "v2"
	assert.Equal(t, "contents/analysis_results.json?ref=v2", NewLoader(nil, cfg).Path())
}

func TestLoader_Load_Failures(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		body    json.RawMessage
		err     error
		wantCat models.FaultCategory
		wantMsg string
	}{
		{
			name:    "not found",
			err:     models.NewFault(models.FaultNotFound, "contents/analysis_results.json not found"),
			wantCat: models.FaultNotFound,
			wantMsg: "analysis file analysis_results.json not available",
		},
		{
			name:    "transport",
			err:     models.NewFault(models.FaultTransport, "API error 500"),
			wantCat: models.FaultTransport,
			wantMsg: "API error 500",
		},
		{
			name:    "contents response is a list",
			body:    json.RawMessage(`[]`),
			wantCat: models.FaultFormat,
			wantMsg: "unexpected contents response",
		},
		{
			name:    "bad base64",
			body:    contentsBody(t, "!!not base64!!"),
			wantCat: models.FaultFormat,
			wantMsg: "decoding analysis_results.json",
		},
		{
			name:    "not json",
			body:    contentsBody(t, base64.StdEncoding.EncodeToString([]byte("target: abc"))),
			wantCat: models.FaultFormat,
			wantMsg: "parsing analysis document",
		},
		{
			name:    "empty document",
			body:    contentsBody(t, base64.StdEncoding.EncodeToString([]byte("{}"))),
			wantCat: models.FaultFormat,
			wantMsg: "analysis document is empty",
		},
		{
			name:    "unsupported format",
			format:  "yaml",
			body:    contentsBody(t, base64.StdEncoding.EncodeToString([]byte(sampleDoc))),
			wantCat: models.FaultFormat,
			wantMsg: `unsupported analysis format "yaml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockFetcher(ctrl)
			fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.body, tt.err)

			cfg := target()
			if tt.format != "" {
				cfg.Format = tt.format
			}

			doc, err := NewLoader(fetcher, cfg).Load(context.Background(), creds)

			assert.Nil(t, doc)
			require.Error(t, err)
			assert.True(t, models.IsCategory(err, tt.wantCat), "category: %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc), "JSON")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-10", doc.CommitDate)

	_, err = Parse([]byte("null"), FormatJSON)
	assert.True(t, models.IsCategory(err, models.FaultFormat))

	_, err = Parse([]byte(`[1, 2]`), FormatJSON)
	assert.True(t, models.IsCategory(err, models.FaultFormat))

	doc, err = Parse([]byte(`{"target_commit_sha": 42, "parameter_changes": {"p": 4}}`), FormatJSON)
	require.NoError(t, err)
	_, bad := doc.InvalidField(models.FieldCommitSHA)
	assert.True(t, bad)
	assert.True(t, doc.ParameterChanges["p"].Malformed())
}
