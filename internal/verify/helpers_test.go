package verify

import (
	"encoding/json"
	"testing"

	"github.com/harrison/verifier/internal/models"
	"github.com/stretchr/testify/require"
)

var testCreds = models.Credentials{Token: "t", Owner: "example-owner", Repo: "example-repo"}

const sampleSHA = "0f4b0c1e2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d"

// parseDoc decodes a JSON analysis document the way the loader does.
func parseDoc(t *testing.T, text string) *models.AnalysisDocument {
	t.Helper()
	doc, err := models.ParseAnalysisDocument([]byte(text))
	require.NoError(t, err)
	return doc
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func requireFault(t *testing.T, result models.CheckResult, category models.FaultCategory) *models.Fault {
	t.Helper()
	require.False(t, result.Passed, "expected check to fail")
	require.NotEmpty(t, result.Faults)
	require.Equal(t, category, result.Faults[0].Category, "fault: %v", result.Faults[0])
	return result.Faults[0]
}
