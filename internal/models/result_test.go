package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Finish(t *testing.T) {
	creds := Credentials{Owner: "o", Repo: "r"}

	t.Run("all passed", func(t *testing.T) {
		r := NewReport(creds, ModeOnline, "a.json")
		r.Loaded = true
		r.Add(Pass(CheckCommit))
		r.Add(Pass(CheckIssues))
		r.Finish()
		assert.True(t, r.Passed)
	})

	t.Run("one failure", func(t *testing.T) {
		r := NewReport(creds, ModeOnline, "a.json")
		r.Loaded = true
		r.Add(Pass(CheckCommit))
		r.Add(Fail(CheckIssues, NewFault(FaultNotFound, "gone")))
		r.Finish()
		assert.False(t, r.Passed)
	})

	t.Run("not loaded", func(t *testing.T) {
		r := NewReport(creds, ModeOnline, "a.json")
		r.Finish()
		assert.False(t, r.Passed)
	})
}

func TestNewReport(t *testing.T) {
	r := NewReport(Credentials{Owner: "acme", Repo: "trainer"}, ModeOffline, "analysis_results.json")

	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, "acme/trainer", r.Repository)
	assert.False(t, r.StartedAt.IsZero())
}

func TestReport_Check(t *testing.T) {
	r := &Report{}
	r.Add(Fail(CheckParameters, NewFault(FaultMismatch, "no change detected for p")))

	got, ok := r.Check(CheckParameters)
	require.True(t, ok)
	assert.Equal(t, []string{"[mismatch] no change detected for p"}, got.FaultMessages())

	_, ok = r.Check(CheckCommit)
	assert.False(t, ok)
}
