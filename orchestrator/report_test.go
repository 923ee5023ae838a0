package orchestrator

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goginie/models"
)

func statusByCategory(run Run) map[string]string {
	out := map[string]string{}
	for _, l := range summaryData(run).Lines {
		out[l.Category] = l.Status
	}
	return out
}

func TestSummaryData_FollowsRunPhase(t *testing.T) {
	svc := newFakeServices()
	svc.failBook["restaurant"] = "kitchen closed"
	agent := New(&fakePlanner{}, svc)

	run, err := agent.Start(context.Background(), parisTrip())
	require.NoError(t, err)

	data := summaryData(run)
	assert.Equal(t, run.ConfirmationCode, data.ConfirmationCode)
	assert.Equal(t, run.TotalCost, data.TotalCost)
	assert.Equal(t, "review", data.Phase)
	require.Len(t, data.Lines, 3)
	for _, l := range data.Lines {
		assert.Equal(t, "awaiting approval", l.Status, l.Category)
		assert.NotEmpty(t, l.Label, l.Category)
	}

	done, err := agent.Approve(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"transport":  "booked CONF-flight",
		"hotel":      "booked CONF-hotel",
		"restaurant": "failed",
	}, statusByCategory(done))

	other, err := agent.Start(context.Background(), parisTrip())
	require.NoError(t, err)
	rejected, err := agent.Reject(other.ID)
	require.NoError(t, err)
	for category, status := range statusByCategory(rejected) {
		assert.Equal(t, "not booked", status, category)
	}
}

func TestSummaryData_CarriesTransportNote(t *testing.T) {
	agent := New(&fakePlanner{}, newFakeServices())

	run, err := agent.Start(context.Background(), parisTrip())
	require.NoError(t, err)
	assert.Empty(t, summaryData(run).Notes)

	prefs := parisTrip()
	prefs.TransportPreference = models.TransportBus
	run, err = agent.Start(context.Background(), prefs)
	require.NoError(t, err)
	assert.Equal(t, []string{run.Plan.TransportNote}, summaryData(run).Notes)
	assert.Contains(t, run.Plan.TransportNote, "bus transport")
}

func TestSummaryPDF(t *testing.T) {
	run, err := New(&fakePlanner{}, newFakeServices()).Start(context.Background(), parisTrip())
	require.NoError(t, err)

	data, err := SummaryPDF(run)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
