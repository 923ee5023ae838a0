package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"goginie/config"
	"goginie/database"
	"goginie/models"
	"goginie/orchestrator"
	"goginie/services"
)

func offlineAgent(t *testing.T) (*orchestrator.Agent, *database.BookingStore) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := database.NewBookingStore(db)
	catalog := services.NewCatalog(&config.Config{
		AmadeusEnv:       "test",
		RailwayEndpoints: []string{"http://127.0.0.1:1"},
	}, store)
	return orchestrator.New(services.NewPlanner(nil, time.Second, 0.7), catalog), store
}

func jaipurTrip() models.TripPreferences {
	return models.TripPreferences{
		Destination:         "Jaipur",
		StartLocation:       "Delhi",
		Duration:            2,
		Budget:              40000,
		GroupSize:           2,
		TransportPreference: models.TransportTrain,
		DepartureDate:       "2026-12-01",
	}
}

func TestRunPlan_ApproveWithYes(t *testing.T) {
	agent, store := offlineAgent(t)
	pdf := filepath.Join(t.TempDir(), "trip.pdf")

	var out bytes.Buffer
	run, err := runPlan(context.Background(), agent, jaipurTrip(), planOptions{yes: true, pdf: pdf}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.PhaseComplete, run.Phase)
	assert.Contains(t, out.String(), "CATEGORY")
	assert.Contains(t, out.String(), run.ConfirmationCode)

	list, err := store.List(models.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRunPlan_DeclineRejects(t *testing.T) {
	agent, store := offlineAgent(t)

	var out bytes.Buffer
	run, err := runPlan(context.Background(), agent, jaipurTrip(), planOptions{}, strings.NewReader("n\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.PhaseRejected, run.Phase)
	assert.Contains(t, out.String(), "Approve and book this trip?")

	list, err := store.List(models.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRunPlan_InvalidPreferences(t *testing.T) {
	agent, _ := offlineAgent(t)

	prefs := jaipurTrip()
	prefs.StartLocation = ""
	_, err := runPlan(context.Background(), agent, prefs, planOptions{yes: true}, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		"yes":     true,
		"n\n":     false,
		"\n":      false,
		"":        false,
		"maybe\n": false,
	} {
		got, err := confirm(strings.NewReader(input), &bytes.Buffer{}, "? ")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestPreferencesFromFlags_FileThenOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
destination: Udaipur
start_location: Mumbai
duration: 4
budget: 80000
group_size: 3
travel_style: luxury
interests: [palaces, lakes]
departure_date: "2026-12-20"
`), 0o644))

	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(PlanCmd.Flags())
	require.NoError(t, cmd.Flags().Set("file", path))
	require.NoError(t, cmd.Flags().Set("budget", "95000"))
	t.Cleanup(func() {
		PlanCmd.Flags().Set("file", "")
		PlanCmd.Flags().Set("budget", "0")
		PlanCmd.Flags().Lookup("file").Changed = false
		PlanCmd.Flags().Lookup("budget").Changed = false
	})

	prefs, err := preferencesFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Udaipur", prefs.Destination)
	assert.Equal(t, "Mumbai", prefs.StartLocation)
	assert.Equal(t, 4, prefs.Duration)
	assert.Equal(t, 95000.0, prefs.Budget)
	assert.Equal(t, models.StyleLuxury, prefs.TravelStyle)
	assert.Equal(t, []string{"palaces", "lakes"}, prefs.Interests)
	assert.Equal(t, "2026-12-20", prefs.DepartureDate)
}

func TestLoadPreferences_Errors(t *testing.T) {
	_, err := loadPreferences(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("duration: [not, a, number]"), 0o644))
	_, err = loadPreferences(bad)
	assert.Error(t, err)
}

func TestWriteOutput_Formats(t *testing.T) {
	list := []models.BookingRecord{{
		ID:               "b1",
		Type:             models.BookingHotel,
		Status:           models.StatusConfirmed,
		Amount:           16000,
		Currency:         "INR",
		ConfirmationCode: "HOT123456ABC",
		Title:            "Grand Palace Hotel",
	}}

	var table bytes.Buffer
	require.NoError(t, writeOutput(&table, outputTable, list, bookingsTable(list)))
	assert.Contains(t, table.String(), "HOT123456ABC")
	assert.Contains(t, table.String(), "INR 16000")

	var js bytes.Buffer
	require.NoError(t, writeOutput(&js, outputJSON, list, bookingsTable(list)))
	assert.Contains(t, js.String(), `"confirmation_code": "HOT123456ABC"`)

	var ym bytes.Buffer
	require.NoError(t, writeOutput(&ym, outputYAML, list, bookingsTable(list)))
	var decoded []models.BookingRecord
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Grand Palace Hotel", decoded[0].Title)

	assert.Error(t, writeOutput(&bytes.Buffer{}, "xml", list, bookingsTable(list)))
}

func TestStatsTable(t *testing.T) {
	var out bytes.Buffer
	st := models.BookingStats{Total: 3, Confirmed: 2, Cancelled: 1, TotalSpent: 12500}
	require.NoError(t, writeOutput(&out, "", st, statsTable(st)))
	assert.Contains(t, out.String(), "INR 12500")
}

func TestRunTable_ShowsTransportNote(t *testing.T) {
	agent, _ := offlineAgent(t)

	prefs := jaipurTrip()
	prefs.TransportPreference = models.TransportCar
	var out bytes.Buffer
	run, err := runPlan(context.Background(), agent, prefs, planOptions{}, strings.NewReader("n\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Note:")
	assert.Contains(t, out.String(), run.Plan.TransportNote)
}

func TestRecommendationTables(t *testing.T) {
	mood := services.MockMoodRecommendations(models.MoodRequest{Mood: models.MoodAdventurous, Location: "Rishikesh", TimePeriod: models.TimeMorning})
	var out bytes.Buffer
	require.NoError(t, writeOutput(&out, outputTable, mood, moodTable(mood)))
	assert.Contains(t, out.String(), "Feeling adventurous in Rishikesh (morning)")
	assert.Contains(t, out.String(), "Kayaking Adventure")

	recs := services.MockPersonalizedRecommendations(models.TripPreferences{Destination: "Rishikesh"})
	out.Reset()
	require.NoError(t, writeOutput(&out, outputTable, recs, profileTable(recs)))
	assert.Contains(t, out.String(), "Picks for Rishikesh")
	assert.Contains(t, out.String(), "Cultural Walking Tour")
}
