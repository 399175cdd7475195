package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/incharge-incontrol/backend/internal/models"
)

func standing(name string, createdDaysAgo int, now time.Time, latest *latestAttempt) userStanding {
	return userStanding{
		ID:            uuid.New(),
		Name:          name,
		Email:         name + "@example.com",
		CreatedAt:     now.AddDate(0, 0, -createdDaysAgo),
		LatestAttempt: latest,
	}
}

func attempt(inCharge, inControl int, result models.AttemptResult, completedAt time.Time) *latestAttempt {
	return &latestAttempt{
		Score:       models.Score{InCharge: inCharge, InControl: inControl},
		Result:      result,
		CompletedAt: completedAt,
	}
}

func almostEqual(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestBuildReportStats(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	users := []userStanding{
		standing("asha", 1, now, attempt(8, 2, models.ResultInCharge, now)),
		standing("vikram", 2, now, attempt(4, 6, models.ResultBalanced, now)),
		standing("meera", 3, now, nil),
	}

	report := buildReport(users, map[string]int{"english": 2}, "all", now)

	if report.Stats.TotalUsers != 3 {
		t.Fatalf("totalUsers = %d, want 3", report.Stats.TotalUsers)
	}
	// Averages over the two assessed users: in-charge 6, in-control 4.
	if !almostEqual(report.Stats.InChargeAccuracy, 60) {
		t.Fatalf("inChargeAccuracy = %v, want 60", report.Stats.InChargeAccuracy)
	}
	if !almostEqual(report.Stats.InControlAccuracy, 40) {
		t.Fatalf("inControlAccuracy = %v, want 40", report.Stats.InControlAccuracy)
	}
	if !almostEqual(report.Stats.AvgScore, 5) {
		t.Fatalf("avgScore = %v, want 5", report.Stats.AvgScore)
	}
}

func TestBuildReportRoleFilter(t *testing.T) {
	now := time.Now().UTC()
	users := []userStanding{
		standing("asha", 1, now, attempt(8, 2, models.ResultInCharge, now)),
		standing("vikram", 2, now, attempt(2, 8, models.ResultInControl, now)),
		standing("meera", 3, now, nil),
	}

	report := buildReport(users, nil, "incharge", now)
	if report.Stats.TotalUsers != 1 {
		t.Fatalf("totalUsers = %d, want 1", report.Stats.TotalUsers)
	}
	if len(report.UsersTable) != 1 || report.UsersTable[0].Name != "asha" {
		t.Fatalf("usersTable = %+v", report.UsersTable)
	}

	report = buildReport(users, nil, "incontrol", now)
	if report.Stats.TotalUsers != 1 || report.UsersTable[0].Name != "vikram" {
		t.Fatalf("incontrol filter gave %+v", report.UsersTable)
	}
}

func TestBuildReportDistributionsAndGrowth(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	users := []userStanding{
		standing("asha", 0, now, attempt(8, 2, models.ResultInCharge, now)),
		standing("vikram", 0, now, nil),
		standing("old", 45, now, nil), // outside the 30-day growth window
	}

	report := buildReport(users, map[string]int{"hindi": 3, "english": 5}, "all", now)

	if len(report.UserGrowth) != 30 {
		t.Fatalf("growth points = %d, want 30", len(report.UserGrowth))
	}
	last := report.UserGrowth[29]
	if last.Date != "2026-08-30" || last.Count != 2 {
		t.Fatalf("last growth point = %+v", last)
	}

	wantDist := map[string]int{"In-Charge": 1, "Unassessed": 2}
	if len(report.RoleDistribution) != len(wantDist) {
		t.Fatalf("roleDistribution = %+v", report.RoleDistribution)
	}
	for _, item := range report.RoleDistribution {
		if wantDist[item.Name] != item.Value {
			t.Fatalf("distribution %s = %d, want %d", item.Name, item.Value, wantDist[item.Name])
		}
		if item.Fill == "" {
			t.Fatalf("distribution %s missing fill", item.Name)
		}
	}

	if len(report.LanguageDistribution) != 2 {
		t.Fatalf("languageDistribution = %+v", report.LanguageDistribution)
	}
	if report.LanguageDistribution[0].Name != "English" || report.LanguageDistribution[0].Attempts != 5 {
		t.Fatalf("languageDistribution[0] = %+v", report.LanguageDistribution[0])
	}
}

func TestBuildReportTopUsersAndTable(t *testing.T) {
	now := time.Now().UTC()
	users := make([]userStanding, 0, 7)
	for i, score := range []int{3, 9, 5, 7, 6, 8} {
		users = append(users, standing(
			"user"+string(rune('a'+i)), 1, now,
			attempt(score, 10-score, models.ResultInCharge, now),
		))
	}
	users = append(users, standing("idle", 1, now, nil))

	report := buildReport(users, nil, "all", now)

	if len(report.TopUsers) != 5 {
		t.Fatalf("topUsers = %d, want 5", len(report.TopUsers))
	}
	if report.TopUsers[0].Score != 9 {
		t.Fatalf("topUsers[0] = %+v", report.TopUsers[0])
	}
	for i := 1; i < len(report.TopUsers); i++ {
		if report.TopUsers[i].Score > report.TopUsers[i-1].Score {
			t.Fatalf("topUsers not sorted: %+v", report.TopUsers)
		}
	}

	if len(report.UsersTable) != 7 {
		t.Fatalf("usersTable = %d rows, want 7", len(report.UsersTable))
	}
	var idle UserRow
	for _, row := range report.UsersTable {
		if row.Name == "idle" {
			idle = row
		}
	}
	if idle.Score != "N/A" || idle.LastQuizDate != "-" || idle.Result != "Unassessed" {
		t.Fatalf("idle row = %+v", idle)
	}
}
