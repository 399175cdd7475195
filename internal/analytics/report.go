package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/incharge-incontrol/backend/internal/models"
)

// assessedQuestions is the question count the dashboard assumes when turning
// per-axis tallies into accuracy percentages (the product's UI convention).
const assessedQuestions = 10

// userStanding pairs a user with their latest attempt, if any.
type userStanding struct {
	ID            uuid.UUID
	Name          string
	Email         string
	CreatedAt     time.Time
	LatestAttempt *latestAttempt
}

type latestAttempt struct {
	Score       models.Score
	Result      models.AttemptResult
	CompletedAt time.Time
}

// userType classifies a user by their latest attempt result.
func (u userStanding) userType() string {
	if u.LatestAttempt == nil {
		return "Unassessed"
	}
	return string(u.LatestAttempt.Result)
}

// Report is the dashboard payload.
type Report struct {
	Stats                Stats              `json:"stats"`
	UserGrowth           []GrowthPoint      `json:"userGrowth"`
	RoleDistribution     []DistributionItem `json:"roleDistribution"`
	LanguageDistribution []LanguageItem     `json:"languageDistribution"`
	TopUsers             []TopUser          `json:"topUsers"`
	UsersTable           []UserRow          `json:"usersTable"`
}

// Stats is the dashboard headline numbers.
type Stats struct {
	TotalUsers        int     `json:"totalUsers"`
	AvgScore          float64 `json:"avgScore"`
	InChargeAccuracy  float64 `json:"inChargeAccuracy"`
	InControlAccuracy float64 `json:"inControlAccuracy"`
}

// GrowthPoint is one day of user registrations.
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DistributionItem is one slice of the result-distribution chart.
type DistributionItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Fill  string `json:"fill"`
}

// LanguageItem is one bar of the language-distribution chart.
type LanguageItem struct {
	Name     string `json:"name"`
	Attempts int    `json:"attempts"`
}

// TopUser is one entry of the top-5 list.
type TopUser struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Type  string `json:"type"`
}

// UserRow is one row of the per-user table.
type UserRow struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Score        string    `json:"score"`
	Accuracy     string    `json:"accuracy"`
	LastQuizDate string    `json:"lastQuizDate"`
	Result       string    `json:"result"`
}

// buildReport assembles the dashboard from pre-fetched rows. Pure; "now"
// anchors the 30-day growth window.
func buildReport(users []userStanding, langCounts map[string]int, roleFilter string, now time.Time) Report {
	filtered := filterByRole(users, roleFilter)

	var totalInCharge, totalInControl, attempted int
	for _, u := range filtered {
		if u.LatestAttempt != nil {
			totalInCharge += u.LatestAttempt.Score.InCharge
			totalInControl += u.LatestAttempt.Score.InControl
			attempted++
		}
	}
	var avgInCharge, avgInControl float64
	if attempted > 0 {
		avgInCharge = float64(totalInCharge) / float64(attempted)
		avgInControl = float64(totalInControl) / float64(attempted)
	}

	return Report{
		Stats: Stats{
			TotalUsers:        len(filtered),
			AvgScore:          (avgInCharge + avgInControl) / 2,
			InChargeAccuracy:  avgInCharge / assessedQuestions * 100,
			InControlAccuracy: avgInControl / assessedQuestions * 100,
		},
		UserGrowth:           growthSeries(filtered, now),
		RoleDistribution:     roleDistribution(filtered),
		LanguageDistribution: languageDistribution(langCounts),
		TopUsers:             topUsers(filtered),
		UsersTable:           usersTable(filtered),
	}
}

func filterByRole(users []userStanding, roleFilter string) []userStanding {
	var target string
	switch roleFilter {
	case "incharge":
		target = string(models.ResultInCharge)
	case "incontrol":
		target = string(models.ResultInControl)
	default:
		return users
	}
	out := make([]userStanding, 0, len(users))
	for _, u := range users {
		if u.userType() == target {
			out = append(out, u)
		}
	}
	return out
}

// growthSeries counts registrations per day over the last 30 days.
func growthSeries(users []userStanding, now time.Time) []GrowthPoint {
	counts := make(map[string]int, 30)
	dates := make([]string, 0, 30)
	for i := 29; i >= 0; i-- {
		date := now.UTC().AddDate(0, 0, -i).Format("2006-01-02")
		counts[date] = 0
		dates = append(dates, date)
	}
	for _, u := range users {
		date := u.CreatedAt.UTC().Format("2006-01-02")
		if _, ok := counts[date]; ok {
			counts[date]++
		}
	}
	series := make([]GrowthPoint, 0, len(dates))
	for _, date := range dates {
		series = append(series, GrowthPoint{Date: date, Count: counts[date]})
	}
	return series
}

func roleDistribution(users []userStanding) []DistributionItem {
	items := []DistributionItem{
		{Name: string(models.ResultInCharge), Fill: "#6366f1"},
		{Name: string(models.ResultInControl), Fill: "#a855f7"},
		{Name: string(models.ResultBalanced), Fill: "#22c55e"},
		{Name: "Unassessed", Fill: "#94a3b8"},
	}
	for _, u := range users {
		t := u.userType()
		for i := range items {
			if items[i].Name == t {
				items[i].Value++
			}
		}
	}
	out := items[:0]
	for _, item := range items {
		if item.Value > 0 {
			out = append(out, item)
		}
	}
	return out
}

func languageDistribution(langCounts map[string]int) []LanguageItem {
	names := make([]string, 0, len(langCounts))
	for lang := range langCounts {
		names = append(names, lang)
	}
	sort.Strings(names)
	items := make([]LanguageItem, 0, len(names))
	for _, lang := range names {
		items = append(items, LanguageItem{Name: titleCase(lang), Attempts: langCounts[lang]})
	}
	return items
}

// topUsers ranks assessed users by their dominant-trait tally, top 5.
func topUsers(users []userStanding) []TopUser {
	assessed := make([]TopUser, 0, len(users))
	for _, u := range users {
		if u.LatestAttempt == nil {
			continue
		}
		score := u.LatestAttempt.Score.InCharge
		if u.LatestAttempt.Score.InControl > score {
			score = u.LatestAttempt.Score.InControl
		}
		assessed = append(assessed, TopUser{Name: u.Name, Score: score, Type: u.userType()})
	}
	sort.SliceStable(assessed, func(i, j int) bool { return assessed[i].Score > assessed[j].Score })
	if len(assessed) > 5 {
		assessed = assessed[:5]
	}
	return assessed
}

func usersTable(users []userStanding) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		row := UserRow{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Score:        "N/A",
			Accuracy:     "-",
			LastQuizDate: "-",
			Result:       u.userType(),
		}
		if u.LatestAttempt != nil {
			score := u.LatestAttempt.Score
			row.Score = strconv.Itoa(score.InCharge) + "/" + strconv.Itoa(score.InControl)
			dominant := score.InCharge
			if score.InControl > dominant {
				dominant = score.InControl
			}
			row.Accuracy = strconv.Itoa(int(float64(dominant)/assessedQuestions*100)) + "%"
			row.LastQuizDate = u.LatestAttempt.CompletedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
