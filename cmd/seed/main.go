// Package main seeds the database with an initial admin account and, if no
// quiz is active for today, a sample quiz activated for the current UTC day.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/incharge-incontrol/backend/config"
	"github.com/incharge-incontrol/backend/internal/auth"
	"github.com/incharge-incontrol/backend/internal/models"
	"github.com/incharge-incontrol/backend/internal/quizzes"
	"github.com/incharge-incontrol/backend/pkg/database"
	"github.com/incharge-incontrol/backend/pkg/utils"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "AdminPassword123!"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	if err := seedAdmin(ctx, auth.NewRepository(pool), logger); err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}
	if err := seedTodayQuiz(ctx, quizzes.NewRepository(pool), logger); err != nil {
		logger.Fatal("seed quiz", zap.Error(err))
	}
	logger.Info("seed complete")
}

func seedAdmin(ctx context.Context, repo *auth.Repository, logger *zap.Logger) error {
	_, err := repo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin already exists", zap.String("email", adminEmail))
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:               "Admin",
		Email:              adminEmail,
		Password:           hash,
		Role:               models.RoleAdmin,
		AccessFlag:         true,
		FirstLoginRequired: true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("admin created", zap.String("email", adminEmail))
	return nil
}

func seedTodayQuiz(ctx context.Context, repo *quizzes.Repository, logger *zap.Logger) error {
	today := quizzes.NormalizeActiveDate(time.Now())
	dayStart, dayEnd := quizzes.DayWindow(today)

	_, err := repo.GetActiveForDate(ctx, dayStart, dayEnd)
	if err == nil {
		logger.Info("active quiz already scheduled for today")
		return nil
	}
	if !errors.Is(err, quizzes.ErrNotFound) {
		return err
	}

	quiz := sampleQuiz()
	if err := repo.Create(ctx, quiz); err != nil {
		return err
	}
	if err := repo.Activate(ctx, quiz.ID, today); err != nil {
		return err
	}
	logger.Info("sample quiz activated for today", zap.String("id", quiz.ID.String()))
	return nil
}

func sampleQuiz() *models.Quiz {
	scenarios := []struct {
		prompt    string
		inCharge  string
		inControl [3]string
	}{
		{
			"A key project deadline is at risk. What do you do first?",
			"Take over the critical path tasks yourself to guarantee delivery.",
			[3]string{
				"Gather the team to re-plan the remaining work together.",
				"Ask each owner what support they need to finish on time.",
				"Review the plan with stakeholders and adjust expectations.",
			},
		},
		{
			"Two team members disagree strongly in a meeting. How do you respond?",
			"Make the call yourself so the meeting can move on.",
			[3]string{
				"Let each side explain their view before weighing in.",
				"Ask the group what outcome they are all optimizing for.",
				"Suggest a follow-up with just the two of them to align.",
			},
		},
		{
			"A new hire is struggling with their first assignment. What is your move?",
			"Redo the tricky parts yourself and hand back a template.",
			[3]string{
				"Pair them with a mentor for the rest of the task.",
				"Walk through their approach and ask guiding questions.",
				"Break the assignment into smaller milestones with them.",
			},
		},
		{
			"Leadership asks for an ambitious commitment. How do you answer?",
			"Commit on the spot and push the team to make it happen.",
			[3]string{
				"Check capacity with the team before giving a date.",
				"Offer a phased plan with checkpoints instead of one date.",
				"Share the risks openly and negotiate the scope.",
			},
		},
		{
			"An incident hits production during off-hours. What happens next?",
			"Jump in and fix it yourself before anyone else is paged.",
			[3]string{
				"Page the on-call owner and offer to assist.",
				"Coordinate a response channel and assign clear roles.",
				"Stabilize first, then schedule a blameless review.",
			},
		},
		{
			"A teammate proposes a design you think is wrong. What do you do?",
			"Override it with your own design to avoid wasted effort.",
			[3]string{
				"Ask them to walk you through the trade-offs they considered.",
				"Prototype both approaches and compare results.",
				"Bring it to a design review for broader input.",
			},
		},
		{
			"Your team keeps missing sprint goals. How do you react?",
			"Set the next sprint's scope yourself and track it daily.",
			[3]string{
				"Run a retrospective to find the recurring blockers.",
				"Revisit estimation practices with the whole team.",
				"Trim scope together until goals become predictable.",
			},
		},
		{
			"A stakeholder requests a last-minute feature. What is your response?",
			"Squeeze it in by reassigning people immediately.",
			[3]string{
				"Discuss the trade-off against current priorities with them.",
				"Ask the team to size it before committing.",
				"Propose the next release and document the request.",
			},
		},
		{
			"You receive credit for work the team did. How do you handle it?",
			"Accept it; results ultimately flow from your direction.",
			[3]string{
				"Redirect the credit to the people who did the work.",
				"Share specifics of who contributed what.",
				"Use the moment to highlight the team's growth.",
			},
		},
		{
			"A process you introduced is slowing people down. What now?",
			"Insist on it; consistency matters more than comfort.",
			[3]string{
				"Ask the team where exactly it hurts and why.",
				"Pilot a lighter version with one squad first.",
				"Drop the parts nobody can justify keeping.",
			},
		},
	}

	questions := make([]models.Question, 0, len(scenarios))
	for _, s := range scenarios {
		questions = append(questions, models.Question{
			QuestionText: s.prompt,
			Options: []models.Option{
				{Text: s.inCharge, Type: models.OptionInCharge},
				{Text: s.inControl[0], Type: models.OptionInControl},
				{Text: s.inControl[1], Type: models.OptionInControl},
				{Text: s.inControl[2], Type: models.OptionInControl},
			},
		})
	}

	quiz := &models.Quiz{
		Languages: []string{models.DefaultLanguage},
		Content: map[string]models.QuizContent{
			models.DefaultLanguage: {
				Title:       "Daily Leadership Check-In",
				Description: "Ten quick scenarios to reveal whether you lead In-Charge or In-Control today.",
				Questions:   questions,
			},
		},
		Status:      models.StatusDraft,
		GeneratedBy: models.GeneratedManual,
	}
	quiz.SyncLegacyFromEnglish()
	return quiz
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
