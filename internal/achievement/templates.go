package achievement

import (
	"time"

	"github.com/google/uuid"

	"github.com/ironhorse/railyard/internal/domain"
)

// Template is a static achievement definition. Instances are stamped
// into the player document from these.
type Template struct {
	Key         string
	Type        string
	Title       string
	Description string
	Requirement string
	TargetValue int64
	Rewards     domain.AchievementRewards
	ExpiresAt   *time.Time // event templates only
}

// WeeklyCount weekly achievements are drawn from the pool every reset.
const WeeklyCount = 3

// weeklyPool is the draw pool for the Friday reset.
var weeklyPool = []Template{
	{
		Key: "weekly_haul_5", Type: domain.AchievementTypeWeekly,
		Title: "Working the Board", Description: "Complete 5 jobs this week",
		Requirement: domain.ReqJobsCompleted, TargetValue: 5,
		Rewards: domain.AchievementRewards{Cash: 5000, Points: 10, XP: 500},
	},
	{
		Key: "weekly_miles_500", Type: domain.AchievementTypeWeekly,
		Title: "Mile Collector", Description: "Haul 500 miles this week",
		Requirement: domain.ReqMilesHauled, TargetValue: 500,
		Rewards: domain.AchievementRewards{Cash: 7500, Points: 15, XP: 750},
	},
	{
		Key: "weekly_yard_3", Type: domain.AchievementTypeWeekly,
		Title: "Hump Yard Hero", Description: "Finish 3 yard switching jobs this week",
		Requirement: domain.ReqYardJobs, TargetValue: 3,
		Rewards: domain.AchievementRewards{Cash: 4000, Points: 8, XP: 400},
	},
	{
		Key: "weekly_earn_50k", Type: domain.AchievementTypeWeekly,
		Title: "Revenue Service", Description: "Earn $50,000 from jobs this week",
		Requirement: domain.ReqCashEarned, TargetValue: 50000,
		Rewards: domain.AchievementRewards{Cash: 10000, Points: 20, XP: 1000},
	},
	{
		Key: "weekly_haul_10", Type: domain.AchievementTypeWeekly,
		Title: "Dispatcher's Favorite", Description: "Complete 10 jobs this week",
		Requirement: domain.ReqJobsCompleted, TargetValue: 10,
		Rewards: domain.AchievementRewards{Cash: 12000, Points: 25, XP: 1200},
	},
	{
		Key: "weekly_miles_1200", Type: domain.AchievementTypeWeekly,
		Title: "Long Hauler", Description: "Haul 1,200 miles this week",
		Requirement: domain.ReqMilesHauled, TargetValue: 1200,
		Rewards: domain.AchievementRewards{Cash: 15000, Points: 30, XP: 1500},
	},
}

// careerTemplates are permanent and never regenerated.
var careerTemplates = []Template{
	{
		Key: "career_first_job", Type: domain.AchievementTypeCareer,
		Title: "First Revenue Run", Description: "Complete your first job",
		Requirement: domain.ReqJobsCompleted, TargetValue: 1,
		Rewards: domain.AchievementRewards{Cash: 2000, Points: 5, XP: 200},
	},
	{
		Key: "career_jobs_100", Type: domain.AchievementTypeCareer,
		Title: "Centennial", Description: "Complete 100 jobs",
		Requirement: domain.ReqJobsCompleted, TargetValue: 100,
		Rewards: domain.AchievementRewards{Cash: 50000, Points: 100, XP: 5000},
	},
	{
		Key: "career_miles_10k", Type: domain.AchievementTypeCareer,
		Title: "Ten Thousand Miler", Description: "Haul 10,000 career miles",
		Requirement: domain.ReqMilesHauled, TargetValue: 10000,
		Rewards: domain.AchievementRewards{Cash: 75000, Points: 150, XP: 7500},
	},
	{
		Key: "career_fleet_5", Type: domain.AchievementTypeCareer,
		Title: "Roundhouse Regular", Description: "Purchase 5 locomotives",
		Requirement: domain.ReqLocosPurchased, TargetValue: 5,
		Rewards: domain.AchievementRewards{Cash: 25000, Points: 50, XP: 2500},
	},
	{
		Key: "career_bank_1m", Type: domain.AchievementTypeCareer,
		Title: "Railroad Baron", Description: "Hold a cash balance of $1,000,000",
		Requirement: domain.ReqCashBalance, TargetValue: 1000000,
		Rewards: domain.AchievementRewards{Cash: 0, Points: 200, XP: 10000},
	},
	{
		Key: "career_special_10", Type: domain.AchievementTypeCareer,
		Title: "Heavy Metal", Description: "Complete 10 special freight jobs",
		Requirement: domain.ReqTier3Jobs, TargetValue: 10,
		Rewards: domain.AchievementRewards{Cash: 100000, Points: 250, XP: 12000},
	},
}

// eventExpiry pins the current seasonal event window.
var eventExpiry = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

var eventTemplates = []Template{
	{
		Key: "event_harvest_rush", Type: domain.AchievementTypeEvent,
		Title: "Harvest Rush", Description: "Complete 20 jobs before the season ends",
		Requirement: domain.ReqJobsCompleted, TargetValue: 20,
		Rewards:   domain.AchievementRewards{Cash: 30000, Points: 60, XP: 3000},
		ExpiresAt: &eventExpiry,
	},
	{
		Key: "event_grain_miles", Type: domain.AchievementTypeEvent,
		Title: "Golden Corridor", Description: "Haul 2,000 miles before the season ends",
		Requirement: domain.ReqMilesHauled, TargetValue: 2000,
		Rewards:   domain.AchievementRewards{Cash: 40000, Points: 80, XP: 4000},
		ExpiresAt: &eventExpiry,
	},
}

// instantiate stamps a template into a live achievement.
func instantiate(t Template, now time.Time) domain.Achievement {
	return domain.Achievement{
		ID:          uuid.NewString(),
		Key:         t.Key,
		Type:        t.Type,
		Title:       t.Title,
		Description: t.Description,
		Requirement: t.Requirement,
		TargetValue: t.TargetValue,
		Rewards:     t.Rewards,
		ExpiresAt:   t.ExpiresAt,
		CreatedAt:   now,
	}
}
