package skill

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryProgramming       Category = "programming"
	CategoryDataScience       Category = "data_science"
	CategoryWebDevelopment    Category = "web_development"
	CategoryMobileDevelopment Category = "mobile_development"
	CategoryCloudComputing    Category = "cloud_computing"
	CategoryDatabase          Category = "database"
	CategoryDevOps            Category = "devops"
	CategoryAIML              Category = "ai_ml"
	CategorySoftSkills        Category = "soft_skills"
	CategoryTools             Category = "tools"
)

var categoryOrder = []Category{
	CategoryProgramming,
	CategoryDataScience,
	CategoryWebDevelopment,
	CategoryMobileDevelopment,
	CategoryCloudComputing,
	CategoryDatabase,
	CategoryDevOps,
	CategoryAIML,
	CategorySoftSkills,
	CategoryTools,
}

// Categories returns every catalog category in display order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

func (c Category) Valid() bool {
	for _, v := range categoryOrder {
		if c == v {
			return true
		}
	}
	return false
}

// Level is a declared or required proficiency.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Weight maps a level onto the numeric scale used by readiness scoring.
// Unknown or empty levels weigh 0.
func (l Level) Weight() float64 {
	switch l {
	case LevelBeginner:
		return 0.4
	case LevelIntermediate:
		return 0.7
	case LevelAdvanced:
		return 1.0
	default:
		return 0
	}
}

// Levels returns the proficiency levels from lowest to highest.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

func (l Level) Valid() bool {
	return l.Weight() > 0
}

func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    Category
	Description string
	CreatedAt   time.Time
}

// StudentSkill is one declared skill of a student. (UserID, SkillID) is unique.
type StudentSkill struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	SkillName string
	Category  Category
	Level     Level
	LastUsed  *time.Time
	Source    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
