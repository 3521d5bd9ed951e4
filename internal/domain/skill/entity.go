package skill

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnknownName is shown wherever a skill reference carries no joined record.
const UnknownName = "Unknown"

type Category string

const (
	CategoryProgramming Category = "Programming"
	CategoryFrameworks  Category = "Frameworks"
	CategoryTools       Category = "Tools"
	CategorySoftSkills  Category = "Soft Skills"
	CategoryOther       Category = "Other"
)

func ParseCategory(s string) Category {
	switch Category(strings.TrimSpace(s)) {
	case CategoryProgramming:
		return CategoryProgramming
	case CategoryFrameworks:
		return CategoryFrameworks
	case CategoryTools:
		return CategoryTools
	case CategorySoftSkills:
		return CategorySoftSkills
	default:
		return CategoryOther
	}
}

// Tag groups entries on a person's profile.
type Tag string

const (
	TagCore  Tag = "core"
	TagTools Tag = "tools"
	TagSoft  Tag = "soft"
)

func ParseTag(s string) Tag {
	switch Tag(strings.ToLower(strings.TrimSpace(s))) {
	case TagTools:
		return TagTools
	case TagSoft:
		return TagSoft
	default:
		return TagCore
	}
}

type ItemType string

const (
	ItemMultipleChoice ItemType = "multiple_choice"
	ItemTrueFalse      ItemType = "true_false"
	ItemScenario       ItemType = "scenario"
)

type AssessmentItem struct {
	Question      string
	Type          ItemType
	Options       []string
	CorrectAnswer string
	Difficulty    string
	Points        int
}

// Definition is a catalog entry. Everything else refers to it by ID.
type Definition struct {
	ID          uuid.UUID
	Name        string
	Category    Category
	Description string
	Items       []AssessmentItem
	CreatedAt   time.Time
}

// Ref is a skill reference that is either a bare identifier or an identifier
// joined with its catalog name. It is normalized once where the data enters
// the engine.
type Ref struct {
	ID   uuid.UUID
	Name string
}

func RefID(id uuid.UUID) Ref {
	return Ref{ID: id}
}

func NewRef(id uuid.UUID, name string) Ref {
	return Ref{ID: id, Name: strings.TrimSpace(name)}
}

func RefSkill(def Definition) Ref {
	return NewRef(def.ID, def.Name)
}

func (r Ref) Resolvable() bool {
	return r.ID != uuid.Nil
}

func (r Ref) Joined() bool {
	return r.Name != ""
}

func (r Ref) DisplayName() string {
	if r.Name == "" {
		return UnknownName
	}
	return r.Name
}

// ProfileEntry is one skill a person claims. FreshnessScore and SCI are
// derived values owned by the confidence engine.
type ProfileEntry struct {
	ID              uuid.UUID
	Skill           Ref
	SelfRating      int
	LastUsedDate    *time.Time
	AssessmentScore float64
	FreshnessScore  float64
	ScenarioScore   float64
	SCI             float64
	LastAssessed    *time.Time
	Tag             Tag
}

// Requirement is what a role or a job needs from one skill. Importance is only
// meaningful on job postings.
type Requirement struct {
	Skill      Ref
	MinimumSCI float64
	Importance int
}

func NormalizeImportance(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// IndexByID builds the lookup the analyzers use. Entries without a resolvable
// reference are dropped; the last entry wins on duplicates.
func IndexByID(entries []ProfileEntry) map[uuid.UUID]ProfileEntry {
	out := make(map[uuid.UUID]ProfileEntry, len(entries))
	for _, e := range entries {
		if !e.Skill.Resolvable() {
			continue
		}
		out[e.Skill.ID] = e
	}
	return out
}

// Score clamps a 0-100 score, coalescing NaN to 0.
func Score(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func RoundPercent(v float64) int {
	return int(math.Floor(v + 0.5))
}
