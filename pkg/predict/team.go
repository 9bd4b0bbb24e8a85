package predict

import (
	"fmt"
	"time"
)

// Compile-time check to ensure Team implements Persistable
var _ Persistable = (*Team)(nil)

// Team represents a football team with season-level statistics used as a
// fallback when no recent match history exists. Nullable statistics use the
// -1 sentinel convention; see HasAverageXg.
type Team struct {
	ID     string `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`
	Name   string `json:"name" column:"name" dbtype:"TEXT NOT NULL" index:"true"`
	League string `json:"league" column:"league" dbtype:"TEXT"`

	// Season totals
	GoalsScored   int `json:"goalsScored" column:"goals_scored" dbtype:"INTEGER DEFAULT 0"`
	GoalsConceded int `json:"goalsConceded" column:"goals_conceded" dbtype:"INTEGER DEFAULT 0"`
	Wins          int `json:"wins" column:"wins" dbtype:"INTEGER DEFAULT 0"`
	Draws         int `json:"draws" column:"draws" dbtype:"INTEGER DEFAULT 0"`
	Losses        int `json:"losses" column:"losses" dbtype:"INTEGER DEFAULT 0"`

	// Season averages, -1 when unknown
	AverageXg                  float64 `json:"averageXg" column:"average_xg" dbtype:"REAL DEFAULT -1.0"`
	AverageXa                  float64 `json:"averageXa" column:"average_xa" dbtype:"REAL DEFAULT -1.0"`
	SeasonAverageGoalsConceded float64 `json:"seasonAverageGoalsConceded" column:"season_average_goals_conceded" dbtype:"REAL DEFAULT -1.0"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// NewTeam returns a team with every nullable season average set to the -1
// sentinel. Callers filling a team from partial data must start from this,
// not from the zero value: a zero-valued team reads as a known season
// average of 0.0 and the empty-history fallback never triggers.
func NewTeam() Team {
	return Team{
		AverageXg:                  -1,
		AverageXa:                  -1,
		SeasonAverageGoalsConceded: -1,
	}
}

// HasAverageXg reports whether the team's season xG average is known.
func (t *Team) HasAverageXg() bool {
	return t.AverageXg >= 0
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

func (t *Team) TableName() string {
	return "teams"
}

func (t *Team) PrimaryKey() map[string]any {
	return map[string]any{
		"id": t.ID,
	}
}

func (t *Team) BeforeSave() error {
	if t.ID == "" {
		return fmt.Errorf("team requires an id")
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return nil
}
