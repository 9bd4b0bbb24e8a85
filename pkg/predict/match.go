package predict

import (
	"fmt"
	"time"
)

// Compile-time check to ensure MatchRecord implements Persistable
var _ Persistable = (*MatchRecord)(nil)

// MatchRecord is one historical or scheduled fixture between two teams.
// Scores and per-side statistics are nullable until the match has been
// played; unset values carry the -1 sentinel.
type MatchRecord struct {
	ID string `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`

	HomeID       string `json:"homeId" column:"home_id" dbtype:"TEXT NOT NULL" index:"true"`
	AwayID       string `json:"awayId" column:"away_id" dbtype:"TEXT NOT NULL" index:"true"`
	HomeTeamName string `json:"homeTeamName" column:"home_team_name" dbtype:"TEXT"`
	AwayTeamName string `json:"awayTeamName" column:"away_team_name" dbtype:"TEXT"`

	// Final scores, -1 until known
	HomeScore int `json:"homeScore" column:"home_score" dbtype:"INTEGER DEFAULT -1"`
	AwayScore int `json:"awayScore" column:"away_score" dbtype:"INTEGER DEFAULT -1"`

	// Per-side match statistics, -1 until known
	HomeXg         float64 `json:"homeXg" column:"home_xg" dbtype:"REAL DEFAULT -1.0"`
	AwayXg         float64 `json:"awayXg" column:"away_xg" dbtype:"REAL DEFAULT -1.0"`
	HomeXa         float64 `json:"homeXa" column:"home_xa" dbtype:"REAL DEFAULT -1.0"`
	AwayXa         float64 `json:"awayXa" column:"away_xa" dbtype:"REAL DEFAULT -1.0"`
	HomePossession float64 `json:"homePossession" column:"home_possession" dbtype:"REAL DEFAULT -1.0"`
	AwayPossession float64 `json:"awayPossession" column:"away_possession" dbtype:"REAL DEFAULT -1.0"`
	HomeShots      int     `json:"homeShots" column:"home_shots" dbtype:"INTEGER DEFAULT -1"`
	AwayShots      int     `json:"awayShots" column:"away_shots" dbtype:"INTEGER DEFAULT -1"`

	MatchDate time.Time `json:"matchDate" column:"match_date" dbtype:"DATETIME NOT NULL" index:"true"`
	Completed bool      `json:"completed" column:"completed" dbtype:"INTEGER DEFAULT 0" index:"true"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// NewMatchRecord returns a record with every nullable score and statistic
// set to the -1 sentinel. Callers filling a record from partial data (JSON
// bodies, external feeds) must start from this, not from the zero value:
// a zero-valued record reads as a finished 0-0 draw.
func NewMatchRecord() MatchRecord {
	return MatchRecord{
		HomeScore: -1, AwayScore: -1,
		HomeXg: -1, AwayXg: -1,
		HomeXa: -1, AwayXa: -1,
		HomePossession: -1, AwayPossession: -1,
		HomeShots: -1, AwayShots: -1,
	}
}

// HasResult reports whether both final scores are known. A match counts
// towards a team's form only when it is completed and has a full result.
func (m *MatchRecord) HasResult() bool {
	return m.Completed && m.HomeScore >= 0 && m.AwayScore >= 0
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

func (m *MatchRecord) TableName() string {
	return "matches"
}

func (m *MatchRecord) PrimaryKey() map[string]any {
	return map[string]any{
		"id": m.ID,
	}
}

func (m *MatchRecord) BeforeSave() error {
	if m.HomeID == "" || m.AwayID == "" {
		return fmt.Errorf("match requires both team ids")
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return nil
}
