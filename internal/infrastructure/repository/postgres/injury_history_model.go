package postgres

import (
	"database/sql"
	"time"
)

type injuryHistoryTableModel struct {
	ID              int64          `db:"id"`
	PlayerName      string         `db:"player_name"`
	PlayerNameKey   string         `db:"player_name_key"`
	MajorInjuryDate sql.NullTime   `db:"major_injury_date"`
	MajorInjuryType sql.NullString `db:"major_injury_type"`
	Notes           string         `db:"notes"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type injurySeasonGamesTableModel struct {
	ID            int64      `db:"id"`
	PlayerNameKey string     `db:"player_name_key"`
	Season        int        `db:"season"`
	GamesPlayed   int        `db:"games_played"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type injuryRecordTableModel struct {
	ID            int64      `db:"id"`
	PlayerNameKey string     `db:"player_name_key"`
	Season        int        `db:"season"`
	InjuryType    string     `db:"injury_type"`
	GamesMissed   int        `db:"games_missed"`
	IsMajor       bool       `db:"is_major"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}
