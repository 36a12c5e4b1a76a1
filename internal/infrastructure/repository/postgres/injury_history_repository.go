package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	qb "github.com/dynastylab/rosterdoc/internal/platform/querybuilder"
)

type InjuryHistoryRepository struct {
	db *sqlx.DB
}

func NewInjuryHistoryRepository(db *sqlx.DB) *InjuryHistoryRepository {
	return &InjuryHistoryRepository{db: db}
}

func (r *InjuryHistoryRepository) GetByPlayerName(ctx context.Context, playerName string) (injury.History, bool, error) {
	key := playerNameKey(playerName)

	query, args, err := qb.Select("*").From("injury_histories").
		Where(
			qb.Eq("player_name_key", key),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return injury.History{}, false, fmt.Errorf("build get injury history query: %w", err)
	}

	var row injuryHistoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return injury.History{}, false, nil
		}
		return injury.History{}, false, fmt.Errorf("get injury history: %w", err)
	}

	gamesPlayed, err := r.selectSeasonGames(ctx, key)
	if err != nil {
		return injury.History{}, false, err
	}
	records, err := r.selectRecords(ctx, key)
	if err != nil {
		return injury.History{}, false, err
	}

	return injury.History{
		PlayerName:      row.PlayerName,
		GamesPlayed:     gamesPlayed,
		Injuries:        records,
		MajorInjuryDate: nullTimeToTimePtr(row.MajorInjuryDate),
		MajorInjuryType: injury.Type(nullStringToString(row.MajorInjuryType)),
		Notes:           row.Notes,
	}, true, nil
}

func (r *InjuryHistoryRepository) selectSeasonGames(ctx context.Context, key string) (map[int]int, error) {
	query, args, err := qb.Select("*").From("injury_season_games").
		Where(
			qb.Eq("player_name_key", key),
			qb.IsNull("deleted_at"),
		).
		OrderBy("season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season games query: %w", err)
	}

	var rows []injurySeasonGamesTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season games: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make(map[int]int, len(rows))
	for _, row := range rows {
		out[row.Season] = row.GamesPlayed
	}

	return out, nil
}

func (r *InjuryHistoryRepository) selectRecords(ctx context.Context, key string) ([]injury.Record, error) {
	query, args, err := qb.Select("*").From("injury_records").
		Where(
			qb.Eq("player_name_key", key),
			qb.IsNull("deleted_at"),
		).
		OrderBy("season", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select injury records query: %w", err)
	}

	var rows []injuryRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select injury records: %w", err)
	}

	out := make([]injury.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, injury.Record{
			Season:      row.Season,
			Type:        injury.Type(row.InjuryType),
			GamesMissed: row.GamesMissed,
			IsMajor:     row.IsMajor,
		})
	}

	return out, nil
}

// Upsert replaces the stored history for a player. Season games and injury
// records are soft-deleted and rewritten so removed rows never leak into the
// next read.
func (r *InjuryHistoryRepository) Upsert(ctx context.Context, history injury.History) error {
	key := playerNameKey(history.PlayerName)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for injury history upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertHistoryQuery = `
INSERT INTO injury_histories (player_name, player_name_key, major_injury_date, major_injury_type, notes)
VALUES (:player_name, :player_name_key, :major_injury_date, :major_injury_type, :notes)
ON CONFLICT (player_name_key) WHERE deleted_at IS NULL
DO UPDATE SET
    player_name = EXCLUDED.player_name,
    major_injury_date = EXCLUDED.major_injury_date,
    major_injury_type = EXCLUDED.major_injury_type,
    notes = EXCLUDED.notes,
    updated_at = NOW(),
    deleted_at = NULL`

	var majorType any
	if history.MajorInjuryType != "" {
		majorType = string(history.MajorInjuryType)
	}
	var majorDate any
	if history.MajorInjuryDate != nil {
		majorDate = *history.MajorInjuryDate
	}

	historySQL, historyArgs, err := sqlx.Named(upsertHistoryQuery, map[string]any{
		"player_name":       strings.TrimSpace(history.PlayerName),
		"player_name_key":   key,
		"major_injury_date": majorDate,
		"major_injury_type": majorType,
		"notes":             history.Notes,
	})
	if err != nil {
		return fmt.Errorf("bind upsert injury history query: %w", err)
	}
	historySQL = tx.Rebind(historySQL)
	if _, err := tx.ExecContext(ctx, historySQL, historyArgs...); err != nil {
		return fmt.Errorf("upsert injury history: %w", err)
	}

	for _, table := range []string{"injury_season_games", "injury_records"} {
		clearSQL, clearArgs, err := sqlx.Named(
			"UPDATE "+table+" SET deleted_at = NOW() WHERE player_name_key = :player_name_key AND deleted_at IS NULL",
			map[string]any{"player_name_key": key},
		)
		if err != nil {
			return fmt.Errorf("bind clear %s query: %w", table, err)
		}
		clearSQL = tx.Rebind(clearSQL)
		if _, err := tx.ExecContext(ctx, clearSQL, clearArgs...); err != nil {
			return fmt.Errorf("soft delete existing %s: %w", table, err)
		}
	}

	const upsertSeasonQuery = `
INSERT INTO injury_season_games (player_name_key, season, games_played)
VALUES (:player_name_key, :season, :games_played)
ON CONFLICT (player_name_key, season) WHERE deleted_at IS NULL
DO UPDATE SET
    games_played = EXCLUDED.games_played,
    updated_at = NOW(),
    deleted_at = NULL`

	seasons := make([]int, 0, len(history.GamesPlayed))
	for season := range history.GamesPlayed {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	for _, season := range seasons {
		seasonSQL, seasonArgs, err := sqlx.Named(upsertSeasonQuery, map[string]any{
			"player_name_key": key,
			"season":          season,
			"games_played":    history.GamesPlayed[season],
		})
		if err != nil {
			return fmt.Errorf("bind upsert season games season=%d query: %w", season, err)
		}
		seasonSQL = tx.Rebind(seasonSQL)
		if _, err := tx.ExecContext(ctx, seasonSQL, seasonArgs...); err != nil {
			return fmt.Errorf("upsert season games season=%d: %w", season, err)
		}
	}

	const insertRecordQuery = `
INSERT INTO injury_records (player_name_key, season, injury_type, games_missed, is_major)
VALUES (:player_name_key, :season, :injury_type, :games_missed, :is_major)`

	for _, record := range history.Injuries {
		recordSQL, recordArgs, err := sqlx.Named(insertRecordQuery, map[string]any{
			"player_name_key": key,
			"season":          record.Season,
			"injury_type":     string(record.Type),
			"games_missed":    record.GamesMissed,
			"is_major":        record.IsMajor,
		})
		if err != nil {
			return fmt.Errorf("bind insert injury record season=%d query: %w", record.Season, err)
		}
		recordSQL = tx.Rebind(recordSQL)
		if _, err := tx.ExecContext(ctx, recordSQL, recordArgs...); err != nil {
			return fmt.Errorf("insert injury record season=%d: %w", record.Season, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit injury history upsert tx: %w", err)
	}

	return nil
}

func playerNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
