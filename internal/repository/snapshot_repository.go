package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

// snapshotName keys the single snapshot row of this single-user service.
const snapshotName = "default"

// Snapshot is the persisted whole-tree row: the serialized board collection
// plus the current-board pointer.
type Snapshot struct {
	Name           string `gorm:"primaryKey"`
	Data           []byte `gorm:"type:jsonb;not null"`
	CurrentBoardID string `gorm:"column:current_board_id"`
	UpdatedAt      time.Time
}

func (Snapshot) TableName() string {
	return "board_snapshots"
}

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load reads the persisted snapshot. A missing row is "no persisted state"
// and yields an empty state without error.
func (r *SnapshotRepository) Load(ctx context.Context) (state.State, error) {
	var snap Snapshot
	if err := r.db.WithContext(ctx).First(&snap, "name = ?", snapshotName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return state.State{}, nil
		}
		return state.State{}, err
	}

	var boards []model.Board
	if err := json.Unmarshal(snap.Data, &boards); err != nil {
		return state.State{}, err
	}

	st := state.State{Boards: boards}
	if snap.CurrentBoardID != "" {
		if id, err := uuid.Parse(snap.CurrentBoardID); err == nil {
			st.CurrentBoardID = id
		}
	}
	return st, nil
}

// Save upserts the snapshot row, replacing the previous tree wholesale.
func (r *SnapshotRepository) Save(ctx context.Context, st state.State) error {
	data, err := json.Marshal(st.Boards)
	if err != nil {
		return err
	}

	current := ""
	if st.CurrentBoardID != uuid.Nil {
		current = st.CurrentBoardID.String()
	}

	snap := Snapshot{
		Name:           snapshotName,
		Data:           data,
		CurrentBoardID: current,
		UpdatedAt:      time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "current_board_id", "updated_at"}),
	}).Create(&snap).Error
}
