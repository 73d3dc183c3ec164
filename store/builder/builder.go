package builder

import (
	"context"
	"strings"

	"builderid/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type builderStore struct {
	db *db.DB
}

// New new builder id store
func New(db *db.DB) core.BuilderStore {
	return &builderStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.BuilderID{})

		if err := tx.AutoMigrate(core.BuilderID{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_builder_ids_fid", "fid").Error; err != nil {
			return err
		}

		return nil
	})
}

// Save inserts the record. A second record for the same fid fails with
// ErrDuplicateClaim; the unique index on fid catches the race between the
// existence check and the insert.
func (s *builderStore) Save(ctx context.Context, record *core.BuilderID) error {
	return s.db.Tx(func(tx *db.DB) error {
		var existing core.BuilderID
		err := tx.Update().Where("fid = ?", record.FID).First(&existing).Error
		if err == nil {
			return core.ErrDuplicateClaim
		}

		if !store.IsErrNotFound(err) {
			return err
		}

		if err := tx.Update().Create(record).Error; err != nil {
			if isUniqueViolation(err) {
				return core.ErrDuplicateClaim
			}
			return err
		}

		return nil
	})
}

func (s *builderStore) Find(ctx context.Context, fid int64) (*core.BuilderID, error) {
	var record core.BuilderID

	err := s.db.View().Where("fid = ?", fid).First(&record).Error
	if store.IsErrNotFound(err) {
		return &core.BuilderID{}, nil
	}

	return &record, err
}

func (s *builderStore) Exists(ctx context.Context, fid int64) (bool, error) {
	record, err := s.Find(ctx, fid)
	if err != nil {
		return false, err
	}

	return record.ID > 0, nil
}

func (s *builderStore) List(ctx context.Context, limit, offset int) ([]*core.BuilderID, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []*core.BuilderID
	if err := s.db.View().Order("minted_at DESC").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (s *builderStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.BuilderID{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
