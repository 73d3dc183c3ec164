package builder

import (
	"context"
	"fmt"
	"time"

	"builderid/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps store with a time-bounded cache over Find, List and Count
// for display reads. The orchestrator's security path must use the
// undecorated store: records are immutable but the absence of a record is
// only trustworthy at the source.
func Cache(store core.BuilderStore, exp time.Duration) core.BuilderStore {
	return &cacheBuilderStore{
		BuilderStore: store,
		cache:        gcache.New(2048).LRU().Expiration(exp).Build(),
		lists:        gcache.New(64).LRU().Expiration(exp).Build(),
		sf:           &singleflight.Group{},
	}
}

type cacheBuilderStore struct {
	core.BuilderStore
	cache gcache.Cache
	lists gcache.Cache // purged whole on Save, pages go stale together
	sf    *singleflight.Group
}

func (s *cacheBuilderStore) Save(ctx context.Context, record *core.BuilderID) error {
	if err := s.BuilderStore.Save(ctx, record); err != nil {
		return err
	}

	s.cache.Set(s.fidKey(record.FID), record)
	s.cache.Remove(s.countKey())
	s.lists.Purge()
	return nil
}

func (s *cacheBuilderStore) Find(ctx context.Context, fid int64) (*core.BuilderID, error) {
	key := s.fidKey(fid)
	if v, err := s.cache.Get(key); err == nil {
		if record, ok := v.(*core.BuilderID); ok {
			return record, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		record, err := s.BuilderStore.Find(ctx, fid)
		if err != nil {
			return nil, err
		}
		if record.ID > 0 {
			s.cache.Set(key, record)
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.BuilderID), nil
}

func (s *cacheBuilderStore) List(ctx context.Context, limit, offset int) ([]*core.BuilderID, error) {
	key := s.listKey(limit, offset)
	if v, err := s.lists.Get(key); err == nil {
		if records, ok := v.([]*core.BuilderID); ok {
			return records, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		records, err := s.BuilderStore.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		s.lists.Set(key, records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.BuilderID), nil
}

func (s *cacheBuilderStore) Count(ctx context.Context) (int64, error) {
	key := s.countKey()
	if v, err := s.cache.Get(key); err == nil {
		if count, ok := v.(int64); ok {
			return count, nil
		}
	}

	count, err := s.BuilderStore.Count(ctx)
	if err != nil {
		return 0, err
	}

	s.cache.Set(key, count)
	return count, nil
}

func (s *cacheBuilderStore) fidKey(fid int64) string {
	return fmt.Sprintf("builder:fid:%d", fid)
}

func (s *cacheBuilderStore) countKey() string {
	return "builder:count"
}

func (s *cacheBuilderStore) listKey(limit, offset int) string {
	return fmt.Sprintf("builder:list:%d:%d", limit, offset)
}
