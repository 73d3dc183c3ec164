package cmd

import (
	"time"

	"builderid/core"
	"builderid/store/builder"

	"github.com/fox-one/pkg/store/db"
	// postgres driver
	_ "github.com/lib/pq"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideBuilderStore(db *db.DB) core.BuilderStore {
	return builder.New(db)
}

func provideCachedBuilderStore(db *db.DB) core.BuilderStore {
	return builder.Cache(builder.New(db), time.Minute)
}
