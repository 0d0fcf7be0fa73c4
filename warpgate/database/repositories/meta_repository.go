package repositories

import (
	"context"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/uptrace/bun"
)

type MetaRepository interface {
	economy.MetaStore
}

type metaRepository struct {
	BaseRepository
}

func NewMetaRepository(db bun.IDB) MetaRepository {
	return &metaRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *metaRepository) Get(ctx context.Context, key string) (string, error) {
	m := new(models.AppMeta)
	err := r.db.NewSelect().
		Model(m).
		Where("am.key = ?", key).
		Scan(ctx)
	if err != nil {
		return "", r.HandleError("get", "app meta", err)
	}
	return m.Value, nil
}

func (r *metaRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.NewInsert().
		Model(&models.AppMeta{Key: key, Value: value}).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return r.HandleError("set", "app meta", err)
}
