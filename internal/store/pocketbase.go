package store

import (
	"context"

	"daycounter/internal/db"
)

// PocketBase stores keys as records of the settings collection.
type PocketBase struct {
	manager *db.Manager
}

func NewPocketBase(manager *db.Manager) *PocketBase {
	return &PocketBase{manager: manager}
}

func (p *PocketBase) Get(ctx context.Context, key string) (string, bool, error) {
	rec, err := p.manager.GetSetting(ctx, key)
	if err != nil {
		return "", false, err
	}
	if rec == nil {
		return "", false, nil
	}
	return rec.Value, true, nil
}

func (p *PocketBase) Set(ctx context.Context, key, value string) error {
	return p.manager.PutSetting(ctx, key, value)
}

func (p *PocketBase) Remove(ctx context.Context, key string) error {
	return p.manager.DeleteSetting(ctx, key)
}

func (p *PocketBase) Close() error {
	p.manager.Client.CloseIdleConnections()
	return nil
}
