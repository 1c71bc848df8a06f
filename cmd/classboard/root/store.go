package root

import (
	"context"

	"classboard/internal/engine"
	"classboard/internal/storage"
)

func openStore(ctx context.Context) (storage.Store, func(), error) {
	path, err := storage.ResolveDataPath(dataPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}
	return store, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	store, cleanup, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc, err := engine.NewService(ctx, store)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
