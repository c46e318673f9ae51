package repository

import (
	"context"
)

// AvatarRepository stores avatar blobs. One object per user, overwritten on
// every upload.
type AvatarRepository interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (contentType string, data []byte, err error)
}

type avatarRepository struct {
	db Querier
}

// NewAvatarRepository instantiates the repository.
func NewAvatarRepository(db Querier) AvatarRepository {
	return &avatarRepository{db: db}
}

func (r *avatarRepository) Put(ctx context.Context, key, contentType string, data []byte) error {
	const query = `
        INSERT INTO avatars (key, content_type, data)
        VALUES ($1,$2,$3)
        ON CONFLICT (key) DO UPDATE SET content_type=EXCLUDED.content_type, data=EXCLUDED.data, updated_at=NOW()`

	_, err := r.db.Exec(ctx, query, key, contentType, data)
	return err
}

func (r *avatarRepository) Get(ctx context.Context, key string) (string, []byte, error) {
	const query = `SELECT content_type, data FROM avatars WHERE key=$1`

	var contentType string
	var data []byte
	if err := r.db.QueryRow(ctx, query, key).Scan(&contentType, &data); err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}
