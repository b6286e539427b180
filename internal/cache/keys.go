package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix = "post:%d"
	CategoriesKey = "categories"
	StatusesKey   = "statuses"
)

const (
	PostTTL       = 10 * time.Minute
	CategoriesTTL = 30 * time.Minute
	StatusesTTL   = 12 * time.Hour
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoriesKey)
}
