package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mchmarny/currentmenu/pkg/menu"
	"github.com/mchmarny/currentmenu/pkg/site"
)

// DefaultRedisPrefix is the key prefix used when none is given.
const DefaultRedisPrefix = "currentmenu"

// RedisStore serves menus and site objects kept in Redis.
//
// Layout, for prefix p:
//
//	p:menus             hash  menu id -> menu JSON (no items)
//	p:menu:<id>:items   string JSON array of entries
//	p:objects           hash  "<kind>:<id>" -> object JSON
//	p:urls              hash  url -> "<kind>:<id>"
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisStoreFromURL connects using a redis:// URL.
func NewRedisStoreFromURL(url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return NewRedisStore(redis.NewClient(opts), prefix), nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ready pings Redis.
func (s *RedisStore) Ready(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) menusKey() string   { return s.prefix + ":menus" }
func (s *RedisStore) objectsKey() string { return s.prefix + ":objects" }
func (s *RedisStore) urlsKey() string    { return s.prefix + ":urls" }

func (s *RedisStore) itemsKey(id int64) string {
	return fmt.Sprintf("%s:menu:%d:items", s.prefix, id)
}

func objectField(kind menu.ObjectType, id int64) string {
	return string(kind) + ":" + strconv.FormatInt(id, 10)
}

// Menus returns all menus ordered by name.
func (s *RedisStore) Menus(ctx context.Context) ([]menu.Menu, error) {
	vals, err := s.client.HVals(ctx, s.menusKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	out := make([]menu.Menu, 0, len(vals))
	for _, v := range vals {
		var m menu.Menu
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("failed to decode menu: %w", err)
		}
		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b menu.Menu) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	return out, nil
}

func (s *RedisStore) Menu(ctx context.Context, id int64) (menu.Menu, error) {
	v, err := s.client.HGet(ctx, s.menusKey(), strconv.FormatInt(id, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return menu.Menu{}, fmt.Errorf("menu %d: %w", id, ErrMenuNotFound)
	}
	if err != nil {
		return menu.Menu{}, fmt.Errorf("failed to get menu %d: %w", id, err)
	}

	var m menu.Menu
	if err := json.Unmarshal([]byte(v), &m); err != nil {
		return menu.Menu{}, fmt.Errorf("failed to decode menu %d: %w", id, err)
	}

	return m, nil
}

func (s *RedisStore) Items(ctx context.Context, menuID int64) ([]menu.Item, error) {
	v, err := s.client.Get(ctx, s.itemsKey(menuID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("menu %d: %w", menuID, ErrMenuNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get items of menu %d: %w", menuID, err)
	}

	var items []menu.Item
	if err := json.Unmarshal([]byte(v), &items); err != nil {
		return nil, fmt.Errorf("failed to decode items of menu %d: %w", menuID, err)
	}

	return items, nil
}

func (s *RedisStore) ObjectByURL(ctx context.Context, url string) (site.Object, bool, error) {
	field, err := s.client.HGet(ctx, s.urlsKey(), url).Result()
	if errors.Is(err, redis.Nil) {
		return site.Object{}, false, nil
	}
	if err != nil {
		return site.Object{}, false, fmt.Errorf("failed to get url %q: %w", url, err)
	}

	return s.object(ctx, field)
}

func (s *RedisStore) Object(ctx context.Context, kind menu.ObjectType, id int64) (site.Object, bool, error) {
	return s.object(ctx, objectField(kind, id))
}

func (s *RedisStore) object(ctx context.Context, field string) (site.Object, bool, error) {
	v, err := s.client.HGet(ctx, s.objectsKey(), field).Result()
	if errors.Is(err, redis.Nil) {
		return site.Object{}, false, nil
	}
	if err != nil {
		return site.Object{}, false, fmt.Errorf("failed to get object %s: %w", field, err)
	}

	var o site.Object
	if err := json.Unmarshal([]byte(v), &o); err != nil {
		return site.Object{}, false, fmt.Errorf("failed to decode object %s: %w", field, err)
	}

	return o, true, nil
}

// maxImportAttempts bounds the retries of an import losing a race with another import.
const maxImportAttempts = 16

// Import replaces the stored site with doc in a single transaction. The menu list is
// watched while the old entry keys are collected, so a concurrent import makes the
// transaction retry instead of leaving stale keys behind.
func (s *RedisStore) Import(ctx context.Context, doc *site.Document) error {
	for range maxImportAttempts {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			return s.replace(ctx, tx, doc)
		}, s.menusKey())
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to import site: %w", err)
		}

		return nil
	}

	return fmt.Errorf("failed to import site after %d attempts: %w", maxImportAttempts, redis.TxFailedErr)
}

func (s *RedisStore) replace(ctx context.Context, tx *redis.Tx, doc *site.Document) error {
	old, err := tx.HKeys(ctx, s.menusKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to list existing menus: %w", err)
	}

	del := []string{s.menusKey(), s.objectsKey(), s.urlsKey()}
	for _, k := range old {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		del = append(del, s.itemsKey(id))
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, del...)

		for _, m := range doc.Menus {
			head, err := json.Marshal(menu.Menu{ID: m.ID, Name: m.Name})
			if err != nil {
				return err
			}

			items := m.Items
			if items == nil {
				items = []menu.Item{}
			}

			body, err := json.Marshal(items)
			if err != nil {
				return err
			}

			pipe.HSet(ctx, s.menusKey(), strconv.FormatInt(m.ID, 10), head)
			pipe.Set(ctx, s.itemsKey(m.ID), body, 0)
		}

		urls := make(map[string]bool)
		for _, o := range doc.Objects() {
			body, err := json.Marshal(o)
			if err != nil {
				return err
			}

			field := objectField(o.Kind, o.ID)
			pipe.HSet(ctx, s.objectsKey(), field, body)

			if o.URL != "" && !urls[o.URL] {
				urls[o.URL] = true
				pipe.HSet(ctx, s.urlsKey(), o.URL, field)
			}
		}

		return nil
	})

	return err
}
