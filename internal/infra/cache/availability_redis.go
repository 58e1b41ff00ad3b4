package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	keyPrefix = "availability:"
	genPrefix = keyPrefix + "gen:"

	// globalGenKey muda a cada flush total.
	globalGenKey = genPrefix + "all"

	// genTTL só precisa cobrir o tempo entre ler a versão e gravar a grade.
	genTTL = 48 * time.Hour
)

var errStaleVersion = errors.New("availability: stale version")

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// AvailabilityRedisCache guarda a grade de horários já calculada. Cada
// barbeiro/dia tem um set com as chaves de todos os serviços, para a
// invalidação não depender de SCAN, e um contador de geração que a
// invalidação incrementa. Set só grava se a geração lida antes do cálculo
// ainda for a atual.
type AvailabilityRedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityRedisCache(rdb *redis.Client, ttl time.Duration) *AvailabilityRedisCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AvailabilityRedisCache{rdb: rdb, ttl: ttl}
}

func SlotsKey(in domain.AvailabilityInput) string {
	return fmt.Sprintf("%s%d:%d:%s", keyPrefix, in.BarberID, in.ServiceID, timezone.FormatDate(in.Date))
}

func indexKey(barberID uint, date time.Time) string {
	return fmt.Sprintf("%sindex:%d:%s", keyPrefix, barberID, timezone.FormatDate(date))
}

func genKey(barberID uint, date time.Time) string {
	return fmt.Sprintf("%s%d:%s", genPrefix, barberID, timezone.FormatDate(date))
}

// versionToken junta os contadores global e do barbeiro/dia; chave ausente vale 0.
func versionToken(vals []interface{}) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		s, _ := v.(string)
		if s == "" {
			s = "0"
		}
		parts[i] = s
	}
	return strings.Join(parts, ".")
}

type mgetFunc func(ctx context.Context, keys ...string) *redis.SliceCmd

func readVersion(ctx context.Context, mget mgetFunc, barberID uint, date time.Time) (string, error) {
	vals, err := mget(ctx, globalGenKey, genKey(barberID, date)).Result()
	if err != nil {
		return "", err
	}
	return versionToken(vals), nil
}

func (c *AvailabilityRedisCache) Get(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.AvailableSlot, bool, error) {

	raw, err := c.rdb.Get(ctx, SlotsKey(in)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var slots []domain.AvailableSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false, err
	}
	return slots, true, nil
}

func (c *AvailabilityRedisCache) Version(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (string, error) {
	return readVersion(ctx, c.rdb.MGet, barberID, date)
}

func (c *AvailabilityRedisCache) Set(
	ctx context.Context,
	in domain.AvailabilityInput,
	version string,
	slots []domain.AvailableSlot,
) error {

	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	key := SlotsKey(in)
	idx := indexKey(in.BarberID, in.Date)
	gen := genKey(in.BarberID, in.Date)

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx.MGet, in.BarberID, in.Date)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleVersion
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.ttl)
			pipe.SAdd(ctx, idx, key)
			pipe.Expire(ctx, idx, c.ttl)
			return nil
		})
		return err
	}, globalGenKey, gen)

	// grade calculada antes de uma invalidação: descarta
	if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *AvailabilityRedisCache) DeleteBarberDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) error {

	gen := genKey(barberID, date)
	idx := indexKey(barberID, date)

	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, gen)
	pipe.Expire(ctx, gen, genTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	keys, err := c.rdb.SMembers(ctx, idx).Result()
	if err != nil {
		return err
	}

	return c.rdb.Del(ctx, append(keys, idx)...).Err()
}

// DeleteAll é usado quando o expediente muda.
func (c *AvailabilityRedisCache) DeleteAll(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, globalGenKey).Err(); err != nil {
		return err
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", 200).Result()
		if err != nil {
			return err
		}
		if stale := withoutGenerations(keys); len(stale) > 0 {
			if err := c.rdb.Del(ctx, stale...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func withoutGenerations(keys []string) []string {
	out := keys[:0]
	for _, k := range keys {
		if !strings.HasPrefix(k, genPrefix) {
			out = append(out, k)
		}
	}
	return out
}

// ======================================================
// Noop
// ======================================================

// Noop é usado quando REDIS_URL não está definido.
type Noop struct{}

func (Noop) Get(context.Context, domain.AvailabilityInput) ([]domain.AvailableSlot, bool, error) {
	return nil, false, nil
}

func (Noop) Version(context.Context, uint, time.Time) (string, error) { return "", nil }

func (Noop) Set(context.Context, domain.AvailabilityInput, string, []domain.AvailableSlot) error {
	return nil
}

func (Noop) DeleteBarberDate(context.Context, uint, time.Time) error { return nil }

func (Noop) DeleteAll(context.Context) error { return nil }
