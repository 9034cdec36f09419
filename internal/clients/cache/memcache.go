package cache

import (
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

const (
	keyPrefix  = "summary"
	versionKey = keyPrefix + ":version"

	reportExpiration = int32(7 * 24 * time.Hour / time.Second)
)

type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

func formatKey(version uint64, key string) string {
	return keyPrefix + ":" + strconv.FormatUint(version, 10) + ":" + key
}

// version is bumped on every invalidation, so stale keys are never read again.
func (mc *MemcacheClient) version() (uint64, error) {
	item, err := mc.client.Get(versionKey)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(string(item.Value), 10, 64)
}

// CacheReport stores the report for a week at most. Keys of older periods and rate
// tables are never asked for again, so they only need to expire.
func (mc *MemcacheClient) CacheReport(key, report string) error {
	logger.Info("cache report", zap.String("key", key))
	v, err := mc.version()
	if err != nil {
		return errors.Wrap(err, "cache report")
	}
	return mc.client.Set(&memcache.Item{
		Key:        formatKey(v, key),
		Value:      []byte(report),
		Expiration: reportExpiration,
	})
}

// GetReport reports false on a cache miss.
func (mc *MemcacheClient) GetReport(key string) (string, bool, error) {
	logger.Info("get report from cache", zap.String("key", key))
	v, err := mc.version()
	if err != nil {
		return "", false, errors.Wrap(err, "get report")
	}
	item, err := mc.client.Get(formatKey(v, key))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "get report")
	}
	return string(item.Value), true, nil
}

func (mc *MemcacheClient) Invalidate() error {
	logger.Info("invalidate cache")

	_, err := mc.client.Increment(versionKey, 1)
	if errors.Is(err, memcache.ErrCacheMiss) {
		err = mc.client.Add(&memcache.Item{Key: versionKey, Value: []byte("1")})
		if errors.Is(err, memcache.ErrNotStored) {
			_, err = mc.client.Increment(versionKey, 1)
		}
	}
	return errors.Wrap(err, "invalidate cache")
}
