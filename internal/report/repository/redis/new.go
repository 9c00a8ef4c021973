package redis

import (
	"intelligence-srv/internal/report/repository"
	"intelligence-srv/pkg/log"
	pkgRedis "intelligence-srv/pkg/redis"
)

const (
	contentKeyPrefix = "intelligence:report:content:"
	lockKeyPrefix    = "intelligence:report:lock:"
)

type implCache struct {
	client pkgRedis.IRedis
	l      log.Logger
}

func New(client pkgRedis.IRedis, l log.Logger) repository.CacheRepository {
	return &implCache{client: client, l: l}
}
