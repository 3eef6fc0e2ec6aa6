package server

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/calummace/rfband/pkg/band"
)

// selectCache memoizes select responses at the HTTP layer. The model
// itself stays stateless, so concurrent queries cannot interfere; the
// cache is a bounded LRU keyed by a hash of the normalized query. A nil
// *selectCache is a valid no-op cache.
type selectCache struct {
	lru *lru.Cache[uint64, selectResponse]
}

func newSelectCache(size int) *selectCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[uint64, selectResponse](size)
	if err != nil {
		return nil
	}
	return &selectCache{lru: c}
}

func (c *selectCache) get(q band.Query) (selectResponse, bool) {
	if c == nil {
		return selectResponse{}, false
	}
	return c.lru.Get(queryKey(q))
}

func (c *selectCache) put(q band.Query, resp selectResponse) {
	if c == nil {
		return
	}
	c.lru.Add(queryKey(q), resp)
}

// queryKey folds every query field into one hash; candidate order is
// significant (it is the search order).
func queryKey(q band.Query) uint64 {
	var b strings.Builder
	b.WriteString(strconv.Itoa(q.FreqKHz))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(q.BandwidthKHz))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(q.Direction)))
	for _, id := range q.Candidates {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(id))
	}
	return xxhash.Sum64String(b.String())
}
