package procfs

import (
	"os/user"
	"strconv"
	"sync"
)

// userCache resolves uids to login names. Failed lookups are cached as "".
type userCache struct {
	mu      sync.Mutex
	names   map[uint32]string
	resolve func(uid string) (*user.User, error)
}

func newUserCache() *userCache {
	return &userCache{
		names:   make(map[uint32]string),
		resolve: user.LookupId,
	}
}

func (c *userCache) lookup(uid uint32) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name, ok := c.names[uid]; ok {
		return name
	}
	name := ""
	if u, err := c.resolve(strconv.FormatUint(uint64(uid), 10)); err == nil {
		name = u.Username
	}
	c.names[uid] = name
	return name
}
