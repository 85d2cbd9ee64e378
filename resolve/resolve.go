// Package resolve turns numeric user and group ids into display names.
package resolve

import (
	"os/user"
	"strconv"
)

// Cache memoizes id lookups for the duration of one run. An id the system
// database does not know degrades to its decimal string; that is not an
// error, reproduction commands accept numeric ids just as well.
//
// Cache is not safe for concurrent use. Construct one per run and pass it
// to whichever renderer needs it.
type Cache struct {
	users  map[uint32]string
	groups map[uint32]string

	// overridable for tests
	lookupUser  func(uid string) (string, error)
	lookupGroup func(gid string) (string, error)
}

func NewCache() *Cache {
	return &Cache{
		users:  map[uint32]string{},
		groups: map[uint32]string{},
		lookupUser: func(uid string) (string, error) {
			u, err := user.LookupId(uid)
			if err != nil {
				return "", err
			}
			return u.Username, nil
		},
		lookupGroup: func(gid string) (string, error) {
			g, err := user.LookupGroupId(gid)
			if err != nil {
				return "", err
			}
			return g.Name, nil
		},
	}
}

// NewCacheFuncs builds a Cache over custom lookup functions, so callers
// and tests are not tied to the host's identity database.
func NewCacheFuncs(user, group func(id string) (string, error)) *Cache {
	c := NewCache()
	c.lookupUser = user
	c.lookupGroup = group
	return c
}

func (c *Cache) UserName(uid uint32) string {
	if name, ok := c.users[uid]; ok {
		return name
	}
	name, err := c.lookupUser(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		name = strconv.FormatUint(uint64(uid), 10)
	}
	c.users[uid] = name
	return name
}

func (c *Cache) GroupName(gid uint32) string {
	if name, ok := c.groups[gid]; ok {
		return name
	}
	name, err := c.lookupGroup(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		name = strconv.FormatUint(uint64(gid), 10)
	}
	c.groups[gid] = name
	return name
}
