package iofetch

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
)

// Cache is a key-value store of downloaded records keyed by their file
// name. It lets repeated runs skip the network for records that are
// already local.
type Cache struct {
	dir string
	db  *badger.DB
	enc gnfmt.Encoder
}

// cachedRecord is the value stored per accession.
type cachedRecord struct {
	FileName  string
	Data      []byte
	FetchedAt time.Time
}

// NewCache opens (creating if needed) a record cache in dir.
func NewCache(dir string) (*Cache, error) {
	if err := gnsys.MakeDir(dir); err != nil {
		return nil, CacheError(dir, err)
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, CacheError(dir, err)
	}
	return &Cache{dir: dir, db: db, enc: gnfmt.GNgob{}}, nil
}

func (c *Cache) Store(name string, data []byte) error {
	rec := cachedRecord{
		FileName:  name,
		Data:      data,
		FetchedAt: time.Now(),
	}
	val, err := c.enc.Encode(rec)
	if err != nil {
		return CacheError(c.dir, err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), val)
	})
	if err != nil {
		return CacheError(c.dir, err)
	}
	return nil
}

// Get returns the cached record data, or nil when the name is absent.
func (c *Cache) Get(name string) ([]byte, error) {
	var rec cachedRecord
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return c.enc.Decode(val, &rec)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, CacheError(c.dir, err)
	}
	return rec.Data, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
