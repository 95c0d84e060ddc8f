package snapshot

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

const bucketSnapshots = "snapshots"

// BoltStore keeps snapshots in a bbolt database, keyed by big-endian
// sequence number so cursors walk them in commit order.
type BoltStore struct {
	db *bolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, vterrors.New("VT040").WithDetailf("open %s: %v", path, err).Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, vterrors.New("VT040").WithDetailf("init %s: %v", path, err).Wrap(err)
	}
	return &BoltStore{db: db}, nil
}

// Put implements Store.
func (s *BoltStore) Put(_ context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return writeFailed(snap.Seq, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put(marshalSeq(snap.Seq), data)
	})
	if err != nil {
		return writeFailed(snap.Seq, err)
	}
	return nil
}

// Get implements Store.
func (s *BoltStore) Get(_ context.Context, seq uint64) (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSnapshots)).Get(marshalSeq(seq))
		if v == nil {
			return notFound("seq %d", seq)
		}
		return json.Unmarshal(v, &snap)
	})
	return snap, err
}

// Latest implements Store.
func (s *BoltStore) Latest(_ context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		k, v := tx.Bucket([]byte(bucketSnapshots)).Cursor().Last()
		if k == nil {
			return notFound("store is empty")
		}
		return json.Unmarshal(v, &snap)
	})
	return snap, err
}

// Range calls fn for every snapshot with from <= Seq < upto, in order.
func (s *BoltStore) Range(from, upto uint64, fn func(Snapshot) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketSnapshots)).Cursor()
		for k, v := c.Seek(marshalSeq(from)); k != nil && unmarshalSeq(k) < upto; k, v = c.Next() {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return err
			}
			if err := fn(snap); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
