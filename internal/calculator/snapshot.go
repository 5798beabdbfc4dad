package calculator

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/mmynk/splitroom/internal/models"
)

// SnapshotKey returns a content hash of everything Settle reads from its
// inputs. Two snapshots with the same key produce the same Settlement, so
// the key can be used to memoize results.
func SnapshotKey(members []models.Member, expenses []models.Expense) string {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)

	writeUint(h, uint64(len(members)))
	for _, m := range members {
		writeString(h, m.ID)
		writeString(h, m.Name)
	}

	writeUint(h, uint64(len(expenses)))
	for _, e := range expenses {
		writeUint(h, uint64(e.Amount))
		writeString(h, e.PaidBy)
		writeUint(h, uint64(len(e.SplitAmong)))
		for _, id := range e.SplitAmong {
			writeString(h, id)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeString(h hash.Hash, s string) {
	writeUint(h, uint64(len(s)))
	h.Write([]byte(s))
}
