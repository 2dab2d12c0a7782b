package tournament

import (
	"encoding/gob"
	"os"
)

// Checkpoint holds enough state to resume a round-robin that was
// interrupted partway through, grounded on pkg/result.Checkpoint.
type Checkpoint struct {
	Records        map[string]*Record
	CompletedPairs int
	TotalPairs     int
}

func init() {
	gob.Register(Record{})
}

// SaveCheckpoint writes the table's current standings and progress to
// path.
func SaveCheckpoint(path string, t *Table, completed, total int) error {
	t.mu.Lock()
	snapshot := make(map[string]*Record, len(t.records))
	for k, v := range t.records {
		cp := *v
		snapshot[k] = &cp
	}
	t.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ckpt := Checkpoint{Records: snapshot, CompletedPairs: completed, TotalPairs: total}
	return gob.NewEncoder(f).Encode(&ckpt)
}

// LoadCheckpoint restores a Table and the pairing progress from path.
func LoadCheckpoint(path string) (*Table, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, 0, 0, err
	}
	return &Table{records: ckpt.Records}, ckpt.CompletedPairs, ckpt.TotalPairs, nil
}
