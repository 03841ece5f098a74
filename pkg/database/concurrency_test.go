package database

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentStatusWrites hammers a single row from many goroutines the way
// concurrent loan requests would. The pool has one connection, so every write
// must go through without "database is locked" errors.
func TestConcurrentStatusWrites(t *testing.T) {
	t.Parallel()

	db, err := New(newTestConfig(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE copies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		status INTEGER NOT NULL DEFAULT 0 CHECK (status IN (0, 1, 2, 3))
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO copies (status) VALUES (0)`)
	require.NoError(t, err)

	const numWorkers = 16
	const writesPerWorker = 25

	var wg sync.WaitGroup
	var failures atomic.Int32
	errs := make(chan error, numWorkers*writesPerWorker)

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := 0; i < writesPerWorker; i++ {
				_, err := db.Exec(`UPDATE copies SET status = ? WHERE id = 1`, (workerID+i)%4)
				if err != nil {
					failures.Add(1)
					errs <- fmt.Errorf("worker %d write %d: %w", workerID, i, err)
				}
			}
		}(w)
	}

	wg.Wait()
	close(errs)

	var all []error
	for err := range errs {
		all = append(all, err)
	}
	assert.Empty(t, all)
	assert.Equal(t, int32(0), failures.Load())

	var status int
	err = db.QueryRow(`SELECT status FROM copies WHERE id = 1`).Scan(&status)
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1, 2, 3}, status)
}
