package vault

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type writeJob struct {
	path string
	data []byte
}

// persister is a single serial background writer. Jobs are applied in
// submission order, so the last write to a file always carries the most
// recent state. Failed writes are logged and dropped; durability lags
// the in-memory state by at most the pending queue.
type persister struct {
	jobs chan writeJob
	done chan struct{}
}

func newPersister() *persister {
	p := &persister{
		jobs: make(chan writeJob, 64),
		done: make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) run() {
	defer close(p.done)
	for job := range p.jobs {
		if err := writeFileAtomic(job.path, job.data); err != nil {
			slog.Error("vault write failed", "path", job.path, "error", err)
		}
	}
}

// submit queues a write. Callers never wait for the disk.
func (p *persister) submit(path string, data []byte) {
	p.jobs <- writeJob{path: path, data: data}
}

// close drains the queue and waits for the final write to land.
func (p *persister) close() {
	close(p.jobs)
	<-p.done
}

// writeFileAtomic writes via a temp file and rename so a crash mid-write
// never leaves a truncated collection on disk.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
