package persistence

import (
	"fmt"
	"os"
	"time"

	"github.com/MrPickle311/database/lib/db"
	"github.com/MrPickle311/database/lib/logger"
	"github.com/VictoriaMetrics/metrics"
	"github.com/gofrs/flock"
)

var log = logger.GetLogger("persistence")

var snapshotDuration = metrics.NewSummary("db_snapshot_duration_seconds")

// --------------------------------------------------------------------------
// Dumper
// --------------------------------------------------------------------------

// Dumper periodically writes a full snapshot of the stores to a file and
// restores it at startup. Snapshot IO is blocking; if a dump outlives its
// interval the next tick fires immediately after.
//
// A file lock guards the snapshot path so two processes pointed at the
// same file never interleave their writes.
type Dumper struct {
	stores *db.Stores
	path   string
	period time.Duration
	fl     *flock.Flock
	stop   chan struct{}
	done   chan struct{}
}

// NewDumper creates a dumper for the given stores, file path and period.
func NewDumper(stores *db.Stores, path string, period time.Duration) *Dumper {
	return &Dumper{
		stores: stores,
		path:   path,
		period: period,
		fl:     flock.New(path + ".lock"),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Restore loads the snapshot file into the stores. A missing file is not
// an error, the server simply starts empty. A corrupt file is fatal to
// startup.
func (d *Dumper) Restore() error {
	f, err := os.Open(d.path)
	if os.IsNotExist(err) {
		log.Infof("No snapshot at %s, starting empty", d.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open snapshot %s: %v", d.path, err)
	}
	defer f.Close()

	if err := Load(d.stores, f); err != nil {
		return err
	}
	log.Infof("Restored %d keys from %s", d.stores.KeySpace.Size(), d.path)
	return nil
}

// Start launches the periodic dump loop in a background goroutine.
func (d *Dumper) Start() {
	go d.run()
}

// Stop ends the loop and writes one final snapshot.
func (d *Dumper) Stop() {
	close(d.stop)
	<-d.done
}

// Dump writes one snapshot to the configured path under the file lock.
//
// Thread-safety: This method is thread-safe and can be called concurrently
// with store operations.
func (d *Dumper) Dump() error {
	start := time.Now()
	defer snapshotDuration.UpdateDuration(start)

	if err := d.fl.Lock(); err != nil {
		return fmt.Errorf("cannot lock snapshot file: %v", err)
	}
	defer d.fl.Unlock()

	f, err := os.Create(d.path)
	if err != nil {
		return fmt.Errorf("cannot create snapshot %s: %v", d.path, err)
	}

	if err := Save(d.stores, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// run is the dump loop. It dumps on every tick until Stop is called, then
// writes a final snapshot before signalling completion.
func (d *Dumper) run() {
	defer close(d.done)

	ticker := time.NewTicker(d.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.Dump(); err != nil {
				log.Errorf("Snapshot failed: %v", err)
			} else {
				log.Debugf("Snapshot written to %s", d.path)
			}
		case <-d.stop:
			if err := d.Dump(); err != nil {
				log.Errorf("Final snapshot failed: %v", err)
			} else {
				log.Infof("Final snapshot written to %s", d.path)
			}
			return
		}
	}
}
