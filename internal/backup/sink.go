// ABOUTME: Destinations for full-collection backup snapshots.
// ABOUTME: Defines the Sink interface and backup object naming.
package backup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	namePrefix = "daylog-backup-"
	nameSuffix = ".json"
)

// ErrExists is returned when a backup name is already taken.
var ErrExists = errors.New("backup already exists")

// ErrNotFound is returned when a named backup does not exist.
var ErrNotFound = errors.New("backup not found")

// Sink stores backup snapshots by name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	// List returns backup names in ascending order, which is also chronological.
	List(ctx context.Context) ([]string, error)
}

// NewName returns a unique backup name stamped with t,
// e.g. daylog-backup-20240301-083000-1a2b3c4d.json.
func NewName(t time.Time) string {
	return fmt.Sprintf("%s%s-%s%s", namePrefix, t.Format("20060102-150405"), uuid.New().String()[:8], nameSuffix)
}

// IsBackupName reports whether name looks like a daylog backup.
func IsBackupName(name string) bool {
	return strings.HasPrefix(name, namePrefix) && strings.HasSuffix(name, nameSuffix) &&
		!strings.ContainsAny(name, `/\`)
}
