package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"github.com/txn2/catalog-go/pkg/asset"
)

// RetriesInterruptedError reports that a restore's polling loop was cut
// short by context cancellation before the asset left the DELETED state.
type RetriesInterruptedError struct {
	TypeName      string
	QualifiedName string
	Err           error
}

func (e *RetriesInterruptedError) Error() string {
	return fmt.Sprintf("restore %s %s interrupted: %v", e.TypeName, e.QualifiedName, e.Err)
}

func (e *RetriesInterruptedError) Unwrap() error { return e.Err }

var errStillActive = errors.New("asset not yet deleted")

// Restore returns a soft-deleted asset to the ACTIVE state. Deletion is
// asynchronous on the catalog side, so the asset may still read as ACTIVE
// immediately after a delete call; Restore polls with exponential backoff
// until the asset reports DELETED, then issues the restore. Exhausting the
// retry budget while the asset still reads ACTIVE is treated as success,
// since an active asset needs no restoring.
func (c *Catalog) Restore(ctx context.Context, typeName, qualifiedName string) (bool, error) {
	if typeName == "" || qualifiedName == "" {
		return false, fmt.Errorf("restore: %w", asset.ErrMissingIdentity)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(backoff.WithInitialInterval(c.restoreInterval)),
		uint64(c.maxRestoreRetries),
	), ctx)

	restored := false
	op := func() error {
		current, err := c.GetByQualifiedName(ctx, typeName, qualifiedName)
		if err != nil {
			return backoff.Permanent(err)
		}
		if current.Status != asset.StatusDeleted {
			c.logger.Debug("asset not yet deleted, polling",
				"typeName", typeName,
				"qualifiedName", qualifiedName,
				"status", current.Status)
			return errStillActive
		}
		if _, err := c.client.Restore(ctx, asset.NewUpdate(current)); err != nil {
			return backoff.Permanent(fmt.Errorf("restore %s %s: %w", typeName, qualifiedName, err))
		}
		restored = true
		return nil
	}

	err := backoff.Retry(op, policy)
	switch {
	case err == nil:
		return restored, nil
	case errors.Is(err, errStillActive):
		// Retry budget spent while the asset never read DELETED.
		return false, nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return false, &RetriesInterruptedError{TypeName: typeName, QualifiedName: qualifiedName, Err: err}
	default:
		return false, err
	}
}
