// Package storage journals executed swap and bridge outcomes.
package storage

import (
	"context"
	"errors"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

// Journal is a sink for outcome records.
type Journal interface {
	PutOutcomes(ctx context.Context, records []model.OutcomeRecord) error
}

// MultiJournal writes every batch to all journals and joins their errors.
type MultiJournal []Journal

func (m MultiJournal) PutOutcomes(ctx context.Context, records []model.OutcomeRecord) error {
	var errs []error
	for _, j := range m {
		if j == nil {
			continue
		}
		if err := j.PutOutcomes(ctx, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
