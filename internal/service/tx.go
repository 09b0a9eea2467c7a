package service

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

const fechaLayout = "2006-01-02"

// parseFecha parses an already-validated yyyy-mm-dd string (validator tag
// datetime=2006-01-02 ran first, so the error path is unreachable in practice).
func parseFecha(s string) time.Time {
	t, _ := time.Parse(fechaLayout, s)
	return t
}

func parseFechaPtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := parseFecha(*s)
	return &t
}

func fmtFecha(t time.Time) string { return t.Format(fechaLayout) }

func fmtFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaLayout)
	return &s
}
