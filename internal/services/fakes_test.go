package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"lab-timesheet/internal/model"
)

type memoryPersistence struct {
	mu       sync.Mutex
	snapshot model.Snapshot
	saves    int
	failSave bool
}

func (m *memoryPersistence) Load(context.Context) (model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot.Clone(), nil
}

func (m *memoryPersistence) Save(_ context.Context, snapshot model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("disk full")
	}
	m.snapshot = snapshot.Clone()
	m.saves++
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func hours(h float64) *float64 {
	return &h
}
