// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package inventoryuc contains the inventory UseCase which keeps an
// in-memory mirror, aka the domain cache, of the cars and maintenance
// records collections of the REST backend. It supports:
//  1. Reloading both collections (full replacement, not merging),
//  2. Adding a car,
//  3. Adding a maintenance record,
//  4. Reloading the collections periodically in the background.
//
// Cached entities are enriched with derived fields, i.e., the number
// of maintenance records of each car and the resolved car label and
// age of each maintenance record. Published snapshots are immutable,
// so they may be read concurrently with no locking.
package inventoryuc

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/log"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/repo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Snapshot is an immutable state of the domain cache. Its slices must
// not be modified by the callers. CarsErr and RecordsErr report the
// failure of the last reload attempt of each collection (if any), while
// Cars and Records keep the contents of the last successful reload.
type Snapshot struct {
	Cars     []model.Car
	Records  []model.MaintenanceRecord
	LoadedAt time.Time // zero until the first successful reload

	CarsErr    error
	RecordsErr error
}

// Car returns the cached car with the given id.
func (s *Snapshot) Car(id int64) (model.Car, bool) {
	i := slices.IndexFunc(s.Cars, func(c model.Car) bool {
		return c.ID == id
	})
	if i < 0 {
		return model.Car{}, false
	}
	return s.Cars[i], true
}

// Record returns the cached maintenance record with the given id.
func (s *Snapshot) Record(id int64) (model.MaintenanceRecord, bool) {
	i := slices.IndexFunc(s.Records, func(r model.MaintenanceRecord) bool {
		return r.ID == id
	})
	if i < 0 {
		return model.MaintenanceRecord{}, false
	}
	return s.Records[i], true
}

// RecordsOf returns the cached maintenance records of the car with
// the given id, keeping their cached order.
func (s *Snapshot) RecordsOf(carID int64) []model.MaintenanceRecord {
	var rs []model.MaintenanceRecord
	for _, r := range s.Records {
		if r.Car.ID == carID {
			rs = append(rs, r)
		}
	}
	return rs
}

// UseCase represents the inventory use case. It holds the backend
// repository and the currently published snapshot of the domain cache.
type UseCase struct {
	backend repo.Backend

	now func() time.Time
	loc *time.Location

	// reloads coalesces the overlapping Reload calls, so one request
	// pair is sent to the backend and all callers observe its result.
	reloads singleflight.Group

	// tickets orders the reloads (by their start) and the car appends
	// (by the end of their POST request).
	tickets atomic.Uint64

	// mutex serializes the read-modify-publish steps of the mutating
	// methods (publishing a reload or appending a created car) and
	// guards the published and appended fields.
	mutex sync.Mutex

	// published is the ticket of the last published reload. A reload
	// with an older ticket is superseded and may not be published.
	published uint64

	// appended keeps the cars which were appended after the start of
	// the last published reload, so an older reload which did not see
	// them can not drop them from the cache.
	appended []appendedCar

	// rwlock protects the snapshot pointer itself. It is locked for
	// writing only while a new snapshot is being published.
	rwlock   sync.RWMutex
	snapshot *Snapshot
}

type appendedCar struct {
	ticket uint64
	car    model.Car
}

const reloadKey = "reload"

// New instantiates an inventory use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
// The returned UseCase is empty until Reload is called.
func New(b repo.Backend, opts ...Option) (*UseCase, error) {
	uc := &UseCase{backend: b, snapshot: &Snapshot{}}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.loc == nil {
		uc.loc = time.Local
	}
	return uc, nil
}

// Snapshot returns the currently published state of the domain cache.
func (uc *UseCase) Snapshot() *Snapshot {
	uc.rwlock.RLock()
	defer uc.rwlock.RUnlock()
	return uc.snapshot
}

func (uc *UseCase) publish(s *Snapshot) {
	uc.rwlock.Lock()
	defer uc.rwlock.Unlock()
	uc.snapshot = s
}

// Today returns the current calendar date in the configured location.
func (uc *UseCase) Today() model.Date {
	return model.DateOf(uc.now().In(uc.loc))
}

// Reload fetches both collections from the backend concurrently and
// if both fetches succeed, replaces the cached collections atomically
// and recomputes their derived fields.
// If a fetch fails, cached contents are kept intact, the failure is
// recorded in the published snapshot (so views can report it), and
// a *cerr.LoadError is returned.
//
// Concurrent Reload calls are coalesced. The backend calls are not
// cancelled when ctx is done because their result is shared with
// other callers and the periodic refresher. A reload which finishes
// after a later started reload has been published is discarded.
func (uc *UseCase) Reload(ctx context.Context) error {
	ch := uc.reloads.DoChan(reloadKey, func() (any, error) {
		return nil, uc.reload(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *UseCase) reload(ctx context.Context) error {
	ticket := uc.tickets.Add(1)
	var (
		cars    []model.Car
		records []model.MaintenanceRecord
		carsErr error
		recsErr error
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		cars, err = uc.backend.ListCars(ctx)
		if err != nil {
			carsErr = &cerr.LoadError{Collection: cerr.Cars, Err: err}
		}
		return carsErr
	})
	g.Go(func() (err error) {
		records, err = uc.backend.ListRecords(ctx)
		if err != nil {
			recsErr = &cerr.LoadError{Collection: cerr.Records, Err: err}
		}
		return recsErr
	})
	err := g.Wait()

	uc.mutex.Lock()
	defer uc.mutex.Unlock()
	if ticket < uc.published {
		log.Info(ctx, "discarding superseded inventory reload",
			slog.Uint64("ticket", ticket), slog.Uint64("published", uc.published),
		)
		return err
	}
	prev := uc.Snapshot()
	if err != nil {
		s := *prev
		s.CarsErr, s.RecordsErr = carsErr, recsErr
		uc.publish(&s)
		log.Warn(ctx, "reloading inventory failed",
			log.Err("cars", carsErr), log.Err("records", recsErr),
		)
		return err
	}
	var kept []appendedCar
	for _, a := range uc.appended {
		if a.ticket < ticket {
			continue // created before this reload started
		}
		kept = append(kept, a)
		if !slices.ContainsFunc(cars, func(c model.Car) bool {
			return c.ID == a.car.ID
		}) {
			cars = append(cars, a.car)
		}
	}
	uc.appended = kept
	s := &Snapshot{
		Cars:     cars,
		Records:  records,
		LoadedAt: uc.now(),
	}
	Derive(s.Cars, s.Records, uc.Today())
	uc.published = ticket
	uc.publish(s)
	log.Info(ctx, "inventory reloaded",
		slog.Int("cars", len(cars)), slog.Int("records", len(records)),
	)
	return nil
}

// AddCar asks the backend to create a car. The created car is appended
// to the cached cars with no maintenance record, and is returned.
// In case of errors, the cache is left untouched and the error is
// returned after wrapping (its message is the backend error text).
func (uc *UseCase) AddCar(ctx context.Context, nc model.NewCar) (
	*model.Car, error,
) {
	c, err := uc.backend.CreateCar(ctx, nc)
	if err != nil {
		return nil, err
	}
	car := *c
	car.MaintenanceCount = 0
	ticket := uc.tickets.Add(1)

	uc.mutex.Lock()
	defer uc.mutex.Unlock()
	uc.appended = append(uc.appended, appendedCar{ticket: ticket, car: car})
	s := *uc.Snapshot()
	s.Cars = append(slices.Clip(s.Cars), car)
	uc.publish(&s)
	log.Info(ctx, "car added", log.Car("car", car))
	return &car, nil
}

// AddRecord asks the backend to log a maintenance record and then
// reloads both collections since adding a record shifts the
// maintenance count of its car. The follow-up reload does not join a
// reload which has started before the record was created. A failure of the follow-up reload does
// not fail AddRecord because the record has been created. It is
// reported by the published snapshot instead.
// In case of creation errors, the cache is left untouched.
func (uc *UseCase) AddRecord(ctx context.Context, nr model.NewRecord) (
	*model.MaintenanceRecord, error,
) {
	r, err := uc.backend.CreateRecord(ctx, nr)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "maintenance record added", log.Record("record", *r))
	uc.reloads.Forget(reloadKey)
	if err := uc.Reload(ctx); err != nil {
		log.Warn(ctx, "reloading after adding a record", log.Err("err", err))
	}
	return r, nil
}
