package repositoryImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/crop/repository"
	"agrimanage/pkg/metrics"
	notify "agrimanage/pkg/notify/service"
	slot "agrimanage/pkg/slot/repository"
)

const MsgLoadFailed = "Failed to load crop data"

// Store keeps the crop list in memory and mirrors it to the crops slot.
// A mutation is visible only after the slot write succeeded.
type Store struct {
	mu     sync.RWMutex
	crops  []entities.Crop
	lastID int64

	slot   slot.SlotRepository
	notify notify.Notifier
	now    func() time.Time
	log    *zap.Logger
}

var _ repository.CropRepository = (*Store)(nil)

type Option func(*Store)

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func New(sl slot.SlotRepository, n notify.Notifier, log *zap.Logger, opts ...Option) *Store {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{slot: sl, notify: n, now: time.Now, log: log, crops: []entities.Crop{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Hydrate loads the slot. An absent slot is an empty store. Unreadable data
// leaves the store empty, raises an error notification and is returned.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.crops = []entities.Crop{}
	s.lastID = 0

	raw, err := s.slot.Get(ctx, slot.KeyCrops)
	if errors.Is(err, apperr.ErrSlotEmpty) {
		return nil
	}
	if err != nil {
		s.notify.Push(MsgLoadFailed, entities.NotifyError)
		return fmt.Errorf("read crops slot: %w", err)
	}
	var crops []entities.Crop
	if err := json.Unmarshal(raw, &crops); err != nil {
		s.notify.Push(MsgLoadFailed, entities.NotifyError)
		return fmt.Errorf("%w: crops slot: %v", apperr.ErrParseFailure, err)
	}
	if crops == nil {
		crops = []entities.Crop{}
	}
	for _, c := range crops {
		if c.ID > s.lastID {
			s.lastID = c.ID
		}
	}
	// missing or repeated ids get fresh ones; the slot is rewritten on the next commit
	seen := make(map[int64]bool, len(crops))
	reassigned := 0
	for i := range crops {
		if crops[i].ID <= 0 || seen[crops[i].ID] {
			s.lastID = s.nextID(s.lastID)
			crops[i].ID = s.lastID
			reassigned++
		}
		seen[crops[i].ID] = true
	}
	if reassigned > 0 {
		s.log.Warn("crops with missing or duplicate ids renumbered", zap.Int("count", reassigned))
	}
	s.crops = crops
	s.log.Info("crops hydrated", zap.Int("count", len(crops)), zap.String("slot", s.slot.Driver()))
	return nil
}

func (s *Store) List(context.Context) []entities.Crop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Crop(nil), s.crops...)
}

func (s *Store) Get(_ context.Context, id int64) (entities.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return entities.Crop{}, notFound(id)
	}
	return s.crops[i], nil
}

func (s *Store) Add(ctx context.Context, in repository.CropInput) (c entities.Crop, err error) {
	defer func() { metrics.IncCropMutation("add", metrics.Result(err)) }()

	c, err = in.Validate()
	if err != nil {
		return entities.Crop{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID(s.lastID)
	c.ID = id
	next := make([]entities.Crop, 0, len(s.crops)+1)
	next = append(next, s.crops...)
	next = append(next, c)
	if err := s.commit(ctx, next, id); err != nil {
		return entities.Crop{}, err
	}
	return c, nil
}

func (s *Store) AddMany(ctx context.Context, ins []repository.CropInput) (out []entities.Crop, err error) {
	defer func() { metrics.IncCropMutation("import", metrics.Result(err)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendInputs(ctx, s.crops, ins)
}

func (s *Store) Replace(ctx context.Context, ins []repository.CropInput) (out []entities.Crop, err error) {
	defer func() { metrics.IncCropMutation("replace", metrics.Result(err)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendInputs(ctx, nil, ins)
}

// appendInputs validates every input first so a bad row leaves nothing written.
func (s *Store) appendInputs(ctx context.Context, base []entities.Crop, ins []repository.CropInput) ([]entities.Crop, error) {
	added := make([]entities.Crop, 0, len(ins))
	last := s.lastID
	for i, in := range ins {
		c, err := in.Validate()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		last = s.nextID(last)
		c.ID = last
		added = append(added, c)
	}
	next := make([]entities.Crop, 0, len(base)+len(added))
	next = append(next, base...)
	next = append(next, added...)
	if err := s.commit(ctx, next, last); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) Update(ctx context.Context, id int64, in repository.CropInput) (c entities.Crop, err error) {
	defer func() { metrics.IncCropMutation("update", metrics.Result(err)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceAt(ctx, id, func(entities.Crop) repository.CropInput { return in })
}

func (s *Store) Patch(ctx context.Context, id int64, p repository.CropPatch) (c entities.Crop, err error) {
	defer func() { metrics.IncCropMutation("patch", metrics.Result(err)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceAt(ctx, id, p.Apply)
}

func (s *Store) replaceAt(ctx context.Context, id int64, merge func(entities.Crop) repository.CropInput) (entities.Crop, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entities.Crop{}, notFound(id)
	}
	c, err := merge(s.crops[i]).Validate()
	if err != nil {
		return entities.Crop{}, err
	}
	c.ID = id
	next := append([]entities.Crop(nil), s.crops...)
	next[i] = c
	if err := s.commit(ctx, next, s.lastID); err != nil {
		return entities.Crop{}, err
	}
	return c, nil
}

func (s *Store) Remove(ctx context.Context, id int64) (err error) {
	defer func() { metrics.IncCropMutation("remove", metrics.Result(err)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	next := make([]entities.Crop, 0, len(s.crops)-1)
	next = append(next, s.crops[:i]...)
	next = append(next, s.crops[i+1:]...)
	return s.commit(ctx, next, s.lastID)
}

// commit writes next to the slot and only then makes it current. Callers hold mu.
func (s *Store) commit(ctx context.Context, next []entities.Crop, lastID int64) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode crops: %w", err)
	}
	if err := s.slot.Put(ctx, slot.KeyCrops, raw); err != nil {
		s.log.Error("persist crops", zap.Error(err), zap.String("slot", s.slot.Driver()))
		return fmt.Errorf("persist crops: %w", err)
	}
	s.crops = next
	s.lastID = lastID
	return nil
}

// nextID is the current time in ms, bumped past last so ids stay strictly increasing.
func (s *Store) nextID(last int64) int64 {
	id := s.now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

func (s *Store) indexOf(id int64) int {
	for i, c := range s.crops {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return fmt.Errorf("crop %d: %w", id, apperr.ErrNotFound)
}
