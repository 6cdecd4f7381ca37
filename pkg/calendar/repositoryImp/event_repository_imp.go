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
	"agrimanage/pkg/calendar/repository"
	notify "agrimanage/pkg/notify/service"
	slot "agrimanage/pkg/slot/repository"
)

const MsgLoadFailed = "Failed to load calendar events"

// eventRepo keeps custom events as one JSON array in the calendarEvents slot.
// An unreadable slot reads as empty and is overwritten by the next Add.
type eventRepo struct {
	mu       sync.Mutex
	slot     slot.SlotRepository
	n        notify.Notifier
	log      *zap.Logger
	now      func() time.Time
	reported bool
}

func New(sl slot.SlotRepository, n notify.Notifier, log *zap.Logger) repository.EventRepository {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &eventRepo{slot: sl, n: n, log: log, now: time.Now}
}

func (r *eventRepo) load(ctx context.Context) ([]entities.CalendarEvent, error) {
	raw, err := r.slot.Get(ctx, slot.KeyEvents)
	if errors.Is(err, apperr.ErrSlotEmpty) {
		return []entities.CalendarEvent{}, nil
	}
	if err != nil {
		return nil, err
	}
	var evs []entities.CalendarEvent
	if err := json.Unmarshal(raw, &evs); err != nil {
		// reported once until a save replaces the bad value
		if !r.reported {
			r.reported = true
			r.log.Warn("calendar events unreadable, treating as empty", zap.Error(err))
			r.n.Push(MsgLoadFailed, entities.NotifyError)
		}
		return []entities.CalendarEvent{}, nil
	}
	return evs, nil
}

func (r *eventRepo) save(ctx context.Context, evs []entities.CalendarEvent) error {
	raw, err := json.Marshal(evs)
	if err != nil {
		return err
	}
	if err := r.slot.Put(ctx, slot.KeyEvents, raw); err != nil {
		return err
	}
	r.reported = false
	return nil
}

func (r *eventRepo) List(ctx context.Context) ([]entities.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *eventRepo) Add(ctx context.Context, ev entities.CalendarEvent) (entities.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs, err := r.load(ctx)
	if err != nil {
		return entities.CalendarEvent{}, err
	}
	id := r.now().UnixMilli()
	for _, e := range evs {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	ev.ID = id
	ev.Source = entities.EventSourceCustom
	if err := r.save(ctx, append(evs, ev)); err != nil {
		return entities.CalendarEvent{}, err
	}
	return ev, nil
}

func (r *eventRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i, e := range evs {
		if e.ID == id {
			return r.save(ctx, append(evs[:i], evs[i+1:]...))
		}
	}
	return fmt.Errorf("event %d: %w", id, apperr.ErrNotFound)
}
