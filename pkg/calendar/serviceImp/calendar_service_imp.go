package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/calendar"
	repo "agrimanage/pkg/calendar/repository"
	"agrimanage/pkg/calendar/service"
	notify "agrimanage/pkg/notify/service"
)

const MsgEventAdded = "Calendar event added successfully"

type CropLister interface {
	List(ctx context.Context) []entities.Crop
}

type calSvc struct {
	crops  CropLister
	events repo.EventRepository
	n      notify.Notifier
	now    func() time.Time
	log    *zap.Logger
}

func NewCalendarService(crops CropLister, events repo.EventRepository, n notify.Notifier, log *zap.Logger) service.CalendarService {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &calSvc{crops: crops, events: events, n: n, now: time.Now, log: log}
}

func (s *calSvc) Events(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	all := calendar.Project(s.crops.List(ctx), s.now())
	custom, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	all = append(all, custom...)
	out := make([]entities.CalendarEvent, 0, len(all))
	for _, ev := range all {
		if calendar.Overlaps(ev, from, to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *calSvc) AddEvent(ctx context.Context, in service.EventInput) (entities.CalendarEvent, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return entities.CalendarEvent{}, fmt.Errorf("%w: title is required", apperr.ErrMissingInput)
	}
	if in.DurationDays <= 0 {
		return entities.CalendarEvent{}, fmt.Errorf("%w: duration must be at least one day", apperr.ErrInvalidRecord)
	}
	start := in.Start
	if start.IsZero() {
		start = s.now()
	}
	fert, _ := entities.ParseFertilizer(in.Fertilizer)
	ev, err := s.events.Add(ctx, entities.CalendarEvent{
		Title: title,
		Start: start,
		End:   start.AddDate(0, 0, in.DurationDays),
		Color: calendar.ColorFor(in.Season),
		Props: entities.EventProps{Fertilizer: fert, Yield: in.Yield, Area: in.Area},
	})
	if err != nil {
		s.log.Warn("add calendar event", zap.Error(err))
		s.n.Push("Failed to add calendar event", entities.NotifyError)
		return entities.CalendarEvent{}, err
	}
	s.n.Push(MsgEventAdded, entities.NotifySuccess)
	return ev, nil
}

func (s *calSvc) RemoveEvent(ctx context.Context, id int64) error {
	return s.events.Remove(ctx, id)
}
