package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"agrimanage/entities"
	repo "agrimanage/pkg/crop/repository"
	"agrimanage/pkg/crop/service"
	notify "agrimanage/pkg/notify/service"
)

const (
	MsgAdded   = "Crop added successfully"
	MsgUpdated = "Crop updated successfully"
	MsgDeleted = "Crop deleted successfully"
)

type cropSvc struct {
	r   repo.CropRepository
	n   notify.Notifier
	log *zap.Logger
}

func NewCropService(r repo.CropRepository, n notify.Notifier, log *zap.Logger) service.CropService {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &cropSvc{r: r, n: n, log: log}
}

func (s *cropSvc) List(ctx context.Context, f service.Filter) []entities.Crop {
	all := s.r.List(ctx)
	q := strings.ToLower(strings.TrimSpace(f.Query))
	season, bySeason := entities.ParseSeason(f.Season)
	if q == "" && !bySeason {
		return all
	}
	out := make([]entities.Crop, 0, len(all))
	for _, c := range all {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if bySeason && c.Season != season {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *cropSvc) Get(ctx context.Context, id int64) (entities.Crop, error) {
	return s.r.Get(ctx, id)
}

func (s *cropSvc) Create(ctx context.Context, in repo.CropInput) (entities.Crop, error) {
	c, err := s.r.Add(ctx, in)
	if err != nil {
		return s.fail("add", err)
	}
	s.log.Info("crop added", zap.Int64("id", c.ID), zap.String("name", c.Name))
	s.n.Push(MsgAdded, entities.NotifySuccess)
	return c, nil
}

func (s *cropSvc) Update(ctx context.Context, id int64, in repo.CropInput) (entities.Crop, error) {
	c, err := s.r.Update(ctx, id, in)
	if err != nil {
		return s.fail("update", err)
	}
	s.log.Info("crop updated", zap.Int64("id", id))
	s.n.Push(MsgUpdated, entities.NotifySuccess)
	return c, nil
}

func (s *cropSvc) Patch(ctx context.Context, id int64, p repo.CropPatch) (entities.Crop, error) {
	c, err := s.r.Patch(ctx, id, p)
	if err != nil {
		return s.fail("update", err)
	}
	s.log.Info("crop patched", zap.Int64("id", id))
	s.n.Push(MsgUpdated, entities.NotifySuccess)
	return c, nil
}

func (s *cropSvc) Delete(ctx context.Context, id int64) error {
	if err := s.r.Remove(ctx, id); err != nil {
		_, err = s.fail("delete", err)
		return err
	}
	s.log.Info("crop deleted", zap.Int64("id", id))
	s.n.Push(MsgDeleted, entities.NotifySuccess)
	return nil
}

func (s *cropSvc) Import(ctx context.Context, ins []repo.CropInput, replace bool) ([]entities.Crop, error) {
	var (
		added []entities.Crop
		err   error
	)
	if replace {
		added, err = s.r.Replace(ctx, ins)
	} else {
		added, err = s.r.AddMany(ctx, ins)
	}
	if err != nil {
		_, err = s.fail("import", err)
		return nil, err
	}
	s.log.Info("crops imported", zap.Int("count", len(added)), zap.Bool("replace", replace))
	s.n.Push(fmt.Sprintf("Imported %d crops successfully", len(added)), entities.NotifySuccess)
	return added, nil
}

func (s *cropSvc) Reject(op string, err error) error {
	_, err = s.fail(op, err)
	return err
}

func (s *cropSvc) fail(op string, err error) (entities.Crop, error) {
	s.log.Warn("crop "+op+" failed", zap.Error(err))
	s.n.Push(fmt.Sprintf("Failed to %s crop: %v", op, err), entities.NotifyError)
	return entities.Crop{}, err
}
