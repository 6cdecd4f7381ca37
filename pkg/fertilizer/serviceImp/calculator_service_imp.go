package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/fertilizer/rates"
	"agrimanage/pkg/fertilizer/service"
	"agrimanage/pkg/metrics"
	notify "agrimanage/pkg/notify/service"
)

const (
	MsgDone        = "Calculation completed successfully"
	MsgMissing     = "Please select crop type and enter area"
	MsgInvalidArea = "Please enter a valid area"
	MsgNoData      = "Fertilizer data not available for this crop"

	defaultFertilizer = "urea"
)

// CropLister is the read side of the record store.
type CropLister interface {
	List(ctx context.Context) []entities.Crop
}

type calcSvc struct {
	table *rates.Table
	crops CropLister
	n     notify.Notifier
	log   *zap.Logger
}

func NewCalculatorService(t *rates.Table, crops CropLister, n notify.Notifier, log *zap.Logger) service.CalculatorService {
	if t == nil {
		t = rates.Default()
	}
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &calcSvc{table: t, crops: crops, n: n, log: log}
}

func (s *calcSvc) Compute(crop, fertilizer, area string) (service.Result, error) {
	crop, area = strings.TrimSpace(crop), strings.TrimSpace(area)
	if crop == "" || area == "" {
		return s.fail(fmt.Errorf("%w: crop and area are required", apperr.ErrMissingInput))
	}
	a, err := strconv.ParseFloat(area, 64)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %q", apperr.ErrInvalidArea, area))
	}
	return s.ComputeFloat(crop, fertilizer, a)
}

func (s *calcSvc) ComputeFloat(crop, fertilizer string, area float64) (service.Result, error) {
	if strings.TrimSpace(crop) == "" {
		return s.fail(fmt.Errorf("%w: crop is required", apperr.ErrMissingInput))
	}
	if math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return s.fail(fmt.Errorf("%w: %v", apperr.ErrInvalidArea, area))
	}
	if strings.TrimSpace(fertilizer) == "" {
		fertilizer = defaultFertilizer
	}
	rate, err := s.table.Rate(crop, fertilizer)
	if err != nil {
		return s.fail(err)
	}
	total := rate * area
	res := service.Result{
		Crop:         strings.TrimSpace(crop),
		Fertilizer:   strings.TrimSpace(fertilizer),
		Rate:         rate,
		Area:         area,
		Total:        total,
		TotalDisplay: strconv.FormatFloat(total, 'f', 2, 64),
	}
	metrics.IncCalculation(metrics.ResultSuccess)
	s.n.Push(MsgDone, entities.NotifySuccess)
	return res, nil
}

func (s *calcSvc) fail(err error) (service.Result, error) {
	metrics.IncCalculation(apperr.Kind(err))
	s.log.Debug("calculation rejected", zap.Error(err))
	s.n.Push(message(err), entities.NotifyError)
	return service.Result{}, err
}

func message(err error) string {
	switch {
	case errors.Is(err, apperr.ErrMissingInput):
		return MsgMissing
	case errors.Is(err, apperr.ErrInvalidArea):
		return MsgInvalidArea
	case errors.Is(err, apperr.ErrUnknownCombination):
		return MsgNoData
	default:
		return err.Error()
	}
}

func (s *calcSvc) Rates() []rates.Row { return s.table.Rows() }

func (s *calcSvc) CropOptions(ctx context.Context) []string {
	if s.crops == nil {
		return []string{}
	}
	seen := map[string]bool{}
	out := []string{}
	for _, c := range s.crops.List(ctx) {
		if !seen[c.Name] {
			seen[c.Name] = true
			out = append(out, c.Name)
		}
	}
	return out
}
