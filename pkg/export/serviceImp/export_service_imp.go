package serviceImp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	cropsvc "agrimanage/pkg/crop/service"
	"agrimanage/pkg/export"
	archive "agrimanage/pkg/export/repository"
	"agrimanage/pkg/export/service"
	"agrimanage/pkg/metrics"
	notify "agrimanage/pkg/notify/service"
)

const MsgArchiveFailed = "Export archive failed"

var contentTypes = map[string]string{
	"csv":  "text/csv; charset=utf-8",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
}

type exportSvc struct {
	crops   cropsvc.CropService
	archive archive.ArchiveRepository
	n       notify.Notifier
	now     func() time.Time
	log     *zap.Logger
}

func NewExportService(crops cropsvc.CropService, a archive.ArchiveRepository, n notify.Notifier, log *zap.Logger) service.ExportService {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &exportSvc{crops: crops, archive: a, n: n, now: time.Now, log: log}
}

func (s *exportSvc) Export(ctx context.Context, format string) (f service.File, err error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	defer func() { metrics.IncExport(format, metrics.Result(err)) }()

	ct, ok := contentTypes[format]
	if !ok {
		return service.File{}, fmt.Errorf("%w: unsupported export format %q", apperr.ErrInvalidRecord, format)
	}
	crops := s.crops.List(ctx, cropsvc.Filter{})
	now := s.now().UTC()

	var data []byte
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, crops); err != nil {
			return service.File{}, err
		}
		data = buf.Bytes()
	case "xlsx":
		if data, err = export.BuildXLSX(crops, now); err != nil {
			return service.File{}, err
		}
	case "pdf":
		if data, err = export.BuildPDF(crops, now); err != nil {
			return service.File{}, err
		}
	}

	f = service.File{Name: export.FileBase + "." + format, ContentType: ct, Data: data}
	if s.archive != nil {
		key := fmt.Sprintf("exports/%s-%s", now.Format("20060102T150405Z"), f.Name)
		where, aerr := s.archive.Put(ctx, key, data, ct)
		if aerr != nil {
			// the download still goes out
			s.log.Error("archive export", zap.Error(aerr), zap.String("driver", s.archive.Driver()), zap.String("key", key))
			s.n.Push(MsgArchiveFailed, entities.NotifyError)
		} else if where != "" {
			s.log.Info("export archived", zap.String("where", where))
			f.ArchivedAt = where
		}
	}
	return f, nil
}

func (s *exportSvc) Import(ctx context.Context, r io.Reader, replace bool) ([]entities.Crop, error) {
	rows, err := export.ReadCSV(r)
	if err != nil {
		s.n.Push("Failed to import crop data", entities.NotifyError)
		return nil, err
	}
	return s.crops.Import(ctx, rows, replace)
}
