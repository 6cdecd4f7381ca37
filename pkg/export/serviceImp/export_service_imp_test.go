package serviceImp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/pkg/apperr"
	repo "agrimanage/pkg/crop/repository"
	cropImp "agrimanage/pkg/crop/repositoryImp"
	cropsvc "agrimanage/pkg/crop/service"
	cropSvcImp "agrimanage/pkg/crop/serviceImp"
	archiveImp "agrimanage/pkg/export/repositoryImp"
	notifyImp "agrimanage/pkg/notify/serviceImp"
	slotImp "agrimanage/pkg/slot/repositoryImp"
)

type failingArchive struct{}

func (failingArchive) Put(context.Context, string, []byte, string) (string, error) {
	return "", errors.New("bucket gone")
}
func (failingArchive) Driver() string { return "s3" }

func setup(t *testing.T) (cropsvc.CropService, *notifyImp.Queue) {
	t.Helper()
	q := notifyImp.New(time.Hour, nil)
	t.Cleanup(q.Close)
	st := cropImp.New(slotImp.NewMemory(), q, nil)
	require.NoError(t, st.Hydrate(context.Background()))
	crops := cropSvcImp.NewCropService(st, q, nil)
	_, err := crops.Create(context.Background(), repo.CropInput{Name: "Wheat A", Season: "Rabi", Fertilizer: "Urea", Yield: 10, Area: 5})
	require.NoError(t, err)
	return crops, q
}

func TestExportCSVArchivesToFS(t *testing.T) {
	crops, _ := setup(t)
	dir := t.TempDir()
	svc := NewExportService(crops, archiveImp.NewFS(dir), nil, nil)

	f, err := svc.Export(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "crop_data.csv", f.Name)
	assert.True(t, strings.HasPrefix(f.ContentType, "text/csv"))
	assert.Equal(t, "Crop Name,Season,Fertilizer,Yield (tons),Area (acres)\nWheat A,Rabi,Urea,10,5\n", string(f.Data))
	assert.True(t, strings.HasPrefix(f.ArchivedAt, dir))
	assert.True(t, strings.HasSuffix(f.ArchivedAt, "-crop_data.csv"))
}

func TestExportOtherFormats(t *testing.T) {
	crops, _ := setup(t)
	svc := NewExportService(crops, archiveImp.NewNop(), nil, nil)
	for _, format := range []string{"xlsx", "PDF"} {
		f, err := svc.Export(context.Background(), format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, f.Data)
		assert.Empty(t, f.ArchivedAt)
	}
	_, err := svc.Export(context.Background(), "docx")
	assert.ErrorIs(t, err, apperr.ErrInvalidRecord)
}

func TestArchiveFailureStillExports(t *testing.T) {
	crops, q := setup(t)
	svc := NewExportService(crops, failingArchive{}, q, nil)
	f, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Data)

	var msgs []string
	for _, n := range q.List() {
		msgs = append(msgs, n.Message)
	}
	assert.Contains(t, msgs, MsgArchiveFailed)
}

func TestImport(t *testing.T) {
	crops, _ := setup(t)
	svc := NewExportService(crops, nil, nil, nil)

	in := "Crop Name,Season,Fertilizer,Yield (tons),Area (acres)\nRice B,Kharif,DAP,20,4\n"
	added, err := svc.Import(context.Background(), strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Len(t, crops.List(context.Background(), cropsvc.Filter{}), 2)

	bad := "Crop Name,Season,Fertilizer,Yield (tons),Area (acres)\nRice B,Monsoon,DAP,20,4\n"
	_, err = svc.Import(context.Background(), strings.NewReader(bad), true)
	assert.ErrorIs(t, err, apperr.ErrInvalidRecord)
	assert.Len(t, crops.List(context.Background(), cropsvc.Filter{}), 2)
}
