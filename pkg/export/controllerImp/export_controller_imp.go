package controllerImp

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/export/service"
)

const maxImportBytes = 5 << 20

type ExportCtrl struct{ svc service.ExportService }

func New(svc service.ExportService) *ExportCtrl { return &ExportCtrl{svc} }

func (h *ExportCtrl) Export(c echo.Context) error {
	f, err := h.svc.Export(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	if f.ArchivedAt != "" {
		c.Response().Header().Set("X-Archived-At", f.ArchivedAt)
	}
	return c.Blob(http.StatusOK, f.ContentType, f.Data)
}

// Import takes a multipart "file" field or a raw CSV body. ?mode=replace
// swaps the whole list, anything else appends.
func (h *ExportCtrl) Import(c echo.Context) error {
	var r io.Reader
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		defer src.Close()
		r = src
	} else {
		r = c.Request().Body
	}
	added, err := h.svc.Import(c.Request().Context(), io.LimitReader(r, maxImportBytes), c.QueryParam("mode") == "replace")
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"imported": len(added), "crops": added})
}
