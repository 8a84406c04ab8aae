package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"keypad-studio/configuration"
	"keypad-studio/service"
)

type fakeExportService struct {
	pdf []byte
	err error

	orderCode string
	modelCode string
}

func (f *fakeExportService) ExportBOM(ctx context.Context, orderCode, modelCode string, rawConfig []byte) ([]byte, error) {
	f.orderCode = orderCode
	f.modelCode = modelCode
	return f.pdf, f.err
}

const exportBody = `{"model":"KP4","configuration":{"slot_1":{"iconId":"A12","color":"#1EA7FF"},"slot_2":{"iconId":"B70","color":null},"slot_3":{"iconId":"A12","color":null},"slot_4":{"iconId":"B70","color":null}}}`

func doExport(t *testing.T, svc service.ExportServiceInterface, body string) *httptest.ResponseRecorder {
	t.Helper()
	c := NewExportController(svc, service.NewRenderStore())
	req := httptest.NewRequest(http.MethodPost, "/orders/ORD-1042/export", strings.NewReader(body))
	rec := httptest.NewRecorder()
	c.Export(rec, req)
	return rec
}

func TestExport_ReturnsPDF(t *testing.T) {
	svc := &fakeExportService{pdf: []byte("%PDF-1.4 fake")}
	rec := doExport(t, svc, exportBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "keypad-bom-ORD-1042.pdf")
	assert.Equal(t, "%PDF-1.4 fake", rec.Body.String())

	assert.Equal(t, "ORD-1042", svc.orderCode)
	assert.Equal(t, "KP4", svc.modelCode)
}

func TestExport_ValidationErrorIs422WithErrorBody(t *testing.T) {
	svc := &fakeExportService{err: &configuration.ValidationError{
		Code:    configuration.CodeIncompleteConfiguration,
		Message: "configuration is incomplete",
	}}
	rec := doExport(t, svc, exportBody)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), string(configuration.CodeIncompleteConfiguration))
}

func TestExport_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unmatched line", service.ErrUnmatchedLine, http.StatusNotFound},
		{"unresolvable asset", &service.AssetResolutionError{IconID: "B70"}, http.StatusConflict},
		{"renderer failure", errors.New("chrome crashed"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doExport(t, &fakeExportService{err: tc.err}, exportBody)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestExport_RejectsBadRequests(t *testing.T) {
	svc := &fakeExportService{pdf: []byte("x")}
	c := NewExportController(svc, service.NewRenderStore())

	// Wrong method.
	rec := httptest.NewRecorder()
	c.Export(rec, httptest.NewRequest(http.MethodGet, "/orders/ORD-1042/export", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// Unknown model.
	rec = doExport(t, svc, `{"model":"KP77","configuration":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unparseable body.
	rec = doExport(t, svc, `{nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRender_ServesStoredMarkupOnce(t *testing.T) {
	renders := service.NewRenderStore()
	token := renders.Put("<html>doc</html>")
	c := NewExportController(&fakeExportService{}, renders)

	req := httptest.NewRequest(http.MethodGet, "/exports/"+token+"/render", nil)
	rec := httptest.NewRecorder()
	c.Render(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>doc</html>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRender_UnknownTokenIs404(t *testing.T) {
	c := NewExportController(&fakeExportService{}, service.NewRenderStore())
	rec := httptest.NewRecorder()
	c.Render(rec, httptest.NewRequest(http.MethodGet, "/exports/unknown/render", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
