package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/radiology-client/internal/technician/services"
	"github.com/c14220110/radiology-client/internal/view"
	"github.com/c14220110/radiology-client/pkg/apiclient"
)

type fixture struct {
	controller *TechnicianController
	surface    *view.Surface
	events     *[]string
}

func newFixture(t *testing.T, configure func(e *echo.Echo)) fixture {
	t.Helper()
	e := echo.New()
	configure(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	surface := view.NewSurface(io.Discard)
	surface.Register(view.SectionTechCases)

	events := &[]string{}
	emit := func(event string) { *events = append(*events, event) }
	service := services.NewTechnicianService(apiclient.New(srv.URL, 5*time.Second))
	return fixture{NewTechnicianController(service, surface, emit), surface, events}
}

func TestRender_EmptyQueue(t *testing.T) {
	f := newFixture(t, func(e *echo.Echo) {
		e.GET("/tech/cases", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{"success": true, "cases": []any{}})
		})
	})

	f.controller.Render(context.Background())

	if f.surface.Section(view.SectionTechCases).Content() != "No cases awaiting upload." {
		t.Fatalf("got %q", f.surface.Section(view.SectionTechCases).Content())
	}
}

func TestUploadImage_MultipartReachesServer(t *testing.T) {
	var gotCase, gotFilename, gotBytes string
	f := newFixture(t, func(e *echo.Echo) {
		e.POST("/tech/upload/:id", func(c echo.Context) error {
			gotCase = c.Param("id")
			file, err := c.FormFile("image")
			if err != nil {
				return err
			}
			gotFilename = file.Filename
			src, err := file.Open()
			if err != nil {
				return err
			}
			defer src.Close()
			raw, _ := io.ReadAll(src)
			gotBytes = string(raw)
			return c.JSON(http.StatusOK, map[string]any{"success": true})
		})
		e.GET("/tech/cases", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{"success": true, "cases": []any{}})
		})
	})

	f.controller.UploadImage(context.Background(), "case-3", "scan.dcm", strings.NewReader("dicom-bytes"))

	if gotCase != "case-3" || gotFilename != "scan.dcm" || gotBytes != "dicom-bytes" {
		t.Fatalf("upload mangled: case=%q file=%q bytes=%q", gotCase, gotFilename, gotBytes)
	}
	sec := f.surface.Section(view.SectionTechCases)
	if sec.Busy() {
		t.Fatal("submit must be re-enabled after success")
	}
	if len(*f.events) != 1 || (*f.events)[0] != "images-updated" {
		t.Fatalf("expected images-updated emit, got %v", *f.events)
	}
}

func TestUploadImage_FailureReenablesSubmit(t *testing.T) {
	f := newFixture(t, func(e *echo.Echo) {
		e.POST("/tech/upload/:id", func(c echo.Context) error {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]any{"success": false, "message": "file too large"})
		})
	})

	f.controller.UploadImage(context.Background(), "case-3", "big.dcm", strings.NewReader("..."))

	sec := f.surface.Section(view.SectionTechCases)
	if sec.Busy() {
		t.Fatal("failed upload must re-enable the submit control for retry")
	}
	if !strings.Contains(sec.ErrorText(), "file too large") {
		t.Fatalf("expected server message, got %q", sec.ErrorText())
	}
	if len(*f.events) != 0 {
		t.Fatal("no emit on failure")
	}
}

func TestUploadImage_RequiresCaseAndFile(t *testing.T) {
	f := newFixture(t, func(e *echo.Echo) {})

	f.controller.UploadImage(context.Background(), "", "scan.dcm", strings.NewReader("x"))
	if f.surface.Section(view.SectionTechCases).ErrorText() == "" {
		t.Fatal("missing case id should be reported")
	}

	f.controller.UploadImage(context.Background(), "case-1", "", nil)
	if !strings.Contains(f.surface.Section(view.SectionTechCases).ErrorText(), "image") {
		t.Fatal("missing file should be reported")
	}
}
