package mapview

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"location-map/internal/types"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

type pageData struct {
	Title     string
	Container string
	View      *types.MapView
}

// RenderPage is the top-level rendering pass: it renders the view and writes
// the HTML page. A load or payload failure is logged once and the page is
// written without a map; only template and write errors are returned.
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer) error {
	view, err := r.Render(ctx)
	if err != nil {
		r.logger.Error("failed to load location data", "error", err)
		view = nil
	}
	return WritePage(w, r.opts.ContainerID, view)
}

// WritePage executes the page template for view; a nil view leaves the container empty
func WritePage(w io.Writer, container string, view *types.MapView) error {
	var buf bytes.Buffer
	data := pageData{
		Title:     "Localização",
		Container: container,
		View:      view,
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}
