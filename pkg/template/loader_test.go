package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/imagemix/pkg/errors"
)

// writeTemplateDir writes the four template tables into a temp directory.
func writeTemplateDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func validTables() map[string]string {
	return map[string]string{
		CanvasFile: "canvas_id,width,height\nc1,600,300\n",
		ImageLayerFile: "layer_id,width,height,position_x,position_y,filename\n" +
			"bg,600,300,0,0,bg.png\n",
		TextLayerFile: "layer_id,font_size,color_r,color_g,color_b,position_x,position_y,text_content\n" +
			"title,40,0,0,0,20,250,Sale!\n",
		LayoutFile: "output_filename,canvas_id,layer_1,layer_2,layer_3\n" +
			"out.png,c1,bg,,title\n",
	}
}

func TestLoad(t *testing.T) {
	dir := writeTemplateDir(t, validTables())

	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(tmpl.Canvases) != 1 || tmpl.Canvases[0].ID != "c1" {
		t.Errorf("canvases = %+v, want one canvas c1", tmpl.Canvases)
	}
	if len(tmpl.ImageLayers) != 1 || tmpl.ImageLayers[0].Filename != "bg.png" {
		t.Errorf("image layers = %+v", tmpl.ImageLayers)
	}
	if len(tmpl.TextLayers) != 1 || tmpl.TextLayers[0].Text != "Sale!" {
		t.Errorf("text layers = %+v", tmpl.TextLayers)
	}

	if len(tmpl.Layouts) != 1 {
		t.Fatalf("layouts = %+v, want one", tmpl.Layouts)
	}
	// The empty layer_2 slot is skipped, not kept as a gap.
	got := tmpl.Layouts[0].LayerIDs
	if len(got) != 2 || got[0] != "bg" || got[1] != "title" {
		t.Errorf("layer ids = %v, want [bg title]", got)
	}
}

func TestLoadMissingTable(t *testing.T) {
	files := validTables()
	delete(files, CanvasFile)
	dir := writeTemplateDir(t, files)

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("Load = %v, want INVALID_TEMPLATE", err)
	}
}

func TestLoadBadHeader(t *testing.T) {
	files := validTables()
	files[CanvasFile] = "id,w,h\nc1,600,300\n"
	dir := writeTemplateDir(t, files)

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("Load = %v, want INVALID_TEMPLATE", err)
	}
}

func TestLoadBadInteger(t *testing.T) {
	files := validTables()
	files[CanvasFile] = "canvas_id,width,height\nc1,wide,300\n"
	dir := writeTemplateDir(t, files)

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("Load = %v, want INVALID_TEMPLATE", err)
	}
}

func TestLoadNegativePositionAllowed(t *testing.T) {
	files := validTables()
	files[ImageLayerFile] = "layer_id,width,height,position_x,position_y,filename\n" +
		"bg,600,300,-10,-20,bg.png\n"
	dir := writeTemplateDir(t, files)

	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tmpl.ImageLayers[0].X != -10 || tmpl.ImageLayers[0].Y != -20 {
		t.Errorf("position = (%d,%d), want (-10,-20)", tmpl.ImageLayers[0].X, tmpl.ImageLayers[0].Y)
	}
}

func TestLoadEmptyLayoutTable(t *testing.T) {
	files := validTables()
	files[LayoutFile] = "output_filename,canvas_id,layer_1\n"
	dir := writeTemplateDir(t, files)

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("Load with no layout rows = %v, want INVALID_TEMPLATE", err)
	}
}

func TestLoadTextWithCommaContent(t *testing.T) {
	files := validTables()
	files[TextLayerFile] = "layer_id,font_size,color_r,color_g,color_b,position_x,position_y,text_content\n" +
		`title,40,0,0,0,20,250,"Sale, today only!"` + "\n"
	dir := writeTemplateDir(t, files)

	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tmpl.TextLayers[0].Text != "Sale, today only!" {
		t.Errorf("text = %q", tmpl.TextLayers[0].Text)
	}
}
