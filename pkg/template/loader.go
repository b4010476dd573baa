package template

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/imagemix/pkg/errors"
)

// Table filenames expected inside a template directory. Each corresponds to
// one sheet of the source template, exported as CSV.
const (
	CanvasFile     = "canvas.csv"
	ImageLayerFile = "image_layer.csv"
	TextLayerFile  = "text_layer.csv"
	LayoutFile     = "layout.csv"
)

// Expected header columns, in exact order, for each table.
var (
	canvasHeader     = []string{"canvas_id", "width", "height"}
	imageLayerHeader = []string{"layer_id", "width", "height", "position_x", "position_y", "filename"}
	textLayerHeader  = []string{"layer_id", "font_size", "color_r", "color_g", "color_b", "position_x", "position_y", "text_content"}
)

// Load reads the four template tables from dir and returns a validated
// Template. Missing files and malformed rows produce INVALID_TEMPLATE
// errors; the whole run is fatal on any of them.
func Load(dir string) (*Template, error) {
	canvases, err := loadTable(dir, CanvasFile, canvasHeader, parseCanvas)
	if err != nil {
		return nil, err
	}
	images, err := loadTable(dir, ImageLayerFile, imageLayerHeader, parseImageLayer)
	if err != nil {
		return nil, err
	}
	texts, err := loadTable(dir, TextLayerFile, textLayerHeader, parseTextLayer)
	if err != nil {
		return nil, err
	}
	layouts, err := loadLayouts(dir)
	if err != nil {
		return nil, err
	}
	return New(canvases, images, texts, layouts)
}

// loadTable reads one CSV table, checks its header, and parses each row.
func loadTable[T any](dir, name string, header []string, parse func([]string) (T, error)) ([]T, error) {
	rows, err := readCSV(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	if err := checkHeader(name, rows, header); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parse(row)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "%s row %d", name, i+2)
		}
		out = append(out, rec)
	}
	return out, nil
}

// loadLayouts reads the layout table. Its header carries 30 optional layer
// columns; empty slots are skipped rather than treated as positional gaps.
func loadLayouts(dir string) ([]Layout, error) {
	rows, err := readCSV(filepath.Join(dir, LayoutFile))
	if err != nil {
		return nil, err
	}
	if err := checkHeader(LayoutFile, rows, layoutHeader()); err != nil {
		return nil, err
	}

	layouts := make([]Layout, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "%s row %d: expected at least 2 columns, got %d", LayoutFile, i+2, len(row))
		}
		var ids []string
		for _, id := range row[2:] {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		layouts = append(layouts, Layout{
			OutputFilename: strings.TrimSpace(row[0]),
			CanvasID:       strings.TrimSpace(row[1]),
			LayerIDs:       ids,
		})
	}
	return layouts, nil
}

// layoutHeader builds the layout table header: output_filename, canvas_id,
// layer_1..layer_30.
func layoutHeader() []string {
	header := []string{"output_filename", "canvas_id"}
	for i := 1; i <= MaxLayers; i++ {
		header = append(header, fmt.Sprintf("layer_%d", i))
	}
	return header
}

// readCSV loads all records from a CSV file. Rows shorter than the header
// are allowed so trailing empty layer columns may be omitted.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "open template table %s", filepath.Base(path))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "read template table %s", filepath.Base(path))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// checkHeader verifies the first row matches the expected column order.
// The layout table may omit trailing layer columns, so a header that is a
// strict prefix of the expected one (down to output_filename, canvas_id)
// is accepted; the fixed tables must match exactly.
func checkHeader(name string, rows [][]string, want []string) error {
	if len(rows) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "%s is empty", name)
	}
	got := rows[0]
	if name == LayoutFile {
		if len(got) < 2 || len(got) > len(want) {
			return errors.New(errors.ErrCodeInvalidTemplate, "%s: expected between 2 and %d columns, got %d", name, len(want), len(got))
		}
	} else if len(got) != len(want) {
		return errors.New(errors.ErrCodeInvalidTemplate, "%s: expected %d columns, got %d", name, len(want), len(got))
	}
	for i, col := range got {
		if !strings.EqualFold(strings.TrimSpace(col), want[i]) {
			return errors.New(errors.ErrCodeInvalidTemplate, "%s: column %d is %q, want %q", name, i+1, col, want[i])
		}
	}
	return nil
}

func parseCanvas(row []string) (Canvas, error) {
	if len(row) < 3 {
		return Canvas{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}
	w, err := parseInt("width", row[1])
	if err != nil {
		return Canvas{}, err
	}
	h, err := parseInt("height", row[2])
	if err != nil {
		return Canvas{}, err
	}
	return Canvas{ID: strings.TrimSpace(row[0]), Width: w, Height: h}, nil
}

func parseImageLayer(row []string) (ImageLayer, error) {
	if len(row) < 6 {
		return ImageLayer{}, fmt.Errorf("expected 6 columns, got %d", len(row))
	}
	vals, err := parseInts(row[1:5], "width", "height", "position_x", "position_y")
	if err != nil {
		return ImageLayer{}, err
	}
	return ImageLayer{
		ID:       strings.TrimSpace(row[0]),
		Width:    vals[0],
		Height:   vals[1],
		X:        vals[2],
		Y:        vals[3],
		Filename: strings.TrimSpace(row[5]),
	}, nil
}

func parseTextLayer(row []string) (TextLayer, error) {
	if len(row) < 8 {
		return TextLayer{}, fmt.Errorf("expected 8 columns, got %d", len(row))
	}
	vals, err := parseInts(row[1:7], "font_size", "color_r", "color_g", "color_b", "position_x", "position_y")
	if err != nil {
		return TextLayer{}, err
	}
	return TextLayer{
		ID:       strings.TrimSpace(row[0]),
		FontSize: vals[0],
		ColorR:   vals[1],
		ColorG:   vals[2],
		ColorB:   vals[3],
		X:        vals[4],
		Y:        vals[5],
		Text:     row[7],
	}, nil
}

func parseInts(fields []string, names ...string) ([]int, error) {
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := parseInt(names[i], f)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", name, s)
	}
	return v, nil
}
