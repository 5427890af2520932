// Command lithotype computes print-ready label layouts: a style DSL file
// plus content JSON in, a layout plan (draw instructions and page
// placements) as JSON out. Rendering the plan to PDF or image bytes is left
// to external renderer implementations.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/lithotype/lithotype/binding"
	"github.com/lithotype/lithotype/dsl"
	"github.com/lithotype/lithotype/layout"
	"github.com/lithotype/lithotype/typeface"
)

func main() {
	var (
		stylePath   string
		contentPath string
		dataPath    string
		outPath     string
		pageWidth   string
		pageHeight  string
		spacing     string
		fontMono    string
		fontSans    string
		fontSerif   string
	)

	flags := pflag.NewFlagSet("lithotype", pflag.ExitOnError)
	flags.StringVarP(&stylePath, "style", "s", "", "Label style DSL file")
	flags.StringVarP(&contentPath, "content", "c", "", "Label content JSON file")
	flags.StringVarP(&dataPath, "data", "d", "", "Record array JSON; stamps the content template once per record")
	flags.StringVarP(&outPath, "out", "o", "", "Plan JSON output path (default stdout)")
	flags.StringVar(&pageWidth, "page-width", "8.5in", "Page width")
	flags.StringVar(&pageHeight, "page-height", "11in", "Page height")
	flags.StringVar(&spacing, "spacing", "0.125in", "Spacing between labels")
	flags.StringVar(&fontMono, "font-mono", "", "TTF path measured for the mono family")
	flags.StringVar(&fontSans, "font-sans", "", "TTF path measured for the sans family")
	flags.StringVar(&fontSerif, "font-serif", "", "TTF path measured for the serif family")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	if stylePath == "" || contentPath == "" {
		log.Fatal("both --style and --content are required")
	}

	if err := run(stylePath, contentPath, dataPath, outPath, pageWidth, pageHeight, spacing, fontResources(fontMono, fontSans, fontSerif)); err != nil {
		log.Fatalf("lithotype: %v", err)
	}
}

// run wires parsing, composition and packing together.
func run(stylePath, contentPath, dataPath, outPath, pageWidth, pageHeight, spacing string, fonts map[layout.FontFamily]typeface.Resource) error {
	file, err := os.Open(stylePath)
	if err != nil {
		return fmt.Errorf("open style file: %w", err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("parse style: %w", err)
	}
	style, err := doc.LabelStyle()
	if err != nil {
		return fmt.Errorf("lower style: %w", err)
	}

	contents, err := loadContents(contentPath, dataPath)
	if err != nil {
		return err
	}

	grid, err := parseGrid(pageWidth, pageHeight, spacing)
	if err != nil {
		return err
	}

	opts := layout.ComposeOptions{Measurer: typeface.NewFixedPitch()}
	if len(fonts) > 0 {
		opts.Measurer = typeface.NewFaceMeasurer(fonts)
	}

	plan, err := layout.Plan(contents, style, grid, opts)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	if outPath == "" {
		return layout.EncodePlanJSON(plan, os.Stdout)
	}
	if err := layout.WritePlanJSON(plan, outPath); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// contentSpec is the JSON shape of one label's content: either {"text":…}
// or {"fields":[{"name":…,"value":…},…]}.
type contentSpec struct {
	Text   *string        `json:"text"`
	Fields []layout.Field `json:"fields"`
}

func loadContents(contentPath, dataPath string) ([]layout.LabelContent, error) {
	raw, err := os.ReadFile(contentPath)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	var specs []contentSpec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("parse content JSON: %w", err)
	}

	contents := make([]layout.LabelContent, len(specs))
	for i, s := range specs {
		if s.Text != nil && len(s.Fields) > 0 {
			return nil, fmt.Errorf("content entry %d mixes text and fields", i)
		}
		if s.Text != nil {
			contents[i] = layout.FreeText(*s.Text)
		} else {
			contents[i] = layout.Fielded(s.Fields...)
		}
	}

	if dataPath == "" {
		return contents, nil
	}
	if len(contents) != 1 {
		return nil, fmt.Errorf("--data expects exactly one content template, got %d", len(contents))
	}
	rawData, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var records []any
	if err := json.Unmarshal(rawData, &records); err != nil {
		return nil, fmt.Errorf("parse data JSON: %w", err)
	}
	return binding.ApplyAll(contents[0], records), nil
}

func parseGrid(pageWidth, pageHeight, spacing string) (layout.PageGrid, error) {
	var grid layout.PageGrid
	for _, dim := range []struct {
		name  string
		value string
		dst   *float64
	}{
		{"page-width", pageWidth, &grid.PageWidth},
		{"page-height", pageHeight, &grid.PageHeight},
		{"spacing", spacing, &grid.Spacing},
	} {
		l, err := layout.ParseLength(dim.value)
		if err != nil {
			return layout.PageGrid{}, fmt.Errorf("%s: %w", dim.name, err)
		}
		*dim.dst = l.ToPT()
	}
	return grid, nil
}

func fontResources(mono, sans, serif string) map[layout.FontFamily]typeface.Resource {
	fonts := map[layout.FontFamily]typeface.Resource{}
	if mono != "" {
		fonts[layout.FamilyMono] = typeface.Resource{Path: mono}
	}
	if sans != "" {
		fonts[layout.FamilySans] = typeface.Resource{Path: sans}
	}
	if serif != "" {
		fonts[layout.FamilySerif] = typeface.Resource{Path: serif}
	}
	return fonts
}
