package render

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Page geometry: A4 with symmetric 20mm margins.
const (
	pageMarginMM = 20

	bodyFontSize      = 9
	lineSpacingMM     = 4.5
	tableHeaderHeight = 9
	tableRowHeight    = 7
	paragraphHeight   = 5
	ruleThickness     = 0.3
)

var (
	colorBlack = props.Color{Red: 0, Green: 0, Blue: 0}
	// lightgrey header band
	colorShade = props.Color{Red: 211, Green: 211, Blue: 211}
)

// marotoBuilder implements DocumentBuilder on top of maroto's 12-slot grid.
type marotoBuilder struct {
	m core.Maroto
}

// NewMarotoBuilder returns a DocumentBuilder backed by maroto with the
// fixed A4/20mm page geometry.
func NewMarotoBuilder() DocumentBuilder {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(pageMarginMM).
		WithTopMargin(pageMarginMM).
		WithRightMargin(pageMarginMM).
		Build()
	return &marotoBuilder{m: maroto.New(cfg)}
}

func (b *marotoBuilder) AddRow(height float64, style RowStyle, spans ...Span) {
	cols := make([]core.Col, 0, len(spans))
	for _, s := range spans {
		cols = append(cols, buildCol(s))
	}
	r := row.New(height).Add(cols...)
	if style.TopRule {
		r.WithStyle(&props.Cell{
			BorderType:      border.Top,
			BorderColor:     &colorBlack,
			BorderThickness: ruleThickness,
		})
	}
	b.m.AddRows(r)
}

func (b *marotoBuilder) AddRuledTable(headers []string, rows [][]string, widths []int) {
	grid := &props.Cell{
		BorderType:      border.Full,
		BorderColor:     &colorBlack,
		BorderThickness: ruleThickness,
	}

	headerCols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		headerCols = append(headerCols, text.NewCol(widths[i], h, props.Text{
			Top:   2,
			Size:  bodyFontSize,
			Style: fontstyle.Bold,
			Align: align.Center,
		}))
	}
	shaded := *grid
	shaded.BackgroundColor = &colorShade
	b.m.AddRows(row.New(tableHeaderHeight).Add(headerCols...).WithStyle(&shaded))

	for _, cells := range rows {
		bodyCols := make([]core.Col, 0, len(cells))
		for i, v := range cells {
			a := align.Right
			if i == 0 {
				a = align.Left
			}
			bodyCols = append(bodyCols, text.NewCol(widths[i], v, props.Text{
				Top:   1.5,
				Size:  bodyFontSize,
				Align: a,
			}))
		}
		b.m.AddRows(row.New(tableRowHeight).Add(bodyCols...).WithStyle(grid))
	}
}

func (b *marotoBuilder) AddParagraph(content string, style TextStyle) {
	b.m.AddRow(paragraphHeight, text.NewCol(12, content, textProps(style, 0)))
}

func (b *marotoBuilder) AddSpacer(height float64) {
	b.m.AddRow(height, col.New(12))
}

func (b *marotoBuilder) Output() ([]byte, error) {
	doc, err := b.m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func buildCol(s Span) core.Col {
	if s.Image != nil {
		return image.NewFromBytesCol(s.Width, s.Image, imageExtension(s.ImageExt),
			props.Rect{Percent: 100})
	}
	c := col.New(s.Width)
	for i, line := range s.Lines {
		c.Add(text.New(line.Text, textProps(line.Style, float64(i)*lineSpacingMM)))
	}
	return c
}

func textProps(style TextStyle, top float64) props.Text {
	p := props.Text{Top: top, Size: style.Size}
	if p.Size == 0 {
		p.Size = bodyFontSize
	}
	if style.Bold {
		p.Style = fontstyle.Bold
	}
	switch style.Align {
	case AlignRight:
		p.Align = align.Right
	case AlignCenter:
		p.Align = align.Center
	default:
		p.Align = align.Left
	}
	return p
}

func imageExtension(ext string) extension.Type {
	if ext == "jpeg" || ext == "jpg" {
		return extension.Jpg
	}
	return extension.Png
}
