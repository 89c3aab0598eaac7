package render

// Alignment positions text within its span.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// TextStyle controls how a piece of text is drawn. A zero Size means the
// builder's body size.
type TextStyle struct {
	Bold  bool
	Size  float64
	Align Alignment
}

// StyledText is one line of text with its style.
type StyledText struct {
	Text  string
	Style TextStyle
}

// Span is one column of a row. Width is in twelfths of the usable page
// width. When Image is set the span draws the image instead of its lines.
type Span struct {
	Width    int
	Lines    []StyledText
	Image    []byte
	ImageExt string // "png" or "jpeg"
}

// RowStyle carries row-level decoration.
type RowStyle struct {
	TopRule bool // horizontal rule drawn above the row
}

// DocumentBuilder assembles a single-page document top to bottom. It is the
// seam between the invoice layout and the rendering backend: the renderer
// only states the sequence and styling of bands, never backend specifics.
//
// AddRuledTable draws a fully gridded table whose header row is shaded,
// bold and centered; body cells keep the first column left-aligned and all
// following columns right-aligned.
type DocumentBuilder interface {
	AddRow(height float64, style RowStyle, spans ...Span)
	AddRuledTable(headers []string, rows [][]string, widths []int)
	AddParagraph(text string, style TextStyle)
	AddSpacer(height float64)

	// Output serializes the composed page to its binary form.
	Output() ([]byte, error)
}
