package pipeline

import (
	"testing"

	"github.com/matzehuels/gatesketch/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"yaml", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"dark", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"circuit", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidatePNGEngine(t *testing.T) {
	for _, e := range []string{"native", "rsvg"} {
		if err := ValidatePNGEngine(e); err != nil {
			t.Errorf("ValidatePNGEngine(%q) error = %v", e, err)
		}
	}
	if err := ValidatePNGEngine("cairo"); err == nil {
		t.Error("ValidatePNGEngine(cairo) should fail")
	}
}

func TestValidateDepth(t *testing.T) {
	if err := ValidateDepth(MaxDepth); err != nil {
		t.Errorf("ValidateDepth(%d) error = %v", MaxDepth, err)
	}
	err := ValidateDepth(MaxDepth + 1)
	if !errors.Is(err, errors.ErrCodeLayoutTooDeep) {
		t.Errorf("ValidateDepth(%d) error = %v, want LAYOUT_TOO_DEEP", MaxDepth+1, err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		code errors.Code
	}{
		{"empty", "", errors.ErrCodeEmptyExpression},
		{"blank", "   ", errors.ErrCodeEmptyExpression},
		{"multi-line", "a\nb", errors.ErrCodeInvalidInput},
		{"valid", "ab+c", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Expression: tt.expr}
			err := opts.ValidateForParse()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("ValidateForParse() code = %q, want %q (err %v)", got, tt.code, err)
			}
			if err == nil && opts.Logger == nil {
				t.Error("ValidateForParse() should set a logger")
			}
		})
	}
}

func TestOptionsIsCircuit(t *testing.T) {
	opts := Options{}
	if !opts.IsCircuit() || opts.IsNodelink() {
		t.Error("Empty VizType should be circuit")
	}

	opts.VizType = "nodelink"
	if opts.IsCircuit() || !opts.IsNodelink() {
		t.Error("nodelink VizType should be nodelink")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Expression: "ab"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalVizType := opts.VizType
	originalStyle := opts.Style
	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.VizType != originalVizType || opts.Style != originalStyle || len(opts.Formats) != originalFormats {
		t.Error("options changed on second call")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %g, got %g", DefaultScale, opts.Scale)
	}
	if opts.PNGEngine != DefaultPNGEngine {
		t.Errorf("PNGEngine should be %s, got %s", DefaultPNGEngine, opts.PNGEngine)
	}
}

func TestValidateForRenderRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"style", Options{Style: "neon"}, errors.ErrCodeInvalidStyle},
		{"viz type", Options{VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"engine", Options{PNGEngine: "cairo"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForRender() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Style: "dark", Scale: 2, PNGEngine: "rsvg"}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 || k.PNGEngine != "" {
		t.Errorf("svg key should ignore PNG settings: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 2 || k.PNGEngine != "rsvg" {
		t.Errorf("png key should carry PNG settings: %+v", k)
	}
}

func TestExprOptions(t *testing.T) {
	if got := (&Options{}).ExprOptions(); len(got) != 0 {
		t.Errorf("ExprOptions() = %d options, want 0", len(got))
	}
	if got := (&Options{GroupProducts: true}).ExprOptions(); len(got) != 1 {
		t.Errorf("ExprOptions() = %d options, want 1", len(got))
	}
}
