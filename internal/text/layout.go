package text

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/Faultbox/text3d/pkg/math"
)

// Config holds layout settings.
type Config struct {
	CharacterSpacing float64
	// FallbackWidth is used for characters whose advance the font
	// cannot provide.
	FallbackWidth float64
	MaxTextLength int
}

// DefaultConfig returns the standard layout settings.
func DefaultConfig() Config {
	return Config{
		CharacterSpacing: 2.0,
		FallbackWidth:    10.0,
		MaxTextLength:    1000,
	}
}

// CharPlacement is one laid-out character: its position in text space
// and the advance width used to place the next one.
type CharPlacement struct {
	Char     rune
	Position math.Vec2
	Width    float64
	Index    int
}

// Processor validates text and computes character placements using font
// advances.
type Processor struct {
	loader *FontLoader
	cfg    Config
	log    *zap.Logger
}

// NewProcessor creates a Processor. A nil logger disables logging.
func NewProcessor(loader *FontLoader, cfg Config, log *zap.Logger) *Processor {
	if cfg.FallbackWidth <= 0 {
		cfg.FallbackWidth = DefaultConfig().FallbackWidth
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = DefaultConfig().MaxTextLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{loader: loader, cfg: cfg, log: log}
}

// ParseText trims and validates input text: it must be non-empty, within
// the length limit, and contain only printable ASCII (plus whitespace).
func (p *Processor) ParseText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrTextProcessing)
	}
	if len(text) > p.cfg.MaxTextLength {
		return "", fmt.Errorf("%w: text exceeds %d characters", ErrTextProcessing, p.cfg.MaxTextLength)
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		if r < 32 || r > 126 {
			return "", fmt.Errorf("%w: unsupported character %q", ErrTextProcessing, r)
		}
	}
	return text, nil
}

// CalculateLayout computes character placements left to right. Spaces
// advance the cursor without producing a placement. A spacing < 0 uses
// the configured default.
func (p *Processor) CalculateLayout(text string, spacing float64) ([]CharPlacement, error) {
	if spacing < 0 {
		spacing = p.cfg.CharacterSpacing
	}

	parsed, err := p.ParseText(text)
	if err != nil {
		return nil, err
	}

	var layout []CharPlacement
	xOffset := 0.0

	for i, r := range parsed {
		if unicode.IsSpace(r) {
			xOffset += p.spaceWidth() + spacing
			continue
		}

		width := p.charWidth(r)
		layout = append(layout, CharPlacement{
			Char:     r,
			Position: math.Vec2{X: xOffset, Y: 0},
			Width:    width,
			Index:    i,
		})
		xOffset += width + spacing
	}

	return layout, nil
}

// TextOutlines returns the glyph contours for every distinct non-space
// character of the text. Characters whose outline cannot be extracted
// map to an empty contour list with a logged warning.
func (p *Processor) TextOutlines(text string) (map[rune][][]math.Vec2, error) {
	parsed, err := p.ParseText(text)
	if err != nil {
		return nil, err
	}

	outlines := make(map[rune][][]math.Vec2)
	for _, r := range parsed {
		if unicode.IsSpace(r) {
			continue
		}
		if _, ok := outlines[r]; ok {
			continue
		}
		contours, err := p.loader.CharacterOutline(r)
		if err != nil {
			p.log.Warn("failed to get outline",
				zap.String("char", string(r)),
				zap.Error(err))
			outlines[r] = nil
			continue
		}
		outlines[r] = contours
	}

	return outlines, nil
}

// charWidth returns the advance of a character, falling back to the
// configured width when the font cannot provide one.
func (p *Processor) charWidth(r rune) float64 {
	if p.loader != nil && p.loader.Loaded() {
		if adv, err := p.loader.Advance(r); err == nil {
			return adv
		}
	}
	return p.cfg.FallbackWidth
}

// spaceWidth returns the advance of the space character, falling back to
// half the fallback width.
func (p *Processor) spaceWidth() float64 {
	if p.loader != nil && p.loader.Loaded() {
		if adv, err := p.loader.Advance(' '); err == nil {
			return adv
		}
	}
	return p.cfg.FallbackWidth * 0.5
}
