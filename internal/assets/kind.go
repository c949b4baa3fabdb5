package assets

// Kind identifies a sprite the game asks for. Each kind lives at a fixed
// index inside one sprite sheet.
type Kind int

const (
	KindBackground Kind = iota
	KindPaddleSmall
	KindPaddleMedium
	KindBall
)

// AllKinds lists every sprite the game preloads.
var AllKinds = []Kind{KindBackground, KindPaddleSmall, KindPaddleMedium, KindBall}

// Sheet manifest paths inside the asset filesystem.
const (
	SheetBackground = "textures/background.yaml"
	SheetBreakout   = "textures/breakout.yaml"
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindPaddleSmall:
		return "paddle_small"
	case KindPaddleMedium:
		return "paddle_medium"
	case KindBall:
		return "ball"
	default:
		return "unknown"
	}
}

// Sheet returns the manifest path of the sheet holding this sprite.
func (k Kind) Sheet() string {
	if k == KindBackground {
		return SheetBackground
	}
	return SheetBreakout
}

// Index returns the sprite position inside its sheet.
func (k Kind) Index() int {
	switch k {
	case KindPaddleMedium:
		return 1
	case KindBall:
		return 2
	default:
		return 0
	}
}
