package transcoder

import (
	"github.com/wippyai/evm-abi/transcoder/internal/layout"
)

// LayoutInfo describes the head/tail shape shared by every value of a type.
type LayoutInfo = layout.Info

type LayoutCalculator = layout.Calculator

func NewLayoutCalculator() *LayoutCalculator {
	return layout.NewCalculator()
}
