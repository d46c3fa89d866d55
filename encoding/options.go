package encoding

import (
	"fmt"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/internal/options"
)

// DefaultMaxDepth is the default nesting limit for lists and objects.
// The top-level message object is depth 0; each List or Object value entered adds one.
const DefaultMaxDepth = 32

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithEncoderMaxDepth sets the maximum nesting depth the encoder accepts.
//
// Parameters:
//   - depth: Maximum depth, must be at least 1
func WithEncoderMaxDepth(depth int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if depth < 1 {
			return fmt.Errorf("%w: max depth %d must be at least 1", errs.ErrInvalidConfig, depth)
		}
		e.maxDepth = depth

		return nil
	})
}

// WithMaxDepth sets the maximum nesting depth the decoder accepts.
// Input nested deeper fails with ErrRecursionLimitExceeded.
//
// Parameters:
//   - depth: Maximum depth, must be at least 1
func WithMaxDepth(depth int) DecoderOption {
	return options.New(func(d *Decoder) error {
		if depth < 1 {
			return fmt.Errorf("%w: max depth %d must be at least 1", errs.ErrInvalidConfig, depth)
		}
		d.maxDepth = depth

		return nil
	})
}
