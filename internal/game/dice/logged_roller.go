package dice

import "go.uber.org/zap"

// Roller binds a Source and Styler and logs every roll at debug level with
// the expression, flags, drawn dice and kept values.
type Roller struct {
	src    Source
	styler Styler
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller.
//
// Precondition: src, st and logger must be non-nil.
func NewLoggedRoller(src Source, st Styler, logger *zap.Logger) *Roller {
	return &Roller{src: src, styler: st, logger: logger}
}

// Roll rolls spec with opts and returns the formatted line.
//
// Postcondition: Returns the formatted result or a validation error.
func (r *Roller) Roll(spec Spec, opts Options) (string, error) {
	groups, err := Draw(spec.Sides, spec.Count, opts, r.src)
	if err != nil {
		r.logger.Debug("dice roll rejected",
			zap.String("expression", spec.String()),
			zap.Error(err),
		)
		return "", err
	}

	drawn := make([]int, 0, len(groups)*2)
	kept := make([]int, 0, len(groups))
	for _, g := range groups {
		drawn = append(drawn, g.Values...)
		kept = append(kept, g.Value())
	}
	r.logger.Debug("dice roll",
		zap.String("expression", spec.String()),
		zap.Bool("advantage", opts.Advantage),
		zap.Bool("disadvantage", opts.Disadvantage),
		zap.Ints("dice", drawn),
		zap.Ints("kept", kept),
	)
	return Format(groups, spec.Sides, r.styler), nil
}

// RollExpr parses text and rolls it.
//
// Postcondition: Returns the formatted result or a parse/validation error.
func (r *Roller) RollExpr(text string, opts Options) (string, error) {
	spec, err := Parse(text)
	if err != nil {
		r.logger.Debug("dice roll rejected",
			zap.String("expression", text),
			zap.Error(err),
		)
		return "", err
	}
	return r.Roll(spec, opts)
}
