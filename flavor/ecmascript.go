package flavor

import (
	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
	"github.com/coregx/polyregex/validate"
)

var ecmaScriptProcessor = &Processor{
	flavor: None,
	parseFlags: func(src regex.Source) (flags.Set, error) {
		return flags.Parse(src)
	},
	validate: func(src regex.Source, f flags.Set) (*validate.Result, error) {
		return validate.Validate(src, f.(flags.Flags))
	},
	translate: func(src regex.Source, f flags.Set, res *validate.Result) Translation {
		ff := f.(flags.Flags)
		t := Translation{
			Pattern:    res.Translate(src.Pattern),
			IgnoreCase: ff.IgnoreCase(),
			Multiline:  ff.Multiline(),
			DotAll:     ff.DotAll(),
			Sticky:     ff.Sticky(),
		}
		if ff.UnicodeSets() {
			t.Unsupported = "unicode sets (flag 'v')"
		}
		return t
	},
}

// Default returns the processor of the default grammar.
func Default() *Processor {
	return ecmaScriptProcessor
}
