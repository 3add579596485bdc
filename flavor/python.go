package flavor

import (
	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
	"github.com/coregx/polyregex/validate"
)

var pythonProcessor = &Processor{
	flavor: Python,
	parseFlags: func(src regex.Source) (flags.Set, error) {
		return flags.ParsePython(src)
	},
	validate: func(src regex.Source, f flags.Set) (*validate.Result, error) {
		pf := f.(flags.PythonFlags)
		return validate.Scan(src, validate.Options{
			Dialect: validate.Python,
			Verbose: pf.Verbose(),
			ASCII:   pf.ASCII(),
			Flags:   pf.String(),
		})
	},
	translate: func(src regex.Source, f flags.Set, res *validate.Result) Translation {
		pf := f.(flags.PythonFlags)
		return Translation{
			Pattern:    res.Translate(src.Pattern),
			IgnoreCase: pf.IgnoreCase(),
			Multiline:  pf.Multiline(),
			DotAll:     pf.DotAll(),
			Verbose:    pf.Verbose(),
		}
	},
}
