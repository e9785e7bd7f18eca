package cmd

import (
	"fmt"

	"github.com/KaramelBytes/cfpstats/internal/proposals"
	"github.com/spf13/pflag"
)

// addLoadFlags registers the input parsing flags shared by the root and
// inspect commands.
func addLoadFlags(f *pflag.FlagSet) {
	f.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',', 'tab', ';' (default from file extension)")
	f.StringVar(&flagSheetName, "sheet-name", "", "XLSX sheet to read (default: first sheet)")
	f.IntVar(&flagSheetIndex, "sheet-index", 0, "1-based XLSX sheet index, used when --sheet-name is not set")
}

func loadOptions() (proposals.LoadOptions, error) {
	opt := proposals.LoadOptions{SheetName: flagSheetName, SheetIndex: flagSheetIndex}
	switch flagDelimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", flagDelimiter)
	}
	return opt, nil
}
