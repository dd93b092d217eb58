package clix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// OutputFormat is how a command prints its result.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// AddOutputFlag registers the --json flag shared by the read commands.
func AddOutputFlag(flags *pflag.FlagSet) {
	flags.Bool("json", false, "Print JSON instead of human readable output")
}

func ParseOutputFormat(flags *pflag.FlagSet) OutputFormat {
	if asJSON, _ := flags.GetBool("json"); asJSON {
		return OutputJSON
	}
	return OutputText
}

// ParseEntryID parses a positional entry id argument.
func ParseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry ID provided: '%s'. Please provide a positive number", arg)
	}
	return id, nil
}

// JoinText rebuilds the text of `analyze` from its positional args, so quoting
// the text is optional.
func JoinText(args []string) string {
	return strings.Join(args, " ")
}
