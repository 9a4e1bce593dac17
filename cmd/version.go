package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "checkform", resolveVersion(version))
	},
}

// resolveVersion normalizes v to a canonical semver tag, falling back to
// the module version recorded in the binary and then to "(devel)".
func resolveVersion(v string) string {
	if c := canonical(v); c != "" {
		return c
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if c := canonical(info.Main.Version); c != "" {
			return c
		}
	}
	return "(devel)"
}

func canonical(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
