package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// confirm presents a warning and asks the operator to continue. --yes
// answers every prompt; a non-terminal stdin declines, since silently
// proceeding past an anomaly would defeat the gate.
func confirm(cmd *cobra.Command, message string, assumeYes bool) bool {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "WARNING: %s\n", message)

	if assumeYes {
		fmt.Fprintln(out, "Continuing (--yes).")
		return true
	}

	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok {
		fd := file.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			fmt.Fprintln(out, "Standard input is not a terminal; declining. Pass --yes to continue.")
			return false
		}
	}

	fmt.Fprint(out, "Continue? [y/N]: ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
