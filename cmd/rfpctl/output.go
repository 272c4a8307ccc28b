package main

import (
	"fmt"
	"io"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/pkg/helpers"
)

func printResult(out io.Writer, res dto.ChatResult) {
	fmt.Fprintln(out, res.Response)
	if len(res.Sources) == 0 {
		return
	}

	fmt.Fprintf(out, "\nSources (%d tool calls):\n", res.FunctionCalls)
	for i, src := range res.Sources {
		fmt.Fprintf(out, "%d. %s", i+1, src.Title)
		if src.Location != "" {
			fmt.Fprintf(out, " [%s]", src.Location)
		}
		if closing := helpers.Value(src.ClosingDate); closing != "" {
			fmt.Fprintf(out, " closes %s", closing)
		}
		fmt.Fprintln(out)
		if src.SiteURL != "" {
			fmt.Fprintf(out, "   %s\n", src.SiteURL)
		}
	}
}
