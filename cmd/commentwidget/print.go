package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/MosinFAM/comment-widget/internal/widget"
)

func formatState(st widget.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Page %s (%d comments)\n", st.PageInfo(), st.Total)
	if len(st.Comments) == 0 {
		sb.WriteString("  no comments\n")
	}
	for _, c := range st.Comments {
		fmt.Fprintf(&sb, "  #%d %s: %s\n", c.ID, c.Name, c.Content)
	}
	if st.Err != nil {
		fmt.Fprintf(&sb, "  ! %v\n", st.Err)
	}
	return sb.String()
}

func printState(w io.Writer, st widget.State) {
	fmt.Fprint(w, formatState(st))
}
