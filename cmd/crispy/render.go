package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/crispy/pkg/render"
	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/view"
)

func renderCmd() *cobra.Command {
	var (
		position string
		title    string
		count    int
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the HTML of a demo toast container",
		Long: `Render a container holding demo toasts and print its HTML.

Examples:
  crispy render
  crispy render --position=top-center --count=3 --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := toast.ParsePosition(position)
			if err != nil {
				return err
			}

			t := toast.New(toast.WithPosition(pos))
			defer t.Close()

			h := t.Handle()
			for i := 1; i <= count; i++ {
				view.WithTitle(h, view.LevelInfo, title, fmt.Sprintf("Toast %d of %d", i, count))
			}
			t.Flush()

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty, Indent: "  "})
			html, err := r.RenderToString(view.Container(t.Snapshot()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&position, "position", "p", string(toast.DefaultPosition), "Container position")
	cmd.Flags().StringVarP(&title, "title", "t", "Hello", "Toast title")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of toasts")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")

	return cmd
}
