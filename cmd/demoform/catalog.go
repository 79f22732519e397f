package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func catalogCmd(c *cli) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List industries, company sizes and demo time slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			industries, err := c.api.GetIndustries(ctx)
			if err != nil {
				return err
			}
			sizes, err := c.api.GetCompanySizes(ctx)
			if err != nil {
				return err
			}
			slots, err := c.api.GetTimeSlots(ctx, date)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDUSTRY\tNAME")
			for _, ind := range industries {
				fmt.Fprintf(w, "%s\t%s %s\n", ind.ID, ind.Icon, ind.Name)
			}
			fmt.Fprintln(w, "\nCOMPANY SIZE\tLABEL\tRANGE")
			for _, s := range sizes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Label, s.Range)
			}
			header := "\nTIME SLOT\tWINDOW\tAVAILABLE"
			if date != "" {
				header = fmt.Sprintf("\nTIME SLOT (%s)\tWINDOW\tAVAILABLE", date)
			}
			fmt.Fprintln(w, header)
			for _, s := range slots {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Label, yesNo(s.Available))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD) to check slot availability for")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
