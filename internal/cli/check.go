package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newCheckCmd() *cobra.Command {
	var (
		date         string
		start        string
		end          string
		excludeID    string
		excludeTitle string
	)
	cmd := &cobra.Command{
		Use:   "check <resource>",
		Short: "Check whether a resource is free in a time slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"resourceReference": args[0],
				"date":              date,
				"startTime":         start,
				"endTime":           end,
			}
			if excludeID != "" {
				payload["excludeBookingId"] = excludeID
			}
			if excludeTitle != "" {
				payload["excludeTitle"] = excludeTitle
			}
			body, err := doJSON(http.MethodPost, "/availability/check", payload)
			if err != nil {
				return err
			}
			printResult(cmd, body)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date to check (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&excludeID, "exclude-id", "", "Booking ID to exclude (when editing)")
	cmd.Flags().StringVar(&excludeTitle, "exclude-title", "", "Booking title to exclude (when editing)")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func printResult(cmd *cobra.Command, body []byte) {
	result := gjson.ParseBytes(body)
	if result.Get("resourceUnresolved").Bool() {
		cmd.Println("resource could not be resolved; availability unknown")
		return
	}
	name := result.Get("resourceName").String()
	if result.Get("available").Bool() {
		cmd.Printf("%s is AVAILABLE\n", name)
	} else {
		cmd.Printf("%s is NOT available\n", name)
	}
	printNotes(cmd, "Conflicts", result.Get("conflicts"))
	printNotes(cmd, "Possible conflicts", result.Get("possibleConflicts"))
	printNotes(cmd, "Warnings", result.Get("warnings"))
	printNotes(cmd, "Adjacent spaces", result.Get("adjacent"))
	if failed := result.Get("failedSources"); failed.Exists() && len(failed.Array()) > 0 {
		cmd.Printf("note: some sources failed: %s\n", failed.Raw)
	}
}

func printNotes(cmd *cobra.Command, heading string, notes gjson.Result) {
	arr := notes.Array()
	if len(arr) == 0 {
		return
	}
	cmd.Printf("%s:\n", heading)
	for _, n := range arr {
		cmd.Println(fmt.Sprintf("  - %s (%s-%s): %s",
			n.Get("title").String(),
			n.Get("start").String(),
			n.Get("end").String(),
			n.Get("explanation").String()))
	}
}
