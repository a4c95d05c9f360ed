package commands

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/scheduler"
)

var (
	scheduleName     string
	scheduleEmail    string
	scheduleDate     string
	scheduleTime     string
	scheduleDuration time.Duration
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Book an exit interview with a video meeting link",
	Example: `  smartexit schedule --name "Jane Smith" --email jane.smith@company.com \
    --date 2025-02-10 --time "1:30 PM" --duration 90m`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sched, err := newScheduler(cmd.Context())
		if err != nil {
			return err
		}
		if sched == nil {
			return errors.New("calendar.token is not configured")
		}

		req := scheduler.Request{
			EmployeeName:  scheduleName,
			EmployeeEmail: scheduleEmail,
			Duration:      scheduleDuration,
		}
		if scheduleDate != "" {
			day, err := time.ParseInLocation(model.ISODateLayout, scheduleDate, sched.Location())
			if err != nil {
				return errors.New("--date must use YYYY-MM-DD")
			}
			req.Date = day
		}
		if scheduleTime != "" {
			slot, err := scheduler.ParseSlot(scheduleTime)
			if err != nil {
				return err
			}
			req.Slot = &slot
		}

		meeting, err := sched.Schedule(cmd.Context(), req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(meeting)
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleName, "name", "", "employee name")
	scheduleCmd.Flags().StringVar(&scheduleEmail, "email", "", "employee email")
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "interview date (YYYY-MM-DD)")
	scheduleCmd.Flags().StringVar(&scheduleTime, "time", "", `time slot between 11:00 AM and 4:00 PM, e.g. "1:30 PM"`)
	scheduleCmd.Flags().DurationVar(&scheduleDuration, "duration", scheduler.DefaultDuration, "meeting length (30m, 1h, 1h30m or 2h)")
	_ = scheduleCmd.MarkFlagRequired("name")
	_ = scheduleCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(scheduleCmd)
}
