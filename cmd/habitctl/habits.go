package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var userFlag string

func init() {
	habitsCmd := &cobra.Command{Use: "habits", Short: "Habit operations"}
	habitsCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	_ = habitsCmd.MarkPersistentFlagRequired("user")

	// create
	var name, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}
			data, err := doPostJSON(fmt.Sprintf("/api/users/%s/habits", userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Habit name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Habit description")
	_ = createCmd.MarkFlagRequired("name")
	habitsCmd.AddCommand(createCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the user's habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/habits", userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	habitsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get HABIT_ID",
		Short: "Get a habit by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/habits/%s", userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	habitsCmd.AddCommand(getCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete HABIT_ID",
		Short: "Delete a habit and its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doDelete(fmt.Sprintf("/api/users/%s/habits/%s", userFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	habitsCmd.AddCommand(deleteCmd)

	// log
	var note, at string
	logCmd := &cobra.Command{
		Use:   "log HABIT_ID",
		Short: "Log a completion and show the streak and any new badges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if note != "" {
				payload["note"] = note
			}
			if at != "" {
				if _, err := time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("--at must be RFC 3339, e.g. 2024-05-20T09:00:00Z")
				}
				payload["loggedAt"] = at
			}
			data, err := doPostJSON(fmt.Sprintf("/api/users/%s/habits/%s/entries", userFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	logCmd.Flags().StringVarP(&note, "note", "n", "", "Optional note")
	logCmd.Flags().StringVarP(&at, "at", "t", "", "Backdated completion time (RFC 3339)")
	habitsCmd.AddCommand(logCmd)

	// entries
	entriesCmd := &cobra.Command{
		Use:   "entries HABIT_ID",
		Short: "List a habit's entries, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/habits/%s/entries", userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	habitsCmd.AddCommand(entriesCmd)

	// predict
	predictCmd := &cobra.Command{
		Use:   "predict HABIT_ID",
		Short: "Predict tomorrow's completion probability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/habits/%s/predict", userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	habitsCmd.AddCommand(predictCmd)

	// analytics
	analyticsCmd := &cobra.Command{
		Use:   "analytics HABIT_ID",
		Short: "Show daily and weekly completion analytics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/habits/%s/analytics", userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	habitsCmd.AddCommand(analyticsCmd)

	rootCmd.AddCommand(habitsCmd)
}
