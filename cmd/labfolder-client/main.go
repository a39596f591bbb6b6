// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Command labfolder-client is a thin CLI over the labfolder SDK:
// log in, dump entries, and move table elements to and from xlsx
// workbooks. The endpoint and token come from LABFOLDER_API_HOST and
// LABFOLDER_API_TOKEN unless overridden by flags.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elntools/labfolder/lib/tablefile"
	"github.com/elntools/labfolder/sdk/go/ctxlog"
	"github.com/elntools/labfolder/sdk/go/labfolder"
)

var (
	apiHost   string
	apiToken  string
	logLevel  string
	logFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "labfolder-client",
		Short: "Interact with a LabFolder electronic lab notebook",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctxlog.SetLevel(logLevel)
			ctxlog.SetFormat(logFormat)
		},
	}
	rootCmd.PersistentFlags().StringVar(&apiHost, "host", "", "LabFolder instance host (default: $LABFOLDER_API_HOST)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token (default: $LABFOLDER_API_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(loginCmd(), entryCmd(), exportTableCmd(), importTableCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func client() *labfolder.Client {
	c := labfolder.NewClientFromEnv()
	if apiHost != "" {
		c.APIHost = apiHost
	}
	if apiToken != "" {
		c.AuthToken = apiToken
	}
	return c
}

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Obtain a bearer token and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(os.Stderr, "Password for "+args[0]+": ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}
			c := client()
			user, err := c.Login(context.Background(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Hello %s!\n", user.FirstName)
			fmt.Println(c.AuthToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if not given)")
	return cmd
}

func entryCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "entry <id>",
		Short: "Fetch an entry and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := &labfolder.Entry{ID: args[0]}
			if err := entry.Get(context.Background(), client()); err != nil {
				return err
			}
			var out interface{} = entry
			if raw {
				out = entry.Raw
			}
			j, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(j))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the element detail records as fetched")
	return cmd
}

func exportTableCmd() *cobra.Command {
	var output string
	var noHeader bool
	cmd := &cobra.Command{
		Use:   "export-table <element-id>",
		Short: "Download a table element and write it to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			el := labfolder.NewTableElement()
			el.ID = args[0]
			el.Header = !noHeader
			if err := el.Load(context.Background(), client()); err != nil {
				return err
			}
			return tablefile.WriteFile(output, el.Sheets)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table.xlsx", "Output file path")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first row of each sheet as data, not column names")
	return cmd
}

func importTableCmd() *cobra.Command {
	var title string
	var noHeader bool
	cmd := &cobra.Command{
		Use:   "import-table <entry-id> <file.xlsx>",
		Short: "Create a table element in an entry from an xlsx workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := tablefile.ReadFile(args[1], !noHeader)
			if err != nil {
				return err
			}
			el := labfolder.NewTableElement()
			el.Title = title
			el.Header = !noHeader
			for name, t := range sheets {
				el.AddSheet(name, t)
			}
			if err := el.Create(context.Background(), client(), args[0]); err != nil {
				return err
			}
			fmt.Println(el.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title for the new table element")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first row of each sheet as data, not column names")
	return cmd
}
