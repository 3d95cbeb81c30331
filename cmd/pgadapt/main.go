package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgadapt/pgadapt/internal/config"
	_ "github.com/pgadapt/pgadapt/internal/database/postgres"
	"github.com/pgadapt/pgadapt/pkg/adapter"
)

var (
	configFile string
	version    = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pgadapt",
	Short: "PostgreSQL adapter inspection tool",
	Long: "Inspect PostgreSQL catalogs through the adapter layer: list tables, describe columns and " +
		"indexes, and run ad-hoc statements.",
	SilenceUsage: true,
}

func connect(ctx context.Context) (adapter.Connection, error) {
	profile, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	return adapter.Connect(ctx, profile.ConnectionConfig())
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables visible through the schema search path",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		tables, err := conn.SchemaOperations().ListTables(ctx)
		if err != nil {
			return err
		}
		for _, table := range tables {
			fmt.Println(table)
		}
		return nil
	},
}

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "Describe the columns of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		columns, err := conn.SchemaOperations().ListColumns(ctx, args[0])
		if err != nil {
			return err
		}
		for _, col := range columns {
			nullable := "NULL"
			if !col.Nullable {
				nullable = "NOT NULL"
			}
			line := fmt.Sprintf("%-3d %-32s %-20s %s", col.Position, col.Name, col.Type, nullable)
			if col.RawDefault != "" {
				line += " DEFAULT " + col.RawDefault
			}
			fmt.Println(line)
		}
		return nil
	},
}

var indexesCmd = &cobra.Command{
	Use:   "indexes <table>",
	Short: "List the secondary indexes of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		indexes, err := conn.SchemaOperations().ListIndexes(ctx, args[0])
		if err != nil {
			return err
		}
		for _, index := range indexes {
			kind := "index"
			if index.Unique {
				kind = "unique index"
			}
			fmt.Printf("%-40s %-14s (%s)\n", index.Name, kind, strings.Join(index.Columns, ", "))
		}
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a query and print decoded rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		rows, err := conn.DataOperations().Query(ctx, args[0])
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Printf("%v\n", row)
		}
		return nil
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <sql>",
	Short: "Run a statement and print the affected row count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		affected, err := conn.DataOperations().Exec(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%d row(s) affected\n", affected)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config",
		os.ExpandEnv("$HOME/.pgadapt/config.yaml"), "Path to connection profile")
	rootCmd.Version = version

	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(indexesCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(execCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
