package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/config"
	"github.com/JT-427/line-event-logger/internal/storage"
)

type backendFactory func(cfg config.StorageConfig) (ports.FileStorage, error)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded", "error", err)
	}

	root := newRootCmd(func(cfg config.StorageConfig) (ports.FileStorage, error) {
		return storage.New(cfg, storage.WithLogger(log))
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open backendFactory) *cobra.Command {
	var backendType string

	root := &cobra.Command{
		Use:          "storagectl",
		Short:        "Inspect the configured file storage backend",
		Long:         "storagectl uploads and deletes files through the same storage backend the webhook server uses.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&backendType, "type", "", "override STORAGE_TYPE (local, sharepoint, google_drive)")

	resolve := func() (ports.FileStorage, error) {
		cfg, err := config.LoadForTool()
		if err != nil {
			return nil, err
		}
		if override := strings.ToLower(strings.TrimSpace(backendType)); override != "" {
			cfg.Storage.Type = override
			if err := cfg.Storage.Validate(); err != nil {
				return nil, err
			}
		}
		return open(cfg.Storage)
	}

	root.AddCommand(uploadCmd(resolve))
	root.AddCommand(deleteCmd(resolve))
	return root
}

func uploadCmd(resolve func() (ports.FileStorage, error)) *cobra.Command {
	var name, contentType string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a local file and print the stored file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if name == "" {
				name = filepath.Base(args[0])
			}

			backend, err := resolve()
			if err != nil {
				return err
			}
			stored, err := backend.Upload(cmd.Context(), content, name, storage.ResolveContentType(contentType, name, content))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stored)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "file name to store (defaults to the base name of <file>)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (detected when empty)")
	return cmd
}

func deleteCmd(resolve func() (ports.FileStorage, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored file by its storage id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := resolve()
			if err != nil {
				return err
			}
			if !backend.Delete(cmd.Context(), args[0]) {
				return fmt.Errorf("delete %s: not deleted", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
