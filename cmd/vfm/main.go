package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dit-jay93/VersionManager/internal/api"
	"github.com/dit-jay93/VersionManager/internal/app"
	"github.com/dit-jay93/VersionManager/internal/config"
	"github.com/dit-jay93/VersionManager/internal/model"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Register", "VerifyAll").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.New(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "vfm",
	Short: "Per-file version tracking",
	Long:  "vfm tracks individual files, snapshots their content as numbered versions, and detects drift between disk and catalog.",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Data Dir: %s\n", cfg.DataDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Data Dir:  %s\n", cfg.DataDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Database:  %s (%s)\n", cfg.Database.Path, cfg.Database.Type)
		fmt.Printf("Store:     %s (%s)\n", cfg.Store.Root, cfg.Store.Type)
		fmt.Printf("Server:    %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		return nil
	},
}

// register command
var registerCmd = &cobra.Command{
	Use:   "register PATH",
	Short: "Start tracking a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")
		name, _ := cmd.Flags().GetString("name")
		if message == "" {
			return fmt.Errorf("a commit message is required (-m)")
		}

		a, err := newApp("Register")
		if err != nil {
			return err
		}
		defer a.Close()

		file, version, err := a.Registry.Register(args[0], message, name)
		if err != nil {
			return err
		}

		fmt.Printf("Registered %s (id %s) at version %d\n", file.DisplayName, file.ID, version.VersionNumber)
		return nil
	},
}

// ls command
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tracked files",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		a, err := newApp("ListFiles")
		if err != nil {
			return err
		}
		defer a.Close()

		files, err := a.Registry.ListFiles(all)
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Println("No tracked files.")
			return nil
		}

		for _, f := range files {
			marker := " "
			if f.IsFavorite {
				marker = "*"
			}
			fmt.Printf("%-8s %s %-24s %s  %s\n", f.Status, marker, f.DisplayName, f.ID, f.FilePath)
		}
		return nil
	},
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info FILE_ID",
	Short: "Show a tracked file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetFile")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.Registry.GetFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %s\n", f.ID)
		fmt.Printf("Name:      %s\n", f.DisplayName)
		fmt.Printf("Path:      %s\n", f.FilePath)
		fmt.Printf("Status:    %s\n", f.Status)
		fmt.Printf("Size:      %d\n", f.FileSize)
		fmt.Printf("Hash:      %s\n", f.FileHash)
		fmt.Printf("Modified:  %s\n", f.ModifiedTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Tracked:   %s\n", f.CreatedAt.Format("2006-01-02 15:04:05"))
		if f.ProjectID != "" {
			fmt.Printf("Project:   %s\n", f.ProjectID)
		}
		if f.IsArchived {
			fmt.Println("Archived:  yes")
		}

		tags, err := a.Registry.ListFileTags(f.ID)
		if err == nil && len(tags) > 0 {
			fmt.Printf("Tags:     ")
			for _, t := range tags {
				fmt.Printf(" #%s", t.Name)
			}
			fmt.Println()
		}
		return nil
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm FILE_ID",
	Short: "Stop tracking a file and delete its versions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Registry.Delete(args[0]); err != nil {
			return err
		}

		fmt.Println("Deleted. The live file on disk was not touched.")
		return nil
	},
}

// commit command
var commitCmd = &cobra.Command{
	Use:   "commit FILE_ID",
	Short: "Snapshot the current content as a new version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")
		if message == "" {
			return fmt.Errorf("a commit message is required (-m)")
		}

		a, err := newApp("CreateVersion")
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.Registry.CreateVersion(args[0], message)
		if err != nil {
			return err
		}

		fmt.Printf("Created version %d: %s\n", v.VersionNumber, v.CommitMessage)
		return nil
	},
}

// versions command
var versionsCmd = &cobra.Command{
	Use:   "versions FILE_ID",
	Short: "List a file's versions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListVersions")
		if err != nil {
			return err
		}
		defer a.Close()

		versions, err := a.Registry.ListVersions(args[0])
		if err != nil {
			return err
		}

		for _, v := range versions {
			pin := ""
			if v.IsPinned {
				pin = "  [pinned]"
			}
			fmt.Printf("v%-4d %s  %8d  %s%s\n",
				v.VersionNumber,
				v.CreatedAt.Format("2006-01-02 15:04:05"),
				v.FileSize,
				v.CommitMessage,
				pin,
			)
		}
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore FILE_ID VERSION",
	Short: "Restore a version over the tracked file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var number int
		if _, err := fmt.Sscanf(args[1], "%d", &number); err != nil || number < 1 {
			return fmt.Errorf("invalid version number: %s", args[1])
		}

		a, err := newApp("RestoreVersion")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Registry.RestoreVersion(args[0], number); err != nil {
			return err
		}

		fmt.Printf("Restored to version %d\n", number)
		return nil
	},
}

// verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [FILE_ID]",
	Short: "Check tracked files against their recorded hashes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		a, err := newApp("Verify")
		if err != nil {
			return err
		}
		defer a.Close()

		if all || len(args) == 0 {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := a.Engine.VerifyAll(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d OK, %d modified, %d missing (%d total)\n",
				summary.OK, summary.Modified, summary.Missing, summary.Total)
			if summary.Modified > 0 || summary.Missing > 0 {
				for id, st := range summary.Statuses {
					if st != model.StatusOK {
						fmt.Printf("%-8s %s\n", st, id)
					}
				}
			}
			return nil
		}

		status, err := a.Engine.Verify(args[0])
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}

// pin command
var pinCmd = &cobra.Command{
	Use:   "pin FILE_ID VERSION",
	Short: "Toggle a version's pinned copy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var number int
		if _, err := fmt.Sscanf(args[1], "%d", &number); err != nil || number < 1 {
			return fmt.Errorf("invalid version number: %s", args[1])
		}

		a, err := newApp("TogglePin")
		if err != nil {
			return err
		}
		defer a.Close()

		state, err := a.Registry.TogglePin(args[0], number)
		if err != nil {
			return err
		}

		if state.Pinned {
			fmt.Printf("Pinned: %s\n", state.PinnedPath)
		} else {
			fmt.Println("Unpinned.")
		}
		return nil
	},
}

// check command
var checkCmd = &cobra.Command{
	Use:   "check FILE_ID [VERSION]",
	Short: "Verify backup copies against their stored hashes",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("VerifyBackup")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 2 {
			var number int
			if _, err := fmt.Sscanf(args[1], "%d", &number); err != nil || number < 1 {
				return fmt.Errorf("invalid version number: %s", args[1])
			}
			check, err := a.Engine.VerifyBackup(args[0], number)
			if err != nil {
				return err
			}
			printBackupCheck(number, check)
			return nil
		}

		checks, err := a.Engine.VerifyAllBackups(args[0])
		if err != nil {
			return err
		}
		for number, check := range checks {
			printBackupCheck(number, check)
		}
		return nil
	},
}

func printBackupCheck(number int, check vfm.BackupCheck) {
	if check.Valid {
		fmt.Printf("v%-4d OK\n", number)
		return
	}
	fmt.Printf("v%-4d CORRUPT  %s\n", number, check.Error)
}

// tag command
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add FILE_ID NAME",
	Short: "Attach a tag to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AttachTag")
		if err != nil {
			return err
		}
		defer a.Close()

		tag, err := a.Registry.AttachTag(args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Tagged #%s\n", tag.Name)
		return nil
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm FILE_ID TAG_ID",
	Short: "Detach a tag from a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DetachTag")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Registry.DetachTag(args[0], args[1]); err != nil {
			return err
		}

		fmt.Println("Detached.")
		return nil
	},
}

var tagLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListTags")
		if err != nil {
			return err
		}
		defer a.Close()

		tags, err := a.Registry.ListTags()
		if err != nil {
			return err
		}

		for _, t := range tags {
			fmt.Printf("#%-20s %s\n", t.Name, t.ID)
		}
		return nil
	},
}

// events command
var eventsCmd = &cobra.Command{
	Use:   "events FILE_ID",
	Short: "View a file's history timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("ListEvents")
		if err != nil {
			return err
		}
		defer a.Close()

		events, err := a.Registry.ListEvents(args[0], limit)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		for _, e := range events {
			fmt.Printf("%s  %-16s %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Description)
		}
		return nil
	},
}

// project command
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		color, _ := cmd.Flags().GetString("color")

		a, err := newApp("CreateProject")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Registry.CreateProject(args[0], description, color)
		if err != nil {
			return err
		}

		fmt.Printf("Created project %s (id %s)\n", p.Name, p.ID)
		return nil
	},
}

var projectLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListProjects")
		if err != nil {
			return err
		}
		defer a.Close()

		projects, err := a.Registry.ListProjects()
		if err != nil {
			return err
		}

		for _, p := range projects {
			count, err := a.Registry.ProjectFileCount(p.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%-24s %s  %d file(s)\n", p.Name, p.ID, count)
		}
		return nil
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm PROJECT_ID",
	Short: "Delete a project (files are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteProject")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Registry.DeleteProject(args[0]); err != nil {
			return err
		}

		fmt.Println("Deleted.")
		return nil
	},
}

var projectAssignCmd = &cobra.Command{
	Use:   "assign FILE_ID [PROJECT_ID]",
	Short: "Assign a file to a project; omit PROJECT_ID to unassign",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AssignProject")
		if err != nil {
			return err
		}
		defer a.Close()

		projectID := ""
		if len(args) == 2 {
			projectID = args[1]
		}

		if err := a.Registry.AssignProject(args[0], projectID); err != nil {
			return err
		}

		if projectID == "" {
			fmt.Println("Unassigned.")
		} else {
			fmt.Println("Assigned.")
		}
		return nil
	},
}

// favorite / archive / rename commands
var favoriteCmd = &cobra.Command{
	Use:   "favorite FILE_ID",
	Short: "Toggle the favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetFavorite")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.Registry.GetFile(args[0])
		if err != nil {
			return err
		}

		if err := a.Registry.SetFavorite(f.ID, !f.IsFavorite); err != nil {
			return err
		}

		if f.IsFavorite {
			fmt.Println("Unfavorited.")
		} else {
			fmt.Println("Favorited.")
		}
		return nil
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive FILE_ID",
	Short: "Toggle the archived flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetArchived")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.Registry.GetFile(args[0])
		if err != nil {
			return err
		}

		if err := a.Registry.SetArchived(f.ID, !f.IsArchived); err != nil {
			return err
		}

		if f.IsArchived {
			fmt.Println("Unarchived.")
		} else {
			fmt.Println("Archived.")
		}
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename FILE_ID NAME",
	Short: "Change a file's display name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Rename")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Registry.Rename(args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Renamed to %s\n", args[1])
		return nil
	},
}

// relink command
var relinkCmd = &cobra.Command{
	Use:   "relink ROOT",
	Short: "Search ROOT for missing tracked files and repoint them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useHash, _ := cmd.Flags().GetBool("hash")
		exts, _ := cmd.Flags().GetStringSlice("ext")
		maxSize, _ := cmd.Flags().GetInt64("max-size")
		days, _ := cmd.Flags().GetInt("days")

		a, err := newApp("Relink")
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.Registry.Relink(vfm.RelinkOptions{
			Root:           args[0],
			UseHash:        useHash,
			IncludeExts:    exts,
			MaxSizeBytes:   maxSize,
			ModifiedWithin: time.Duration(days) * 24 * time.Hour,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Relinked %d of %d missing file(s); %d not found (%d candidates scanned)\n",
			summary.Relinked, summary.Checked, summary.NotFound, summary.Scanned)
		return nil
	},
}

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Serve")
		if err != nil {
			return err
		}
		defer a.Close()

		srv := api.NewServer(a.Config.Server, a.Registry, a.Engine, a.Logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		fmt.Printf("Listening on %s\n", srv.Addr)

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// tag subcommands
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagLsCmd)

	// project subcommands
	projectCmd.AddCommand(projectAddCmd)
	projectAddCmd.Flags().StringP("description", "d", "", "Project description")
	projectAddCmd.Flags().StringP("color", "c", "", "Hex color for UI consumers")
	projectCmd.AddCommand(projectLsCmd)
	projectCmd.AddCommand(projectRmCmd)
	projectCmd.AddCommand(projectAssignCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringP("message", "m", "", "Commit message for version 1")
	registerCmd.Flags().StringP("name", "n", "", "Display name (defaults to the filename)")
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolP("all", "a", false, "Include archived files")
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(commitCmd)
	commitCmd.Flags().StringP("message", "m", "", "Commit message")
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().BoolP("all", "a", false, "Verify every tracked file")
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 50, "Maximum number of events to show")
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(relinkCmd)
	relinkCmd.Flags().Bool("hash", false, "Require content hash match")
	relinkCmd.Flags().StringSlice("ext", nil, "Only consider these extensions")
	relinkCmd.Flags().Int64("max-size", 0, "Skip candidates larger than this many bytes")
	relinkCmd.Flags().Int("days", 0, "Skip candidates modified more than this many days ago")
	rootCmd.AddCommand(serveCmd)
}
