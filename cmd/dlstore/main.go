package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lakeio/dlstore/internal/logger"
	"github.com/lakeio/dlstore/pkg/acl"
	"github.com/lakeio/dlstore/pkg/config"
	"github.com/lakeio/dlstore/pkg/journal"
	"github.com/lakeio/dlstore/pkg/path"
	"github.com/lakeio/dlstore/pkg/permissions"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: dlstore [-config FILE] COMMAND [ARGS]

Commands:
  stat PATH                 show path properties
  mkdir PATH                create a directory
  touch PATH                create an empty file
  rm PATH                   delete a path (use -recursive for directories)
  mv SOURCE DEST            rename/move a path
  getacl PATH               print owner, group, permissions, and ACL
  setacl PATH ACL           replace the ACL (comma-joined entries)
  chmod PATH OCTAL          set permissions from a 4-digit octal string
  pending                   list interrupted operations in the journal
`)
	os.Exit(2)
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Override log level (DEBUG, INFO, WARN, ERROR)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger.SetLevel(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		logger.SetFile(cfg.Logging.File, logger.FileRotation{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
	}

	// Badger locks the journal directory, so the store is opened once here
	// and shared by the client and the pending listing.
	store, err := config.NewJournal(cfg.Journal)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close journal: %v", err)
			}
		}()
	}

	client, err := config.NewClient(cfg, store)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	// Ctrl-C cancels the in-flight step; journaled tokens allow resuming.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	if err := run(ctx, client, store, command, args); err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func run(ctx context.Context, client *path.Client, store *journal.Store, command string, args []string) error {
	switch command {
	case "stat":
		return runStat(ctx, client, args)
	case "mkdir":
		return runCreate(ctx, client, path.ResourceDirectory, args)
	case "touch":
		return runCreate(ctx, client, path.ResourceFile, args)
	case "rm":
		return runRemove(ctx, client, args)
	case "mv":
		return runMove(ctx, client, args)
	case "getacl":
		return runGetACL(ctx, client, args)
	case "setacl":
		return runSetACL(ctx, client, args)
	case "chmod":
		return runChmod(ctx, client, args)
	case "pending":
		return runPending(store)
	default:
		usage()
		return nil
	}
}

func runStat(ctx context.Context, client *path.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: stat PATH")
	}

	props, err := client.GetProperties(ctx, args[0], nil)
	if err != nil {
		return err
	}

	fmt.Printf("Path:          %s\n", args[0])
	fmt.Printf("Resource type: %s\n", props.ResourceType)
	fmt.Printf("ETag:          %s\n", props.ETag)
	fmt.Printf("Size:          %d\n", props.ContentLength)
	for name, value := range props.UserProperties {
		fmt.Printf("Property:      %s=%s\n", name, value)
	}
	return nil
}

func runCreate(ctx context.Context, client *path.Client, resource path.ResourceType, args []string) error {
	flags := flag.NewFlagSet("create", flag.ExitOnError)
	perms := flags.String("permissions", "", "Permission string for the new path")
	umask := flags.String("umask", "", "Umask applied when the parent has no default ACL")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: %s [-permissions P] [-umask U] PATH", resource)
	}

	result, err := client.Create(ctx, flags.Arg(0), resource, &path.CreateOptions{
		Permissions: *perms,
		Umask:       *umask,
	})
	if err != nil {
		return err
	}
	logger.Info("created %s %s (etag %s)", resource, flags.Arg(0), result.ETag)
	return nil
}

func runRemove(ctx context.Context, client *path.Client, args []string) error {
	flags := flag.NewFlagSet("rm", flag.ExitOnError)
	recursive := flags.Bool("recursive", false, "Delete a directory and its contents")
	maxSteps := flags.Int("max-steps", 0, "Stop after this many continuation steps (0 = no bound)")
	resume := flags.String("resume", "", "Continuation token to resume an interrupted delete")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: rm [-recursive] [-max-steps N] [-resume TOKEN] PATH")
	}

	result, err := client.Delete(ctx, flags.Arg(0), &path.DeleteOptions{
		Recursive:         *recursive,
		ContinuationToken: *resume,
		MaxSteps:          *maxSteps,
	})
	if err != nil {
		return err
	}
	if !result.Done() {
		fmt.Printf("delete incomplete, resume with token: %s\n", result.ContinuationToken)
		return nil
	}
	logger.Info("deleted %s", flags.Arg(0))
	return nil
}

func runMove(ctx context.Context, client *path.Client, args []string) error {
	flags := flag.NewFlagSet("mv", flag.ExitOnError)
	mode := flags.String("mode", "", "Rename mode (legacy or posix)")
	resume := flags.String("resume", "", "Continuation token to resume an interrupted move")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return fmt.Errorf("usage: mv [-mode M] [-resume TOKEN] SOURCE DEST")
	}

	result, err := client.Rename(ctx, flags.Arg(0), flags.Arg(1), &path.RenameOptions{
		Mode:              path.RenameMode(*mode),
		ContinuationToken: *resume,
	})
	if err != nil {
		return err
	}
	if !result.Done() {
		fmt.Printf("move incomplete, resume with token: %s\n", result.ContinuationToken)
		return nil
	}
	logger.Info("moved %s to %s", flags.Arg(0), flags.Arg(1))
	return nil
}

func runGetACL(ctx context.Context, client *path.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: getacl PATH")
	}

	controls, err := client.GetAccessControl(ctx, args[0], nil)
	if err != nil {
		return err
	}

	fmt.Printf("Owner:       %s\n", controls.Owner)
	fmt.Printf("Group:       %s\n", controls.Group)
	fmt.Printf("Permissions: %s (%s)\n", controls.Permissions, controls.Permissions.OctalString())
	for _, entry := range controls.Entries {
		fmt.Println(entry)
	}
	return nil
}

func runSetACL(ctx context.Context, client *path.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: setacl PATH ACL")
	}

	entries, err := acl.ParseList(args[1])
	if err != nil {
		return err
	}
	return client.SetAccessControl(ctx, args[0], entries, nil)
}

func runChmod(ctx context.Context, client *path.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: chmod PATH OCTAL")
	}

	perms, err := permissions.ParseOctal(args[1])
	if err != nil {
		return err
	}
	return client.SetPermissions(ctx, args[0], perms, nil)
}

func runPending(store *journal.Store) error {
	if store == nil {
		return fmt.Errorf("journal is not enabled in the configuration")
	}

	pending, err := store.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("no interrupted operations")
		return nil
	}
	for _, op := range pending {
		fmt.Printf("%-8s %s (token %s)\n", op.Operation, op.Path, op.Token)
	}
	return nil
}
