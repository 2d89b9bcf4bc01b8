// Command ragctl manages raggate accounts from the terminal: adding users
// with a no-echo password prompt and listing the username→role mapping. It
// operates on the same data directory as the server and assumes the server
// is not running concurrently.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/term"

	"github.com/avolkovs/raggate/internal/common"
	"github.com/avolkovs/raggate/internal/filex"
	"github.com/avolkovs/raggate/internal/logging"
	"github.com/avolkovs/raggate/internal/server/config"
	"github.com/avolkovs/raggate/internal/server/creds"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}

	switch args[0] {
	case "useradd":
		return userAdd(args[1:])
	case "users":
		return listUsers(args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  ragctl useradd -u <username> -r <role> [-d <datadir>]
  ragctl users [-d <datadir>]`)
}

func newStore(ctx context.Context, dataDir string) (*creds.Store, error) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
	return creds.NewStore(ctx, cfg, nil, logger)
}

func userAdd(args []string) error {
	fs := flag.NewFlagSet("useradd", flag.ExitOnError)
	username := fs.String("u", "", "username")
	role := fs.String("r", "", "role")
	dataDir := fs.String("d", "", "data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *role == "" {
		return errors.New("both -u and -r are required")
	}

	ctx := context.Background()
	store, err := newStore(ctx, *dataDir)
	if err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := store.AddUser(ctx, *username, string(password), *role); err != nil {
		return err
	}
	fmt.Printf("added user %s with role %s\n", *username, *role)
	return nil
}

func promptPassword() ([]byte, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}

	fmt.Print("Repeat password: ")
	confirm, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if string(pw) != string(confirm) {
		common.WipeByteArray(pw)
		return nil, errors.New("passwords do not match")
	}
	if len(pw) == 0 {
		return nil, errors.New("password must not be empty")
	}
	return pw, nil
}

func listUsers(args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	dataDir := fs.String("d", "", "data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	store, err := newStore(ctx, *dataDir)
	if err != nil {
		return err
	}

	users := store.ListUsers(ctx)
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, users[name])
	}
	return nil
}
