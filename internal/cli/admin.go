package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/service"
	"github.com/interiorfitout/backoffice/internal/infrastructure/db/mongo"
	"github.com/interiorfitout/backoffice/internal/pkg/config"
	"github.com/interiorfitout/backoffice/pkg/logger"
)

// adminManager is the subset of service.AdminService the commands drive.
type adminManager interface {
	Create(ctx context.Context, name, email, password string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	SetActive(ctx context.Context, email string, active bool) error
}

// passwordReader reads a password without echo. Replaced in tests.
var passwordReader = func(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return string(b), err
}

// withAdmins connects to MongoDB for the duration of fn.
func withAdmins(ctx context.Context, fn func(adminManager) error) error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "backoffice",
	})

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongo.NewAdminRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}
	return fn(service.NewAdminService(repo, log))
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
		Long:  "Seed, list, activate and deactivate the admin accounts that may log in to the back office.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminActivationCmd("activate", true))
	cmd.AddCommand(newAdminActivationCmd("deactivate", false))

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new admin account",
		Example: `  backoffice admin create --email admin@example.com --name "Site Admin"
  backoffice admin create --email admin@example.com --password secret123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmins(cmd.Context(), func(m adminManager) error {
				return runAdminCreate(cmd.Context(), cmd.OutOrStdout(), m, name, email, password)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Admin display name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runAdminCreate(ctx context.Context, out io.Writer, m adminManager, name, email, password string) error {
	if password == "" {
		pw, err := passwordReader("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		confirm, err := passwordReader("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if pw != confirm {
			return errors.New("passwords do not match")
		}
		password = pw
	}

	admin, err := m.Create(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrAdminExists) {
			return fmt.Errorf("an admin with email %q already exists", email)
		}
		return err
	}

	fmt.Fprintf(out, "Created admin %q (%s)\n", admin.Email, admin.ID)
	return nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmins(cmd.Context(), func(m adminManager) error {
				return runAdminList(cmd.Context(), cmd.OutOrStdout(), m, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(ctx context.Context, out io.Writer, m adminManager, jsonOutput bool) error {
	admins, err := m.List(ctx)
	if err != nil {
		return err
	}

	type adminRow struct {
		Email     string `json:"email"`
		Name      string `json:"name"`
		Active    bool   `json:"active"`
		LastLogin string `json:"lastLogin,omitempty"`
	}
	rows := make([]adminRow, 0, len(admins))
	for _, a := range admins {
		row := adminRow{Email: a.Email, Name: a.Name, Active: a.IsActive}
		if a.LastLoginAt != nil {
			row.LastLogin = a.LastLoginAt.UTC().Format("2006-01-02 15:04")
		}
		rows = append(rows, row)
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, "No admin accounts. Use 'backoffice admin create' to seed one.")
		return nil
	}

	fmt.Fprintf(out, "%-32s %-24s %-8s %s\n", "EMAIL", "NAME", "ACTIVE", "LAST LOGIN")
	for _, r := range rows {
		last := r.LastLogin
		if last == "" {
			last = "never"
		}
		fmt.Fprintf(out, "%-32s %-24s %-8t %s\n", r.Email, r.Name, r.Active, last)
	}
	return nil
}

// ---------- admin activate / deactivate ----------

func newAdminActivationCmd(use string, active bool) *cobra.Command {
	short := "Allow an admin to log in again"
	if !active {
		short = "Block an admin from logging in; outstanding tokens stop working on their next request"
	}

	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmins(cmd.Context(), func(m adminManager) error {
				return runAdminSetActive(cmd.Context(), cmd.OutOrStdout(), m, args[0], active)
			})
		},
	}
}

func runAdminSetActive(ctx context.Context, out io.Writer, m adminManager, email string, active bool) error {
	if err := m.SetActive(ctx, email, active); err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return fmt.Errorf("no admin with email %q", email)
		}
		return err
	}
	state := "activated"
	if !active {
		state = "deactivated"
	}
	fmt.Fprintf(out, "Admin %q %s\n", domain.NormalizeEmail(email), state)
	return nil
}
