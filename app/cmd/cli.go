package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/db/seeders"
	"github.com/Rakhulsr/go-catalog/app/logger"
	"github.com/Rakhulsr/go-catalog/app/models/migrations"
	"github.com/Rakhulsr/go-catalog/app/routes"
	"github.com/urfave/cli/v3"
)

func RunCli(env configs.ENV, args []string) error {
	cmd := &cli.Command{
		Name:           "catalog",
		Usage:          "Catalog API server and maintenance tasks",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env, c.Bool("migrate"))
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					applied, err := migrations.AutoMigrate(ctx, db, migrationOptions(env))
					if err != nil {
						return err
					}
					logger.Get().Infof("migration complete, %d applied", applied)
					return nil
				},
				Commands: []*cli.Command{
					{
						Name:  "status",
						Usage: "List migrations and whether they are applied",
						Action: func(ctx context.Context, c *cli.Command) error {
							db, err := configs.OpenConnection(env)
							if err != nil {
								return err
							}
							statuses, err := migrations.NewRunner(db, migrations.All(migrationOptions(env))).Status(ctx)
							if err != nil {
								return err
							}
							tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
							fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED AT")
							for _, st := range statuses {
								at := "pending"
								if st.AppliedAt != nil {
									at = st.AppliedAt.Format(time.RFC3339)
								}
								fmt.Fprintf(tw, "%d\t%s\t%s\n", st.Version, st.Name, at)
							}
							return tw.Flush()
						},
					},
				},
			},
			{
				Name:  "seed",
				Usage: "Fill an empty catalog with fake data",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "products", Value: 40, Usage: "number of products to create"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if _, err := migrations.AutoMigrate(ctx, db, migrationOptions(env)); err != nil {
						return err
					}
					_, err = seeders.DBSeed(ctx, db, int(c.Int("products")))
					return err
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin user unless the email is taken",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name", Value: "Administrator"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					email := strings.ToLower(strings.TrimSpace(c.String("email")))
					if len(c.String("password")) < 8 {
						return errors.New("password must be at least 8 characters")
					}
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.EnsureAdmin(db.WithContext(ctx), c.String("name"), email, c.String("password")); err != nil {
						return err
					}
					logger.Get().WithField("email", email).Info("admin user ready")
					return nil
				},
			},
		},
	}

	return cmd.Run(context.Background(), args)
}

func migrationOptions(env configs.ENV) migrations.Options {
	return migrations.Options{AdminEmail: env.AdminEmail, AdminPassword: env.AdminPassword}
}

func serve(ctx context.Context, env configs.ENV, migrate bool) error {
	db, err := configs.OpenConnection(env)
	if err != nil {
		return fmt.Errorf("db connection failed: %w", err)
	}
	if migrate {
		if _, err := migrations.AutoMigrate(ctx, db, migrationOptions(env)); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(db, env),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Get().Infof("server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Get().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
