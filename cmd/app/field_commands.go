package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fieldguard/cmd/app/commands"
	"github.com/allisson/fieldguard/internal/app"
	"github.com/allisson/fieldguard/internal/config"
	protectionService "github.com/allisson/fieldguard/internal/protection/service"
)

func getFieldCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-field-keys",
			Usage: "Generate a new field master key and fingerprint pepper",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI used to wrap the keys (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateFieldKeys(
					ctx,
					protectionService.NewKMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "protect-field",
			Usage: "Protect a value with the configured field keys and print the stored form",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tier",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Protection tier: highest, strong, basic or system-code",
				},
				&cli.StringFlag{
					Name:     "value",
					Required: true,
					Usage:    "Plaintext value to protect",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				protection, err := container.ProtectionUseCase()
				if err != nil {
					return err
				}

				return commands.RunProtectField(
					ctx,
					protection,
					commands.DefaultIO().Writer,
					cmd.String("tier"),
					cmd.String("value"),
				)
			},
		},
		{
			Name:  "fingerprint-field",
			Usage: "Print the search fingerprint of a value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "kind",
					Aliases: []string{"k"},
					Value:   "text",
					Usage:   "Normalization kind: text, email or phone",
				},
				&cli.StringFlag{
					Name:     "value",
					Required: true,
					Usage:    "Plaintext value to fingerprint",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				protection, err := container.ProtectionUseCase()
				if err != nil {
					return err
				}

				return commands.RunFingerprintField(
					ctx,
					protection,
					commands.DefaultIO().Writer,
					cmd.String("kind"),
					cmd.String("value"),
				)
			},
		},
	}
}
