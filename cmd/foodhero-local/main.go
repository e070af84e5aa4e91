// Command foodhero-local runs the skill handler against a request envelope
// from disk, without Lambda.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"foodhero/internal/alexa"
	"foodhero/internal/app"
	"foodhero/internal/config"
	"foodhero/internal/logger"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "foodhero-local",
		Short:         "Invoke the Food Hero skill locally",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading config")

	root.AddCommand(newInvokeCmd(), newEventCmd())
	return root
}

func newInvokeCmd() *cobra.Command {
	var eventPath string

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run one request envelope through the handler and print the response",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := readEnvelope(cmd.InOrStdin(), eventPath)
			if err != nil {
				return err
			}

			cfg := config.Load()
			log := logger.New(cfg.LogLevel, "console")
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			h := app.NewHandler(ctx, cfg, log)

			res, err := h.Handle(ctx, env)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&eventPath, "event", "e", "-", `request envelope JSON file, "-" for stdin`)
	return cmd
}

func newEventCmd() *cobra.Command {
	var (
		intent   string
		token    string
		deviceID string
		endpoint string
		appID    string
	)

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Print a sample request envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), sampleEnvelope(intent, token, deviceID, endpoint, appID))
		},
	}
	cmd.Flags().StringVar(&intent, "intent", "GetDinnerIntent", `intent name, or "LaunchRequest"`)
	cmd.Flags().StringVar(&token, "consent-token", "", "address consent token")
	cmd.Flags().StringVar(&deviceID, "device-id", "local-device", "device id")
	cmd.Flags().StringVar(&endpoint, "api-endpoint", "https://api.amazonalexa.com", "device address API endpoint")
	cmd.Flags().StringVar(&appID, "app-id", os.Getenv("APP_ID"), "skill application id")
	return cmd
}

func readEnvelope(stdin io.Reader, path string) (alexa.RequestEnvelope, error) {
	var env alexa.RequestEnvelope

	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return env, fmt.Errorf("open event: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return env, fmt.Errorf("decode event: %w", err)
	}
	return env, nil
}

func sampleEnvelope(intent, token, deviceID, endpoint, appID string) alexa.RequestEnvelope {
	user := &alexa.User{UserID: "amzn1.ask.account.local"}
	if token != "" {
		user.Permissions = &alexa.Permissions{ConsentToken: token}
	}

	req := alexa.Request{
		Type:      alexa.RequestTypeIntent,
		RequestID: "amzn1.echo-api.request.local",
		Locale:    "en-US",
		Intent:    &alexa.Intent{Name: intent},
	}
	if intent == alexa.RequestTypeLaunch {
		req.Type = alexa.RequestTypeLaunch
		req.Intent = nil
	}

	return alexa.RequestEnvelope{
		Version: "1.0",
		Session: alexa.Session{
			New:         true,
			SessionID:   "amzn1.echo-api.session.local",
			Application: alexa.Application{ApplicationID: appID},
		},
		Context: alexa.Context{System: alexa.System{
			Application: alexa.Application{ApplicationID: appID},
			User:        user,
			Device:      &alexa.Device{DeviceID: deviceID},
			APIEndpoint: endpoint,
		}},
		Request: req,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
