// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client is a non-interactive CLI over the server API.
//
// Usage:
//
//	client [global flags] <command> [command flags]
//
// Commands: register, login, alert, sos, admin-register, admin-login, scan,
// update, alerts, resolve, version. Results are printed to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/safeher/internal/adapter"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/models"
	"github.com/caarlos0/env/v11"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var errUnknownCommand = errors.New("unknown command")

// clientConfig is read from the environment; global flags override it.
type clientConfig struct {
	ServerAddress string        `env:"SAFEHER_SERVER" envDefault:"localhost:8080"`
	Token         string        `env:"SAFEHER_TOKEN"`
	DeviceHashKey string        `env:"APP_DEVICE_HASH_KEY"`
	Timeout       time.Duration `env:"SAFEHER_TIMEOUT" envDefault:"15s"`
}

func main() {
	log := logger.NewConsoleLogger("safeher-client")

	var cfg clientConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("error getting env configs")
	}

	global := flag.NewFlagSet("client", flag.ExitOnError)
	global.StringVar(&cfg.ServerAddress, "s", cfg.ServerAddress, "server address")
	global.StringVar(&cfg.Token, "token", cfg.Token, "admin bearer token")
	global.StringVar(&cfg.DeviceHashKey, "device-key", cfg.DeviceHashKey, "device HMAC key")
	global.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	showVersion := global.Bool("v", false, "print build info")
	_ = global.Parse(os.Args[1:])

	if *showVersion {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	args := global.Args()
	if len(args) == 0 {
		global.Usage()
		os.Exit(2)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(adapter.Config{
		BaseURL:       cfg.ServerAddress,
		Timeout:       cfg.Timeout,
		DeviceHashKey: cfg.DeviceHashKey,
		Token:         cfg.Token,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	result, err := run(context.Background(), serverAdapter, args[0], args[1:])
	if err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("command failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("print result")
	}
}

// run executes one subcommand and returns the value to print.
func run(ctx context.Context, a adapter.ServerAdapter, command string, args []string) (any, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)

	switch command {
	case "register":
		var p models.IdentityPayload
		fs.StringVar(&p.Name, "name", "", "full name")
		fs.StringVar(&p.Email, "email", "", "email")
		fs.StringVar(&p.Phone, "phone", "", "phone")
		fs.StringVar(&p.VoterID, "voter-id", "", "voter id")
		fs.StringVar(&p.PanID, "pan-id", "", "PAN id")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return a.RegisterUser(ctx, p)

	case "login":
		var c models.UserCredentials
		fs.StringVar(&c.Email, "email", "", "email")
		fs.StringVar(&c.Phone, "phone", "", "phone")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return a.LoginUser(ctx, c)

	case "alert":
		var r models.UserAlertRequest
		fs.StringVar(&r.UserEmail, "email", "", "registered email")
		fs.Float64Var(&r.Latitude, "lat", 0, "latitude")
		fs.Float64Var(&r.Longitude, "lon", 0, "longitude")
		fs.StringVar(&r.Message, "message", "", "message")
		fs.StringVar(&r.PhotoURL, "photo-url", "", "photo URL")
		fs.StringVar(&r.AudioURL, "audio-url", "", "audio URL")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		id, err := a.SendUserAlert(ctx, r)
		return models.AlertCreatedResponse{AlertID: id}, err

	case "sos":
		var p models.DeviceAlertPayload
		fs.StringVar(&p.DeviceID, "device", "", "device id")
		fs.Float64Var(&p.Latitude, "lat", 0, "latitude")
		fs.Float64Var(&p.Longitude, "lon", 0, "longitude")
		fs.StringVar(&p.Message, "message", "", "message")
		fs.StringVar(&p.PhotoURL, "photo-url", "", "photo URL")
		fs.StringVar(&p.AudioURL, "audio-url", "", "audio URL")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		id, err := a.SendDeviceSOS(ctx, p)
		return models.AlertCreatedResponse{AlertID: id}, err

	case "admin-register", "admin-login":
		var c models.AdminCredentials
		fs.StringVar(&c.Username, "username", "", "username")
		fs.StringVar(&c.Password, "password", "", "password")
		fs.StringVar(&c.Email, "email", "", "email (register only)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if command == "admin-register" {
			return models.MessageResponse{Message: "admin registered"}, a.RegisterAdmin(ctx, c)
		}
		token, err := a.LoginAdmin(ctx, c)
		return models.AccessTokenResponse{AccessToken: token, TokenType: "bearer"}, err

	case "scan":
		qrToken := fs.String("qr", "", "encrypted QR token")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return a.VerifyQR(ctx, *qrToken)

	case "update":
		var u models.IdentityUpdate
		fs.StringVar(&u.Email, "email", "", "email of the identity")
		name := fs.String("name", "", "new name")
		phone := fs.String("phone", "", "new phone")
		voterID := fs.String("voter-id", "", "new voter id")
		panID := fs.String("pan-id", "", "new PAN id")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				u.Name = name
			case "phone":
				u.Phone = phone
			case "voter-id":
				u.VoterID = voterID
			case "pan-id":
				u.PanID = panID
			}
		})
		return a.UpdateIdentity(ctx, u)

	case "alerts":
		var f models.AlertFilter
		fs.Uint64Var(&f.Limit, "limit", 0, "maximum number of alerts")
		fs.BoolVar(&f.UnresolvedOnly, "unresolved", false, "only unresolved alerts")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		alerts, err := a.ListAlerts(ctx, f)
		return models.AlertsResponse{Alerts: alerts}, err

	case "resolve":
		id := fs.Int64("id", 0, "alert id")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return models.MessageResponse{Message: "alert resolved"}, a.ResolveAlert(ctx, *id)

	case "version":
		return a.Version(ctx)

	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, command)
	}
}
