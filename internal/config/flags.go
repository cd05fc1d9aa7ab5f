// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses server configuration flags from args.
//
// Flags:
//
//	-a                 http server address in format [host]:[port]
//	-grpc-address      grpc server address in format [host]:[port]
//	-d                 database DSN
//	-db-driver         database/sql driver name (pgx, sqlite3)
//	-qr-dir            directory for rendered QR images
//	-c/-config         json file path with configs
//	-token-sign-key    JWT signing secret
//	-token-algorithm   JWT HMAC algorithm (HS256, HS384, HS512)
//	-token-duration    admin token lifetime (e.g., "2h")
//	-qr-secret-key     base64 QR encryption key
//	-device-hash-key   HMAC key of the device SOS feed
//	-request-timeout   request timeout (e.g., "30s", "1m")
//	-log-level         zerolog level name
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("safeher-server", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, databaseDriver, qrDir string
	var jsonConfigPath string
	var tokenSignKey, tokenAlgorithm string
	var tokenDuration, requestTimeout time.Duration
	var qrSecretKey, deviceHashKey string
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVar(&qrDir, "qr-dir", "", "QR images directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenAlgorithm, "token-algorithm", "", "Token signing algorithm")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 2h)")
	fs.StringVar(&qrSecretKey, "qr-secret-key", "", "QR encryption key (base64)")
	fs.StringVar(&deviceHashKey, "device-hash-key", "", "Device feed HMAC key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:       tokenSignKey,
			TokenSignAlgorithm: tokenAlgorithm,
			TokenDuration:      tokenDuration,
			QRSecretKey:        qrSecretKey,
			DeviceHashKey:      deviceHashKey,
			LogLevel:           logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Files: Files{
				QRCodesDir: qrDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string if neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. It validates the port range, checks IP
// correctness unless host is "localhost", and returns an error if the format
// or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
