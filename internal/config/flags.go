package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
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

// parseFlags parses the server command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-request-timeout per-request timeout (e.g., "30s")
//	-db-driver database driver (pgx or sqlite3)
//	-d database DSN
//	-db-connect-timeout how long to wait for the database on startup
//	-images-backend image storage backend (local or s3)
//	-images-dir local media root
//	-images-base-url public URL prefix of stored images
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token lifetime (e.g., "24h"), 0 disables expiry
//	-token-hash-key HMAC key of stored token digests
//	-max-upload-size image upload limit in bytes
//	-log-level log level
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	var serverAddress NetAddress
	var requestTimeout, connectTimeout, tokenDuration time.Duration
	var dbDriver, databaseDSN string
	var imagesBackend, imagesDir, imagesBaseURL string
	var tokenSignKey, tokenIssuer, tokenHashKey string
	var maxUploadSize int64
	var logLevel string
	var jsonConfigPath string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&dbDriver, "db-driver", "", "Database driver: pgx or sqlite3")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.DurationVar(&connectTimeout, "db-connect-timeout", 0, "Wait-for-database timeout")
	fs.StringVar(&imagesBackend, "images-backend", "", "Image storage backend: local or s3")
	fs.StringVar(&imagesDir, "images-dir", "", "Local media root")
	fs.StringVar(&imagesBaseURL, "images-base-url", "", "Public URL prefix of images")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.StringVar(&tokenHashKey, "token-hash-key", "", "Token digest key")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Image upload limit in bytes")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			TokenHashKey:  tokenHashKey,
			MaxUploadSize: maxUploadSize,
			LogLevel:      logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver:         dbDriver,
				DSN:            databaseDSN,
				ConnectTimeout: connectTimeout,
			},
			Images: Images{
				Backend: imagesBackend,
				Dir:     imagesDir,
				BaseURL: imagesBaseURL,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. Hosts other than "localhost" must be
// IP addresses.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
