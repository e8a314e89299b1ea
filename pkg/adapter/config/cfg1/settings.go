// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/momeni/carmaint/pkg/adapter/backend/restclient"
	"github.com/momeni/carmaint/pkg/adapter/config/settings"
	"github.com/momeni/carmaint/pkg/adapter/hash/scram"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin"
	"github.com/momeni/carmaint/pkg/core/repo"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
	"github.com/momeni/carmaint/pkg/core/usecase/validationuc"
)

// Backend contains the REST backend connection settings.
type Backend struct {
	URL      string `yaml:"url"` // base URL, e.g., http://localhost:8080
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Timeout bounds each backend request. A nil value selects the
	// restclient.DefaultTimeout.
	Timeout *settings.Duration `yaml:"timeout,omitempty"`
}

// Bounds of the backend request timeout.
var (
	minTimeout = settings.DurationOf(100 * time.Millisecond)
	maxTimeout = settings.DurationOf(2 * time.Minute)
)

// ValidateAndNormalize validates the backend settings. It takes a
// pointer receiver because an out of range timeout is replaced by its
// nearest boundary value too (in addition to returning an error).
func (b *Backend) ValidateAndNormalize() error {
	if b.URL == "" {
		return errors.New("backend url is required")
	}
	u, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("parsing backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported backend url scheme: %q", u.Scheme)
	}
	if b.Password != "" && b.Username == "" {
		return errors.New("backend password is given without username")
	}
	if err := settings.Clamp(
		"backend timeout", &b.Timeout, minTimeout, maxTimeout,
	); err != nil {
		return err
	}
	return nil
}

// NewClient instantiates a REST client of the backend based on the
// `b` settings.
func (b Backend) NewClient() (*restclient.Client, error) {
	opts := make([]restclient.Option, 0, 2)
	if b.Username != "" {
		opts = append(opts, restclient.WithBasicAuth(b.Username, b.Password))
	}
	if b.Timeout != nil {
		opts = append(opts, restclient.WithTimeout(b.Timeout.Std()))
	}
	return restclient.New(b.URL, opts...)
}

// Console contains the web console settings.
type Console struct {
	// Address is the listening address like ":8080" which is the
	// default value.
	Address string `yaml:"address"`

	// Realm is reported to browsers when they are asked to
	// authenticate. Its default value is "carmaint".
	Realm string `yaml:"realm,omitempty"`

	// AuthMethod specifies the hashing scheme of the users passwords.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// Users maps the usernames to their password hashes. An empty
	// map disables authentication. Hashes may be created using the
	// passwd sub-command.
	Users map[string]string `yaml:"users,omitempty"`

	mechanism *scram.Mechanism `yaml:"-"`
}

// ValidateAndNormalize validates the console settings, replaces the
// empty settings with their defaults, and ensures that all password
// hashes are well-formed for the chosen AuthMethod.
func (c *Console) ValidateAndNormalize() error {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.Realm == "" {
		c.Realm = "carmaint"
	}
	switch am := c.AuthMethod; am {
	case "scram-sha-1":
		c.mechanism = scram.SHA1()
	case "":
		c.AuthMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		c.mechanism = scram.SHA256()
	default:
		return fmt.Errorf("unsupported console authentication method: %q", am)
	}
	for user, hash := range c.Users {
		if user == "" || strings.Contains(user, ":") {
			return fmt.Errorf("invalid username: %q", user)
		}
		if _, err := c.mechanism.Verify("", hash); err != nil {
			return fmt.Errorf("password hash of %q: %w", user, err)
		}
	}
	return nil
}

// Mechanism returns the SCRAM mechanism of the AuthMethod which can
// hash new passwords and verify the presented ones. It must be called
// after ValidateAndNormalize.
func (c Console) Mechanism() *scram.Mechanism {
	return c.mechanism
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their defaults.
type Gin struct {
	Logger   *bool // Whether to register the access logger middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings and the c console settings. Requests are tagged
// with a request ID and if any user is configured, they must
// authenticate using the HTTP basic scheme.
func (g Gin) NewEngine(c Console) *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 4)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	if len(c.Users) > 0 {
		middlewares = append(middlewares,
			gin.BasicAuth(c.Realm, c.Users, c.mechanism),
		)
	}
	return gin.New(middlewares...)
}

// Logging contains the slog handler settings.
type Logging struct {
	Level  string `yaml:"level,omitempty"`  // debug, info (default), warn, error
	Format string `yaml:"format,omitempty"` // text (default) or json

	level slog.Level `yaml:"-"`
}

// ValidateAndNormalize parses the logging level and format.
func (l *Logging) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("parsing level: %w", err)
	}
	switch l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported logging format: %q", l.Format)
	}
	return nil
}

// NewHandler instantiates a slog handler which writes into w.
func (l Logging) NewHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Inventory Inventory // inventory (domain cache) use case settings
}

// ValidateAndNormalize validates the use cases settings.
func (u *Usecases) ValidateAndNormalize() error {
	return u.Inventory.ValidateAndNormalize()
}

// Inventory contains the configuration settings of the inventory use
// case. Fields are defined as pointers, so it is possible to detect if
// they are or are not initialized.
type Inventory struct {
	// RefreshInterval indicates how often the cached collections are
	// reloaded in the background. A nil value selects the
	// inventoryuc.DefaultRefreshInterval.
	RefreshInterval *settings.Duration `yaml:"refresh-interval"`
	// MinRefreshInterval is the inclusive minimum acceptable value
	// for the RefreshInterval setting.
	// A missing value indicates that there is no lower bound.
	MinRefreshInterval *settings.Duration `yaml:"refresh-interval-minimum"`
	// MaxRefreshInterval is the inclusive maximum acceptable value
	// for the RefreshInterval setting.
	// A missing value indicates that there is no upper bound.
	MaxRefreshInterval *settings.Duration `yaml:"refresh-interval-maximum"`

	// Location names the time zone, like "Europe/Berlin", which decides
	// the current date of the end-users. Local time zone is used when
	// it is empty.
	Location string `yaml:"location"`

	location *time.Location `yaml:"-"`
}

// ValidateAndNormalize ensures that the refresh interval is within its
// boundary values and loads the configured time zone.
func (i *Inventory) ValidateAndNormalize() error {
	settings.Nil2Default(
		&i.RefreshInterval,
		settings.Duration(inventoryuc.DefaultRefreshInterval),
	)
	if err := settings.Clamp(
		"refresh interval", &i.RefreshInterval,
		i.MinRefreshInterval, i.MaxRefreshInterval,
	); err != nil {
		return err
	}
	if *i.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	i.location = time.Local
	if i.Location != "" {
		loc, err := time.LoadLocation(i.Location)
		if err != nil {
			return fmt.Errorf("loading location: %w", err)
		}
		i.location = loc
	}
	return nil
}

// Interval returns the background refresh interval.
func (i Inventory) Interval() time.Duration {
	return i.RefreshInterval.Std()
}

// NewUseCase instantiates a new inventory use case based on the
// settings in the `i` struct, talking to the b backend.
func (i Inventory) NewUseCase(b repo.Backend) (*inventoryuc.UseCase, error) {
	return inventoryuc.New(b, inventoryuc.WithLocation(i.location))
}

// NewValidationUseCase instantiates a validation use case which
// decides the current date in the configured location.
func (c *Config) NewValidationUseCase() *validationuc.UseCase {
	return validationuc.New(c.Clock())
}
