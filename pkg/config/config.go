package config

import (
	"fmt"
	"net/url"
)

// DB holds the connection parameters, read from DATABASE_<FIELD>. URL, when
// set, takes precedence over the parts. Fields carry no envconfig tag so that
// unprefixed variables such as USER or HOST are never consulted.
type DB struct {
	Driver     string `default:"postgres"`
	Url        string
	Host       string `default:"localhost"`
	Port       int    `default:"5432"`
	Name       string `default:"bank"`
	User       string `default:"postgres"`
	Password   string
	SSLMode    string `default:"disable"`
	SqlitePath string `split_words:"true" default:"bank.db"`
}

// DSN returns the postgres connection string.
func (d *DB) DSN() string {
	if d.Url != "" {
		return d.Url
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	}
	return u.String()
}

// Log is read from LOG_<FIELD>.
type Log struct {
	// Level uses charmbracelet/log values: -4 debug, 0 info, 4 warn, 8 error.
	Level      int    `default:"4"`
	Format     string `default:"text"`
	TimeFormat string `split_words:"true" default:"2006-01-02 15:04:05"`
	Prefix     string `default:"[bank]"`
}

type App struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	BankName string `envconfig:"BANK_NAME" default:"KAMAJ Bank"`
	Currency string `envconfig:"BANK_CURRENCY" default:"GHS"`
	Log      *Log   `envconfig:"LOG"`
	DB       *DB    `envconfig:"DATABASE"`
}
