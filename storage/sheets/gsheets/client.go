// Package gsheets implements sheets.ValueService on top of the Google Sheets v4 API.
package gsheets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/storage/sheets"
)

const (
	// values are written as typed by the user, never parsed as formulas or dates
	valueInputOption = "RAW"
	// appended rows overwrite the blank cells below the detected table instead of inserting rows
	insertDataOption = "OVERWRITE"
)

var errNoCredentials = errors.New("no Google credentials configured: set a credentials file or a client email and private key")

type Client struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	limiter       *rate.Limiter
	callTimeout   time.Duration
}

var _ sheets.ValueService = (*Client)(nil)

// New builds a client for the configured spreadsheet.
// It is created once at start-up and shared by every table.
func New(ctx context.Context, conf core.SheetsConfig) (*Client, error) {
	if conf.SpreadsheetID == "" {
		return nil, errors.New("no spreadsheet ID configured")
	}

	ts, err := tokenSource(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "loading credentials")
	}
	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, errors.Wrap(err, "creating sheets service")
	}

	rpm := conf.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	burst := rpm / 6
	if burst < 1 {
		burst = 1
	}

	return &Client{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: conf.SpreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(float64(rpm)/60), burst),
		callTimeout:   conf.CallTimeout,
	}, nil
}

func tokenSource(ctx context.Context, conf core.SheetsConfig) (oauth2.TokenSource, error) {
	if conf.CredentialsFile != "" {
		data, err := os.ReadFile(conf.CredentialsFile)
		if err != nil {
			return nil, err
		}
		jwtConf, err := google.JWTConfigFromJSON(data, sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, err
		}
		return jwtConf.TokenSource(ctx), nil
	}

	if conf.ClientEmail == "" || conf.PrivateKey == "" {
		return nil, errNoCredentials
	}
	jwtConf := &jwt.Config{
		Email: conf.ClientEmail,
		// keys pasted into env files carry escaped newlines
		PrivateKey: []byte(strings.ReplaceAll(conf.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	return jwtConf.TokenSource(ctx), nil
}

// prepare waits for the quota limiter and bounds the call with the configured timeout.
func (c *Client) prepare(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "waiting for quota")
	}
	if c.callTimeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
		return ctx, cancel, nil
	}
	ctx, cancel := context.WithCancel(ctx)
	return ctx, cancel, nil
}

func (c *Client) Get(ctx context.Context, rng string) ([][]string, error) {
	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := c.values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "values.get %s", rng)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, vr := range resp.Values {
		row := make([]string, len(vr))
		for i, v := range vr {
			if v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) Append(ctx context.Context, rng string, rows [][]string) error {
	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = c.values.Append(c.spreadsheetID, rng, &sheetsapi.ValueRange{Values: toValues(rows)}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	return errors.Wrapf(err, "values.append %s", rng)
}

func (c *Client) Update(ctx context.Context, rng string, rows [][]string) error {
	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = c.values.Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{Values: toValues(rows)}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return errors.Wrapf(err, "values.update %s", rng)
}

func (c *Client) Clear(ctx context.Context, rng string) error {
	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = c.values.Clear(c.spreadsheetID, rng, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do()
	return errors.Wrapf(err, "values.clear %s", rng)
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return values
}
