package libreview

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"glucoterm/internal/logger"
)

// accountAPIVersion is the pinned "version" header for the account
// endpoint. That endpoint rejects the current default version, so it is
// always queried with this one regardless of configuration.
const accountAPIVersion = "4.7"

const (
	defaultVersion = "4.16.0"
	defaultProduct = "llu.android"
	defaultTimeout = 10 * time.Second
)

// Config carries everything a Client needs. Endpoint URLs are overridable
// so tests can point the client at local servers.
type Config struct {
	Email    string
	Password string

	Version string        // default "version" header, e.g. "4.16.0"
	Product string        // "product" header, e.g. "llu.android"
	Timeout time.Duration // per-request deadline

	// VerifyTLS enables certificate verification. The upstream hosts have
	// historically served certificates the stock verifier rejects, so the
	// zero value keeps verification off. See the package note before
	// enabling this anywhere security-sensitive.
	VerifyTLS bool

	LoginURL       string
	AccountURL     string
	ConnectionsURL string
}

// Client is a stateful LibreView API session. One persistent resty client
// underneath gives cookie and connection reuse across calls.
//
// Not safe for concurrent use; see the package documentation.
type Client struct {
	cfg  Config
	http *resty.Client
	log  *logger.Logger

	token         string
	accountIDHash string
}

// NewClient builds a Client from cfg, filling unset fields with production
// defaults. It performs no network I/O; call LoginAndSetup before issuing
// authenticated requests.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if cfg.Product == "" {
		cfg.Product = defaultProduct
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = "https://api.libreview.io/llu/auth/login"
	}
	if cfg.AccountURL == "" {
		cfg.AccountURL = "https://api-us.libreview.io/account"
	}
	if cfg.ConnectionsURL == "" {
		cfg.ConnectionsURL = "https://api.libreview.io/llu/connections"
	}
	if log == nil {
		log = logger.Nop()
	}

	cli := resty.New().
		SetTimeout(cfg.Timeout).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !cfg.VerifyTLS})

	return &Client{cfg: cfg, http: cli, log: log}
}

// Token returns the current bearer token, empty before the first
// successful login.
func (c *Client) Token() string {
	return c.token
}

// AccountIDHash returns the hex SHA-256 digest of the account id, empty
// before the first successful account fetch.
func (c *Client) AccountIDHash() string {
	return c.accountIDHash
}

// TokenExpiry reports the expiry claim of the current bearer token. The
// token is a JWT; the claim is read without signature verification and is
// informational only — expiry recovery stays 401-driven.
func (c *Client) TokenExpiry() (time.Time, bool) {
	return tokenExpiry(c.token)
}

// LoginAndSetup authenticates and derives the account id hash, refreshing
// both pieces of session state together.
//
// If the account step fails after a successful login the fresh token stays
// in place. That mirrors the upstream behavior; see DESIGN.md.
func (c *Client) LoginAndSetup(ctx context.Context) error {
	if err := c.Login(ctx); err != nil {
		return err
	}
	return c.FetchAccountID(ctx)
}

// Login authenticates with the stored credentials and stores the session
// token on success.
func (c *Client) Login(ctx context.Context) error {
	payload := map[string]string{
		"email":    c.cfg.Email,
		"password": c.cfg.Password,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers("", false, false)).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.cfg.LoginURL)
	if err != nil {
		if isTimeout(err) {
			c.log.Error().Err(err).Msg("login request timed out")
			return fmt.Errorf("%w: login request to %s", ErrTimeout, c.cfg.LoginURL)
		}
		c.log.Error().Err(err).Msg("login request failed")
		return fmt.Errorf("%w: login request: %v", ErrAPI, err)
	}

	var body loginResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		c.log.Error().Msg("login response was not JSON")
		return fmt.Errorf("%w: login response was not JSON", ErrResponse)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.log.Error().Msg("authentication failed: invalid credentials")
		return ErrAuthentication
	}
	if resp.StatusCode() != http.StatusOK || body.Data == nil {
		c.log.Error().Int("status", resp.StatusCode()).Msg("login failed")
		return fmt.Errorf("%w: login failed: http %d: %s", ErrAPI, resp.StatusCode(), trimmedBody(resp))
	}
	if body.Data.AuthTicket.Token == "" {
		return fmt.Errorf("%w: login response missing auth ticket", ErrAPI)
	}

	c.token = body.Data.AuthTicket.Token

	ev := c.log.Debug().Str("email", c.cfg.Email)
	if exp, ok := tokenExpiry(c.token); ok {
		ev = ev.Time("token_expiry", exp)
	}
	ev.Msg("received authentication token")
	return nil
}

// FetchAccountID retrieves the account's raw user id, stores its hex
// SHA-256 digest, and discards the raw id. Requires a valid token. This
// endpoint always uses the pinned accountAPIVersion.
func (c *Client) FetchAccountID(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers(accountAPIVersion, true, false)).
		Get(c.cfg.AccountURL)
	if err != nil {
		if isTimeout(err) {
			c.log.Error().Err(err).Msg("account id request timed out")
			return fmt.Errorf("%w: account request to %s", ErrTimeout, c.cfg.AccountURL)
		}
		c.log.Error().Err(err).Msg("account id request failed")
		return fmt.Errorf("%w: account request: %v", ErrAPI, err)
	}

	var body accountResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		c.log.Error().Msg("account id response was not JSON")
		return fmt.Errorf("%w: account response was not JSON", ErrResponse)
	}

	if resp.StatusCode() != http.StatusOK || body.Data == nil {
		c.log.Error().Int("status", resp.StatusCode()).Msg("failed to get account data")
		return fmt.Errorf("%w: account fetch failed: http %d: %s", ErrAPI, resp.StatusCode(), trimmedBody(resp))
	}
	if body.Data.User.ID == "" {
		return fmt.Errorf("%w: account response missing user id", ErrAPI)
	}

	sum := sha256.Sum256([]byte(body.Data.User.ID))
	c.accountIDHash = hex.EncodeToString(sum[:])

	c.log.Debug().Str("account_id_hash", c.accountIDHash).Msg("derived account id hash")
	return nil
}

// PatientID returns the first connection's patient id. An account with no
// connections yet is a legitimate state, so an empty or shapeless listing
// returns ("", nil) with a warning rather than an error.
func (c *Client) PatientID(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.cfg.ConnectionsURL, "", nil)
	if err != nil {
		return "", err
	}

	var body connectionsResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		c.log.Error().Msg("connections response was not JSON")
		return "", fmt.Errorf("%w: connections response was not JSON", ErrResponse)
	}

	// "data" holding anything but a list is treated like a missing
	// listing: a soft absence, not a protocol error.
	var conns []Connection
	if len(body.Data) > 0 {
		if err = json.Unmarshal(body.Data, &conns); err != nil {
			c.log.Warn().Msg("connections data is not a list")
			return "", nil
		}
	}

	if len(conns) == 0 {
		c.log.Warn().Msg("no connections found")
		return "", nil
	}
	if conns[0].PatientID == "" {
		c.log.Warn().Msg("first connection does not contain a patient id")
		return "", nil
	}
	return conns[0].PatientID, nil
}

// GraphData fetches the per-patient graph payload. An empty patientID is
// resolved via PatientID; an empty version falls back to the configured
// default.
func (c *Client) GraphData(ctx context.Context, patientID, version string) (*GraphPayload, error) {
	if patientID == "" {
		var err error
		patientID, err = c.PatientID(ctx)
		if err != nil {
			return nil, err
		}
		if patientID == "" {
			return nil, fmt.Errorf("%w: no patient id available", ErrAPI)
		}
	}

	url := strings.TrimRight(c.cfg.ConnectionsURL, "/") + "/" + patientID + "/graph"
	resp, err := c.do(ctx, http.MethodGet, url, version, nil)
	if err != nil {
		return nil, err
	}

	var body graphResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		c.log.Error().Msg("graph response was not JSON")
		return nil, fmt.Errorf("%w: graph response was not JSON", ErrResponse)
	}
	if body.Data == nil {
		c.log.Error().Msg("no graph data returned")
		return nil, fmt.Errorf("%w: no graph data returned: %s", ErrAPI, trimmedBody(resp))
	}

	return body.Data, nil
}

// do issues an authenticated request with one automatic recovery path: on
// HTTP 401 it re-runs LoginAndSetup, rebuilds headers, and retries the
// request exactly once. The second attempt's result is returned as-is — no
// loop, no backoff. Caller-supplied extra headers win on conflict.
func (c *Client) do(ctx context.Context, method, url, version string, extra map[string]string) (*resty.Response, error) {
	resp, err := c.send(ctx, method, url, version, extra)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	c.log.Info().Str("url", url).Msg("token rejected, re-authenticating")
	if err = c.LoginAndSetup(ctx); err != nil {
		return nil, err
	}
	return c.send(ctx, method, url, version, extra)
}

func (c *Client) send(ctx context.Context, method, url, version string, extra map[string]string) (*resty.Response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers(version, true, true))
	if len(extra) > 0 {
		req.SetHeaders(extra)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		if isTimeout(err) {
			c.log.Error().Err(err).Str("url", url).Msg("request timed out")
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, url)
		}
		c.log.Error().Err(err).Str("url", url).Msg("request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", ErrAPI, method, url, err)
	}
	return resp, nil
}

// headers builds the per-request header set. Pure with respect to client
// state: Authorization appears only when requested and a token is held,
// Account-Id only when requested and a hash has been derived.
func (c *Client) headers(version string, includeAuth, includeAccount bool) map[string]string {
	if version == "" {
		version = c.cfg.Version
	}

	h := map[string]string{
		"version": version,
		"product": c.cfg.Product,
		"Accept":  "application/json",
	}
	if includeAuth && c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	}
	if includeAccount && c.accountIDHash != "" {
		h["Account-Id"] = c.accountIDHash
	}
	return h
}

func tokenExpiry(tokenString string) (time.Time, bool) {
	if tokenString == "" {
		return time.Time{}, false
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func trimmedBody(resp *resty.Response) string {
	return strings.TrimSpace(string(resp.Body()))
}
