package siga

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

var ErrLogin = errors.New("sis login failed")

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

var reCSRF = regexp.MustCompile(`name=["']csrfmiddlewaretoken["']\s+value=["']([^"']+)["']`)

// Config holds the SIS connection settings.
type Config struct {
	BaseURL     string
	Institution string
	Login       string
	Password    string
	// StartDate is the first settlement date fetched; the end is always today.
	StartDate time.Time
	PageSize  int
	// Retries is the number of attempts per page on transport errors.
	Retries int
	// Timeout bounds the first attempt of a page request; each retry gets half again as long.
	Timeout time.Duration
	// RetryDelay is multiplied by the attempt number between retries.
	RetryDelay time.Duration
	Workers    int
}

// Client fetches settled billing titles from the SIS, one authenticated session per unit.
type Client struct {
	cfg Config
	cat *catalog.Catalog
	now func() time.Time
}

func NewClient(cfg Config, cat *catalog.Catalog) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 500
	}

	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{cfg: cfg, cat: cat, now: time.Now}
}

// session is an authenticated cookie session bound to one unit.
type session struct {
	client *http.Client
	base   string
}

func (s *session) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")

	return s.client.Do(req)
}

func (s *session) csrf(body []byte) string {
	u, _ := url.Parse(s.base)
	for _, c := range s.client.Jar.Cookies(u) {
		if c.Name == "csrftoken" && c.Value != "" {
			return c.Value
		}
	}

	if m := reCSRF.FindSubmatch(body); m != nil {
		return string(m[1])
	}

	return ""
}

func (s *session) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", s.base+path)

	return s.do(req)
}

// login opens a session and selects the unit. The SIS answers the credential
// post with a redirect to the unit picker; anything else means rejected credentials.
func (c *Client) login(ctx context.Context, unit catalog.UnitInfo) (*session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	s := &session{client: &http.Client{Jar: jar}, base: c.cfg.BaseURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/login/", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, fmt.Errorf("loading login page: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()

	if err != nil {
		return nil, fmt.Errorf("reading login page: %w", err)
	}

	token := s.csrf(body)
	if token == "" {
		return nil, fmt.Errorf("%w: no csrf token on login page", ErrLogin)
	}

	resp, err = s.postForm(ctx, "/login/", url.Values{
		"csrfmiddlewaretoken": {token},
		"codigo":              {c.cfg.Institution},
		"login":               {c.cfg.Login},
		"senha":               {c.cfg.Password},
	})
	if err != nil {
		return nil, fmt.Errorf("posting credentials: %w", err)
	}
	resp.Body.Close()

	if !strings.Contains(resp.Request.URL.Path, "/login/unidade") {
		return nil, fmt.Errorf("%w: credentials rejected for %s", ErrLogin, unit.Code)
	}

	if t := s.csrf(nil); t != "" {
		token = t
	}

	resp, err = s.postForm(ctx, "/login/unidade/", url.Values{
		"csrfmiddlewaretoken": {token},
		"unidade":             {strconv.Itoa(unit.SISKey)},
	})
	if err != nil {
		return nil, fmt.Errorf("selecting unit: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unit %s selection returned %d", ErrLogin, unit.Code, resp.StatusCode)
	}

	return s, nil
}

type titlesPage struct {
	Next    *string `json:"next"`
	Results []title `json:"results"`
}

type title struct {
	ID          flexString        `json:"id"`
	StudentID   flexString        `json:"matricula"`
	StudentName string            `json:"nome_aluno"`
	Installment flexString        `json:"parcela"`
	SettledOn   string            `json:"data_baixa"`
	PaidOn      string            `json:"data_pagamento"`
	DueOn       string            `json:"data_vencimento"`
	Received    jsonAmount        `json:"valor_recebido"`
	Classes     []json.RawMessage `json:"turmas_vinculadas"`
	Services    []service         `json:"servicos"`
}

type service struct {
	Name   string     `json:"nome_servico"`
	Amount jsonAmount `json:"valor_servico"`
}

// settlementDate prefers the settlement date, then the payment date, then the due date.
func (t title) settlementDate() string {
	for _, d := range []string{t.SettledOn, t.PaidOn, t.DueOn} {
		if strings.TrimSpace(d) != "" {
			return d
		}
	}

	return ""
}

func (t title) classSection() string {
	if len(t.Classes) == 0 {
		return ""
	}

	return classSection(string(t.Classes[0]))
}

// FetchUnit logs into the unit and pages through every settled title since StartDate.
// A title billing several catalog products yields one record per product.
func (c *Client) FetchUnit(ctx context.Context, unit catalog.UnitInfo) ([]record.Record, error) {
	s, err := c.login(ctx, unit)
	if err != nil {
		return nil, err
	}

	var records []record.Record

	for offset := 0; ; offset += c.cfg.PageSize {
		page, err := c.fetchPage(ctx, s, offset)
		if err != nil {
			return records, fmt.Errorf("fetching %s at offset %d: %w", unit.Code, offset, err)
		}

		for _, t := range page.Results {
			recs, err := c.titleRecords(unit.Code, t)
			if err != nil {
				return records, fmt.Errorf("title %s: %w", t.ID, err)
			}

			records = append(records, recs...)
		}

		if page.Next == nil || *page.Next == "" || len(page.Results) == 0 {
			return records, nil
		}
	}
}

func (c *Client) titleRecords(unit catalog.Unit, t title) ([]record.Record, error) {
	var out []record.Record

	for _, srv := range t.Services {
		code, ok := serviceCode(srv.Name)
		if !ok {
			continue
		}

		rec, ok, err := toRecord(c.cat, billed{
			unit:           unit,
			code:           code,
			classSection:   t.classSection(),
			studentID:      strings.TrimSpace(string(t.StudentID)),
			studentName:    strings.TrimSpace(t.StudentName),
			documentRef:    string(t.ID),
			installment:    string(t.Installment),
			settledOn:      t.settlementDate(),
			amount:         int64(srv.Amount),
			amountReceived: int64(t.Received),
		})
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, rec)
		}
	}

	return out, nil
}

// errStatus marks a response the SIS answered with a non-200 status. It is not retried.
type errStatus int

func (e errStatus) Error() string { return fmt.Sprintf("unexpected status code %d", int(e)) }

func (c *Client) fetchPage(ctx context.Context, s *session, offset int) (*titlesPage, error) {
	q := url.Values{
		"limit":              {strconv.Itoa(c.cfg.PageSize)},
		"offset":             {strconv.Itoa(offset)},
		"ordenacao":          {"nome_aluno"},
		"situacao":           {"liq"},
		"data_baixa_inicial": {c.cfg.StartDate.Format("02/01/2006")},
		"data_baixa_final":   {c.now().Format("02/01/2006")},
	}

	var lastErr error

	for attempt := range c.cfg.Retries {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.RetryDelay * time.Duration(attempt)):
			}
		}

		page, err := c.getPage(ctx, s, q, c.cfg.Timeout+time.Duration(attempt)*c.cfg.Timeout/2)
		if err == nil {
			return page, nil
		}

		var status errStatus
		if errors.As(err, &status) || ctx.Err() != nil {
			return nil, err
		}

		slog.Warn("sis page failed, retrying", "offset", offset, "attempt", attempt+1, "error", err)
		lastErr = err
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", c.cfg.Retries, lastErr)
}

func (c *Client) getPage(ctx context.Context, s *session, q url.Values, timeout time.Duration) (*titlesPage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/api/v1/titulos/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errStatus(resp.StatusCode)
	}

	var page titlesPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}

	return &page, nil
}
