package soc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brequin/brequin/soc/catalog"
)

const (
	DefaultSearchUrl  = "https://act.ucsd.edu/scheduleOfClasses/scheduleOfClassesStudent.htm"
	DefaultResultsUrl = "https://act.ucsd.edu/scheduleOfClasses/scheduleOfClassesStudentResult.htm"
)

// Client fetches schedule-of-classes pages over HTTP. It implements
// catalog.PageSource.
type Client struct {
	HTTP       *http.Client
	SearchUrl  string
	ResultsUrl string
	UserAgent  string
	Term       string
	Subjects   []string
	// FormTimeout bounds SearchForm. Page fetches are bounded by the
	// caller's context.
	FormTimeout time.Duration
}

type Option struct {
	Value string
	Label string
}

// SearchForm holds the option lists of the search page.
type SearchForm struct {
	Terms    []Option
	Subjects []Option
}

func (c *Client) FetchPage(ctx context.Context, number int) (*catalog.Page, error) {
	request, err := c.newRequest(ctx, c.ResultsUrl)
	if err != nil {
		return nil, err
	}

	query := request.URL.Query()
	query.Add("selectedTerm", c.Term)
	for _, subject := range c.Subjects {
		query.Add("selectedSubjects", subject)
	}
	query.Add("page", strconv.Itoa(number))
	request.URL.RawQuery = query.Encode()

	body, err := c.do(request)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ParsePage(body)
}

func (c *Client) SearchForm(ctx context.Context) (*SearchForm, error) {
	if c.FormTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.FormTimeout)
		defer cancel()
	}
	request, err := c.newRequest(ctx, c.SearchUrl)
	if err != nil {
		return nil, err
	}

	body, err := c.do(request)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ParseSearchForm(body)
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		request.Header.Add("User-Agent", c.UserAgent)
	}
	return request, nil
}

func (c *Client) do(request *http.Request) (io.ReadCloser, error) {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("GET %v: unexpected status %v", request.URL.Path, response.Status)
	}
	return response.Body, nil
}

func ParseSearchForm(r io.Reader) (*SearchForm, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &SearchForm{
		Terms:    options(document.Find("select#selectedTerm")),
		Subjects: options(document.Find("select#selectedSubjects")),
	}, nil
}

// Subject values keep the listing's space padding ("CSE "), which the
// results endpoint expects back.
func options(selectElement *goquery.Selection) []Option {
	var opts []Option
	selectElement.Find("option").Each(func(i int, option *goquery.Selection) {
		value, exists := option.Attr("value")
		if !exists || strings.TrimSpace(value) == "" {
			return
		}
		opts = append(opts, Option{Value: value, Label: text(option)})
	})
	return opts
}

func Values(opts []Option) []string {
	values := make([]string, 0, len(opts))
	for _, opt := range opts {
		values = append(values, opt.Value)
	}
	return values
}
