package video

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/utils/safe"
)

const (
	defaultSearchEndpoint     = "https://serpapi.com/search.json"
	defaultTranscriptEndpoint = "https://video.google.com/timedtext"
	maxResults                = 20
	maxResponseBytes          = 8 << 20
)

// ErrMissingAPIKey is returned by Search when no SerpAPI key is configured
var ErrMissingAPIKey = errors.New("SerpAPI API key is not configured")

// Video is one search result
type Video struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Thumb    string `json:"thumb"`
	Duration string `json:"duration,omitempty"`
}

// Service searches videos and fetches their transcripts
type Service interface {
	Search(ctx context.Context, query string) ([]Video, error)
	Transcript(ctx context.Context, videoID string) (string, error)
}

type client struct {
	apiKey             string
	httpClient         *http.Client
	searchEndpoint     string
	transcriptEndpoint string
	lang               string
}

// Option is a functional option for the video client
type Option func(*client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(x *client) {
		x.httpClient = c
	}
}

// WithSearchEndpoint overrides the SerpAPI endpoint
func WithSearchEndpoint(endpoint string) Option {
	return func(x *client) {
		x.searchEndpoint = endpoint
	}
}

// WithTranscriptEndpoint overrides the timedtext endpoint
func WithTranscriptEndpoint(endpoint string) Option {
	return func(x *client) {
		x.transcriptEndpoint = endpoint
	}
}

// WithLanguage sets the transcript language, "en" by default
func WithLanguage(lang string) Option {
	return func(x *client) {
		x.lang = lang
	}
}

// New creates a new video service. An empty apiKey disables Search.
func New(apiKey string, opts ...Option) Service {
	c := &client{
		apiKey:             apiKey,
		httpClient:         cleanhttp.DefaultPooledClient(),
		searchEndpoint:     defaultSearchEndpoint,
		transcriptEndpoint: defaultTranscriptEndpoint,
		lang:               "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type serpResponse struct {
	VideoResults []serpVideo `json:"video_results"`
}

type serpVideo struct {
	VideoID   string          `json:"video_id"`
	Title     string          `json:"title"`
	Channel   *serpChannel    `json:"channel"`
	Thumbnail json.RawMessage `json:"thumbnail"`
	Duration  string          `json:"duration"`
	Length    string          `json:"length"`
}

type serpChannel struct {
	Name string `json:"name"`
}

// thumbnail accepts either {"static": "..."} or a plain string
func (v serpVideo) thumbnail() string {
	if len(v.Thumbnail) > 0 {
		var obj struct {
			Static string `json:"static"`
		}
		if err := json.Unmarshal(v.Thumbnail, &obj); err == nil && obj.Static != "" {
			return obj.Static
		}
		var s string
		if err := json.Unmarshal(v.Thumbnail, &s); err == nil && s != "" {
			return s
		}
	}
	return "https://img.youtube.com/vi/" + url.PathEscape(v.VideoID) + "/hqdefault.jpg"
}

func (c *client) Search(ctx context.Context, query string) ([]Video, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if query == "" {
		return []Video{}, nil
	}

	u, err := url.Parse(c.searchEndpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid search endpoint", goerr.V("endpoint", c.searchEndpoint))
	}
	q := u.Query()
	q.Set("engine", "youtube")
	q.Set("search_query", query)
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, goerr.Wrap(err, "SerpAPI request failed", goerr.V("query", query))
	}

	var resp serpResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse SerpAPI response")
	}

	results := resp.VideoResults
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	videos := make([]Video, 0, len(results))
	for _, v := range results {
		item := Video{
			ID:       v.VideoID,
			Title:    v.Title,
			Thumb:    v.thumbnail(),
			Duration: v.Duration,
		}
		if item.Duration == "" {
			item.Duration = v.Length
		}
		if v.Channel != nil {
			item.Channel = v.Channel.Name
		}
		videos = append(videos, item)
	}
	return videos, nil
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

func (c *client) Transcript(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", nil
	}

	u, err := url.Parse(c.transcriptEndpoint)
	if err != nil {
		return "", goerr.Wrap(err, "invalid transcript endpoint", goerr.V("endpoint", c.transcriptEndpoint))
	}
	q := u.Query()
	q.Set("lang", c.lang)
	q.Set("v", videoID)
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return "", goerr.Wrap(err, "transcript request failed", goerr.V("videoID", videoID))
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", nil
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", goerr.Wrap(err, "failed to parse transcript", goerr.V("videoID", videoID))
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		if s := strings.TrimSpace(html.UnescapeString(t.Value)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}

func (c *client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error carries the full URL including api_key
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("host", req.URL.Host))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code", goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response")
	}
	return body, nil
}
