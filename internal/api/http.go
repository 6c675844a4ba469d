package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kspdigital/sociallog-cli/internal/config"
	"github.com/kspdigital/sociallog-cli/internal/logging"
	"github.com/kspdigital/sociallog-cli/internal/models"
)

// Backend request field and action names. Must match the backend's
// configuration; see the sheet header layout on the server side.
const (
	actionCreatePost    = "create_post"
	actionListPosts     = "list_posts"
	actionDeletePost    = "delete_post"
	actionListPostTypes = "list_post_types"
	actionListEmployees = "list_employees"
	actionGetImage      = "get_image"
	actionVerify        = "verify"
)

var (
	dataURIRe = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)
	fileIDRe  = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// backendPost mirrors one row of the remote post sheet.
type backendPost struct {
	PostID         string `json:"post_id"`
	CreatedAt      string `json:"created_at"`
	CreatedBy      string `json:"created_by"`
	CreatedByEmail string `json:"created_by_email"`
	Caption        string `json:"caption"`
	Tags           string `json:"tags"`
	PostType       string `json:"post_type"`
	PostURL        string `json:"post_url"`
	ImageFileID    string `json:"image_file_id"`
	ImageURL       string `json:"image_url"`
	Status         string `json:"status"`
	UpdatedAt      string `json:"updated_at"`
}

type envelope[T any] struct {
	OK    bool   `json:"ok"`
	Data  T      `json:"data"`
	Error string `json:"error"`
}

// get_image carries the content type at the top level, next to the payload.
type imageEnvelope struct {
	OK          bool   `json:"ok"`
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
}

type verifyEnvelope struct {
	OK       bool           `json:"ok"`
	User     map[string]any `json:"user"`
	Employee map[string]any `json:"employee"`
	Error    string         `json:"error"`
}

// HTTPClient talks JSON over HTTP to the action-based backend API and the
// identity endpoint. Write operations POST a JSON-serialized body with
// Content-Type text/plain so browsers sharing this backend never trigger a
// CORS preflight; read operations use query-string parameters.
type HTTPClient struct {
	baseURL       string
	token         string
	identityURL   string
	identityToken string
	appID         string
	hc            *http.Client
	log           logging.Logger
	types         typeCache
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(cfg *config.Config, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:       cfg.APIBaseURL,
		token:         cfg.APIToken,
		identityURL:   cfg.IdentityBaseURL,
		identityToken: cfg.IdentityToken,
		appID:         cfg.AppID,
		hc:            &http.Client{Timeout: cfg.RequestTimeout},
		log:           log,
	}
}

// doGet issues a GET with the given query parameters and decodes the JSON
// body into out.
func (c *HTTPClient) doGet(ctx context.Context, base string, params url.Values, out any) error {
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug(ctx, "api GET", "action", params.Get("action"), "request_id", reqID)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// doPost issues a write. The body is JSON but declared text/plain: the
// backend tolerates it and browsers sharing it avoid a preflight round trip.
func (c *HTTPClient) doPost(ctx context.Context, payload map[string]any, out any) error {
	reqID := uuid.NewString()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug(ctx, "api POST", "action", payload["action"], "request_id", reqID)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func (c *HTTPClient) configured() error {
	if c.baseURL == "" || c.token == "" {
		return ErrNotConfigured
	}
	return nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("action", actionListPosts)
	params.Set("token", c.token)

	var resp envelope[[]backendPost]
	if err := c.doGet(ctx, c.baseURL, params, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}

	posts := make([]models.Post, 0, len(resp.Data))
	for _, row := range resp.Data {
		if row.PostID == "" || row.Status == models.PostStatusDeleted {
			continue
		}
		posts = append(posts, mapBackendPost(row))
	}
	return posts, nil
}

func mapBackendPost(row backendPost) models.Post {
	fileID := row.ImageFileID
	if fileID == "" {
		// older rows only carry a hosting URL with the file id in its query
		if m := fileIDRe.FindStringSubmatch(row.ImageURL); m != nil {
			fileID = m[1]
		}
	}

	return models.Post{
		ID:             row.PostID,
		ImageFileID:    fileID,
		Description:    row.Caption,
		Tags:           row.Tags,
		PostType:       row.PostType,
		PostURL:        row.PostURL,
		Timestamp:      parseCreatedAt(row.CreatedAt),
		CreatedBy:      row.CreatedBy,
		CreatedByEmail: row.CreatedByEmail,
	}
}

// parseCreatedAt converts the backend's created_at string to epoch millis.
// The sheet has produced both RFC3339 timestamps and local "date time"
// strings; a bare number is taken as epoch millis. Unparseable input maps
// to zero.
func parseCreatedAt(s string) int64 {
	if s == "" {
		return 0
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli()
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t.UnixMilli()
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms
	}
	return 0
}

func (c *HTTPClient) CreatePost(ctx context.Context, post models.Post, userEmail, employeeCode string) (string, error) {
	if err := c.configured(); err != nil {
		return "", err
	}

	imageBase64 := ""
	imageMime := "image/png"
	imageName := post.ID + ".png"

	if post.ImageData != "" {
		if m := dataURIRe.FindStringSubmatch(post.ImageData); m != nil {
			imageMime = m[1]
			imageBase64 = m[2]
			ext := "png"
			if parts := strings.SplitN(imageMime, "/", 2); len(parts) == 2 && parts[1] != "" {
				ext = parts[1]
			}
			imageName = post.ID + "." + ext
		} else {
			imageBase64 = post.ImageData
		}
	}

	payload := map[string]any{
		"action":         actionCreatePost,
		"token":          c.token,
		"employee_email": userEmail,
		"caption":        post.Description,
		"tags":           post.Tags,
		"post_type":      post.PostType,
		"post_url":       post.PostURL,
		"image_base64":   imageBase64,
		"image_name":     imageName,
		"image_mime":     imageMime,
	}
	if employeeCode != "" {
		payload["employee_code"] = employeeCode
	}

	var resp envelope[struct {
		PostID   string `json:"post_id"`
		ImageURL string `json:"image_url"`
	}]
	if err := c.doPost(ctx, payload, &resp); err != nil {
		return "", err
	}
	if !resp.OK {
		return "", fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}
	return resp.Data.PostID, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, postID, userEmail string) error {
	if err := c.configured(); err != nil {
		return err
	}

	payload := map[string]any{
		"action":         actionDeletePost,
		"token":          c.token,
		"employee_email": userEmail,
		"post_id":        postID,
	}

	var resp envelope[struct {
		PostID  string `json:"post_id"`
		Deleted bool   `json:"deleted"`
	}]
	if err := c.doPost(ctx, payload, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}
	return nil
}

func (c *HTTPClient) ListPostTypes(ctx context.Context) ([]models.PostTypeInfo, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	return c.types.GetOrFetch(ctx, c.fetchPostTypes)
}

func (c *HTTPClient) InvalidatePostTypes() {
	c.types.Invalidate()
}

func (c *HTTPClient) fetchPostTypes(ctx context.Context) ([]models.PostTypeInfo, error) {
	params := url.Values{}
	params.Set("action", actionListPostTypes)
	params.Set("token", c.token)

	var resp envelope[[]models.PostTypeInfo]
	if err := c.doGet(ctx, c.baseURL, params, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}

	active := make([]models.PostTypeInfo, 0, len(resp.Data))
	for _, t := range resp.Data {
		if t.IsActive {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].DisplayOrder < active[j].DisplayOrder })
	return active, nil
}

func (c *HTTPClient) ListEmployees(ctx context.Context) (map[string]string, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("action", actionListEmployees)
	params.Set("token", c.token)

	var resp envelope[[]struct {
		EmployeeCode string `json:"employee_code"`
		Nickname     string `json:"nickname"`
	}]
	if err := c.doGet(ctx, c.baseURL, params, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}

	directory := make(map[string]string, len(resp.Data))
	for _, row := range resp.Data {
		if row.EmployeeCode == "" || row.Nickname == "" {
			continue
		}
		directory[row.EmployeeCode] = row.Nickname
	}
	return directory, nil
}

// FetchImage resolves a file reference through the backend's image proxy.
// The proxy endpoint takes no token.
func (c *HTTPClient) FetchImage(ctx context.Context, fileID string) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}

	params := url.Values{}
	params.Set("action", actionGetImage)
	params.Set("file_id", fileID)

	var resp imageEnvelope
	if err := c.doGet(ctx, c.baseURL, params, &resp); err != nil {
		return "", err
	}
	if !resp.OK || resp.Data == "" {
		return "", fmt.Errorf("%w: empty image payload", ErrBadResponse)
	}
	return "data:" + resp.ContentType + ";base64," + resp.Data, nil
}

func (c *HTTPClient) VerifyIdentity(ctx context.Context, credential string) (models.Session, error) {
	if c.identityURL == "" || c.identityToken == "" {
		return models.Session{}, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("token", c.identityToken)
	params.Set("action", actionVerify)
	params.Set("app_id", c.appID)
	params.Set("credential", credential)

	var resp verifyEnvelope
	if err := c.doGet(ctx, c.identityURL, params, &resp); err != nil {
		return models.Session{}, err
	}
	if !resp.OK || resp.User == nil {
		msg := resp.Error
		if msg == "" {
			msg = "identity verification failed"
		}
		return models.Session{}, fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	return models.SessionFromIdentity(resp.User, resp.Employee), nil
}
