package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Nkemjikanma/esemese-backend/pkg/models"
)

const (
	DefaultApiUrl    = "https://api.pinata.cloud"
	DefaultUploadUrl = "https://uploads.pinata.cloud"

	// Uploads carry whole photos, so they get a much longer deadline
	// than the JSON endpoints.
	uploadTimeout = 60 * time.Second
)

// Client is the surface the rest of the service uses to talk to Pinata.
// It knows nothing about pagination or retries; callers own those.
type Client interface {
	ListGroups(ctx context.Context, pageToken string) (Page[models.PinataGroup], error)
	ListFiles(ctx context.Context, query FileQuery, pageToken string) (Page[models.PinataFile], error)
	CreateGroup(ctx context.Context, name string) (string, error)
	UploadFile(ctx context.Context, form UploadForm) (models.UploadedFile, error)
}

type ClientConfig struct {
	Jwt       string
	ApiUrl    string
	UploadUrl string
}

type ApiClient struct {
	jwt          string
	apiUrl       string
	uploadUrl    string
	httpClient   *http.Client
	uploadClient *http.Client
}

/*
NewClient builds a Pinata client around an explicitly provided JWT. A
missing JWT is rejected here, before any request is ever made, so a
misconfigured process fails at startup rather than on first use.
*/
func NewClient(config ClientConfig) (*ApiClient, error) {
	if config.Jwt == "" {
		return nil, ErrMissingCredential
	}

	if config.ApiUrl == "" {
		config.ApiUrl = DefaultApiUrl
	}

	if config.UploadUrl == "" {
		config.UploadUrl = DefaultUploadUrl
	}

	return &ApiClient{
		jwt:       config.Jwt,
		apiUrl:    config.ApiUrl,
		uploadUrl: config.UploadUrl,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		uploadClient: &http.Client{
			Timeout: uploadTimeout,
		},
	}, nil
}

type groupsResponse struct {
	Data struct {
		Groups        []models.PinataGroup `json:"groups"`
		NextPageToken string               `json:"next_page_token"`
	} `json:"data"`
}

func (c *ApiClient) ListGroups(ctx context.Context, pageToken string) (Page[models.PinataGroup], error) {
	var (
		err    error
		result Page[models.PinataGroup]
	)

	requestUrl, err := url.Parse(c.apiUrl + "/v3/groups/public")

	if err != nil {
		return result, fmt.Errorf("error parsing groups URL: %w", err)
	}

	query := requestUrl.Query()

	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	requestUrl.RawQuery = query.Encode()

	body, err := c.get(ctx, requestUrl.String())

	if err != nil {
		return result, err
	}

	parsed := groupsResponse{}

	if err = json.Unmarshal(body, &parsed); err != nil {
		return result, fmt.Errorf("%w: decoding groups page: %v", ErrMalformedResponse, err)
	}

	result.Items = parsed.Data.Groups
	result.NextPageToken = parsed.Data.NextPageToken
	return result, nil
}

type filesResponse struct {
	Data struct {
		Files         []models.PinataFile `json:"files"`
		NextPageToken string              `json:"next_page_token"`
	} `json:"data"`
}

func (c *ApiClient) ListFiles(ctx context.Context, fileQuery FileQuery, pageToken string) (Page[models.PinataFile], error) {
	var (
		err    error
		result Page[models.PinataFile]
	)

	requestUrl, err := url.Parse(c.apiUrl + "/v3/files/public")

	if err != nil {
		return result, fmt.Errorf("error parsing files URL: %w", err)
	}

	query := requestUrl.Query()

	if fileQuery.GroupID != "" {
		query.Set("group", fileQuery.GroupID)
	}

	if fileQuery.Metadata != "" {
		query.Set("metadata[keyvalues]", fileQuery.Metadata)
	}

	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	requestUrl.RawQuery = query.Encode()

	body, err := c.get(ctx, requestUrl.String())

	if err != nil {
		return result, err
	}

	parsed := filesResponse{}

	if err = json.Unmarshal(body, &parsed); err != nil {
		return result, fmt.Errorf("%w: decoding files page: %v", ErrMalformedResponse, err)
	}

	result.Items = parsed.Data.Files
	result.NextPageToken = parsed.Data.NextPageToken
	return result, nil
}

type createGroupRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

type createGroupResponse struct {
	ID string `json:"id"`
}

func (c *ApiClient) CreateGroup(ctx context.Context, name string) (string, error) {
	var (
		err error
	)

	payload, err := json.Marshal(createGroupRequest{
		Name:     name,
		IsPublic: true,
	})

	if err != nil {
		return "", fmt.Errorf("error encoding group payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiUrl+"/groups", bytes.NewReader(payload))

	if err != nil {
		return "", fmt.Errorf("error creating group request: %w", err)
	}

	request.Header.Set("Authorization", "Bearer "+c.jwt)
	request.Header.Set("Content-Type", "application/json")

	body, err := c.send(c.httpClient, request)

	if err != nil {
		return "", err
	}

	parsed := createGroupResponse{}

	if err = json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding group creation response: %v", ErrMalformedResponse, err)
	}

	slog.Debug("created pinata group", "name", name, "id", parsed.ID)
	return parsed.ID, nil
}

type uploadResponse struct {
	Data struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Cid     string  `json:"cid"`
		GroupID *string `json:"group_id"`
	} `json:"data"`
}

/*
UploadFile encodes the form into a fresh multipart body and submits it.
Calling it again with the same form yields an equivalent body, which is
what makes the retry policy in the upload service safe.
*/
func (c *ApiClient) UploadFile(ctx context.Context, form UploadForm) (models.UploadedFile, error) {
	var (
		err    error
		result models.UploadedFile
	)

	formBody, contentType, err := form.encode()

	if err != nil {
		return result, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadUrl+"/v3/files", formBody)

	if err != nil {
		return result, fmt.Errorf("error creating upload request: %w", err)
	}

	request.Header.Set("Authorization", "Bearer "+c.jwt)
	request.Header.Set("Content-Type", contentType)

	body, err := c.send(c.uploadClient, request)

	if err != nil {
		return result, err
	}

	parsed := uploadResponse{}

	if err = json.Unmarshal(body, &parsed); err != nil {
		return result, fmt.Errorf("%w: decoding upload response: %v", ErrMalformedResponse, err)
	}

	result = models.UploadedFile{
		ID:      parsed.Data.ID,
		Name:    parsed.Data.Name,
		Cid:     parsed.Data.Cid,
		GroupID: parsed.Data.GroupID,
	}

	return result, nil
}

func (c *ApiClient) get(ctx context.Context, requestUrl string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)

	if err != nil {
		return nil, fmt.Errorf("error creating request for '%s': %w", requestUrl, err)
	}

	request.Header.Set("Authorization", "Bearer "+c.jwt)
	return c.send(c.httpClient, request)
}

func (c *ApiClient) send(httpClient *http.Client, request *http.Request) ([]byte, error) {
	slog.Debug("requesting pinata", "method", request.Method, "url", request.URL.String())

	response, err := httpClient.Do(request)

	if err != nil {
		return nil, fmt.Errorf("error calling pinata: %w", err)
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)

	if err != nil {
		return nil, fmt.Errorf("error reading pinata response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &RemoteError{
			StatusCode: response.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
