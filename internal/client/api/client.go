package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/pkg/api"
)

// Error is a non-2xx answer from the server
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client представляет HTTP клиент для взаимодействия с сервером.
// Сессия живёт в cookie jar, как в браузере.
type Client struct {
	httpClient *http.Client
	base       *url.URL
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		base:    base,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// BaseURL returns the server address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SessionToken returns the current session cookie value, "" if none
func (c *Client) SessionToken() string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.base) {
		if cookie.Name == api.SessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// SetSessionToken restores a session saved by a previous run
func (c *Client) SetSessionToken(token string) {
	cookie := &http.Cookie{Name: api.SessionCookieName, Value: token, Path: "/"}
	if token == "" {
		cookie.MaxAge = -1
	}
	c.httpClient.Jar.SetCookies(c.base, []*http.Cookie{cookie})
}

// Register регистрирует нового пользователя и открывает сессию
func (c *Client) Register(ctx context.Context, username, password string) (*api.UserResponse, error) {
	var resp api.UserResponse
	req := api.CredentialsRequest{Username: username, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, api.PathRegister, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, username, password string) (*api.UserResponse, error) {
	var resp api.UserResponse
	req := api.CredentialsRequest{Username: username, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, api.PathLogin, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Logout просит сервер очистить cookie сессии
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, api.PathLogout, nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Me возвращает аккаунт текущей сессии
func (c *Client) Me(ctx context.Context) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, api.PathMe, nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// ListItems возвращает все товары текущего аккаунта
func (c *Client) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.doRequest(ctx, http.MethodGet, api.PathItems, nil, &items); err != nil {
		return nil, fmt.Errorf("list items request failed: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// CreateItem создаёт товар
func (c *Client) CreateItem(ctx context.Context, fields models.ItemFields) (models.Item, error) {
	var item models.Item
	if err := c.doRequest(ctx, http.MethodPost, api.PathItems, fields, &item); err != nil {
		return models.Item{}, fmt.Errorf("create item request failed: %w", err)
	}
	return item, nil
}

// PatchItem меняет переданные поля товара
func (c *Client) PatchItem(ctx context.Context, id string, fields models.ItemFields) (models.Item, error) {
	var item models.Item
	if err := c.doRequest(ctx, http.MethodPatch, api.ItemPath(id), fields, &item); err != nil {
		return models.Item{}, fmt.Errorf("patch item request failed: %w", err)
	}
	return item, nil
}

// DeleteItem удаляет товар
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, api.ItemPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete item request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
			if apiErr.Message == "" {
				apiErr.Message = errResp.Error
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
