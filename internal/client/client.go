package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/blossomhq/blossom/internal/config"
	"github.com/blossomhq/blossom/internal/model"
)

// Session holds the login state persisted between CLI invocations.
type Session struct {
	ServerURL    string `json:"server_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
}

// Client talks to the Blossom REST API.
type Client struct {
	session     *Session
	sessionPath string
	httpClient  *http.Client
}

// New creates a client, loading any existing session from
// ~/.blossom/session.json.
func New() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		sessionPath: filepath.Join(home, ".blossom", "session.json"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	c.loadSession()

	return c, nil
}

func (c *Client) loadSession() {
	cfg, err := config.Load()
	serverURL := "http://localhost:5001"
	if err == nil && cfg.ServerURL != "" {
		serverURL = cfg.ServerURL
	}

	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		c.session = &Session{ServerURL: serverURL}
		return
	}

	c.session = &Session{}
	json.Unmarshal(data, c.session)
	if c.session.ServerURL == "" {
		c.session.ServerURL = serverURL
	}
}

func (c *Client) saveSession() error {
	dir := filepath.Dir(c.sessionPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, data, 0600)
}

// IsLoggedIn returns true if a session token is stored.
func (c *Client) IsLoggedIn() bool {
	return c.session.AccessToken != ""
}

// Whoami returns the stored identity.
func (c *Client) Whoami() (email, username string) {
	return c.session.Email, c.session.Username
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// do performs an authenticated request and decodes the success payload
// into out. A 401 triggers one refresh attempt before giving up.
func (c *Client) do(method, path string, body, out any) error {
	if err := c.request(method, path, body, out); err != nil {
		if !isUnauthorized(err) || c.session.RefreshToken == "" {
			return err
		}
		if err := c.refreshAccess(); err != nil {
			return err
		}
		return c.request(method, path, body, out)
	}
	return nil
}

type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return e.message
}

func isUnauthorized(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusUnauthorized
}

func (c *Client) request(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.session.ServerURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.session.ServerURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		respBody, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error != "" {
			return &statusError{code: resp.StatusCode, message: envelope.Error}
		}
		return &statusError{code: resp.StatusCode, message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) refreshAccess() error {
	var result struct {
		AccessToken string `json:"accessToken"`
	}
	err := c.request(http.MethodPost, "/api/auth/refresh", map[string]string{
		"refreshToken": c.session.RefreshToken,
	}, &result)
	if err != nil {
		return fmt.Errorf("session expired, please log in again: %w", err)
	}

	c.session.AccessToken = result.AccessToken
	return c.saveSession()
}

type authResponse struct {
	User   model.User      `json:"user"`
	Tokens model.TokenPair `json:"tokens"`
}

// Register creates an account and stores the session.
func (c *Client) Register(email, password, username string) error {
	var result authResponse
	err := c.request(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	}, &result)
	if err != nil {
		return err
	}
	return c.adopt(result)
}

// Login authenticates and stores the session.
func (c *Client) Login(email, password string) error {
	var result authResponse
	err := c.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}
	return c.adopt(result)
}

func (c *Client) adopt(result authResponse) error {
	c.session.AccessToken = result.Tokens.AccessToken
	c.session.RefreshToken = result.Tokens.RefreshToken
	c.session.UserID = result.User.ID
	c.session.Email = result.User.Email
	c.session.Username = result.User.Username
	return c.saveSession()
}

// Logout clears the stored session.
func (c *Client) Logout() error {
	c.session.AccessToken = ""
	c.session.RefreshToken = ""
	c.session.UserID = ""
	c.session.Email = ""
	c.session.Username = ""
	return c.saveSession()
}

// Tasks lists tasks with optional filters.
func (c *Client) Tasks(filter model.TaskFilter) ([]model.Task, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Priority != "" {
		query.Set("priority", filter.Priority)
	}
	if filter.CategoryID != "" {
		query.Set("categoryId", filter.CategoryID)
	}

	path := "/api/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result struct {
		Tasks []model.Task `json:"tasks"`
	}
	if err := c.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(req model.CreateTaskRequest) (*model.Task, error) {
	var result struct {
		Task model.Task `json:"task"`
	}
	if err := c.do(http.MethodPost, "/api/tasks", req, &result); err != nil {
		return nil, err
	}
	return &result.Task, nil
}

// ToggleTask flips completion on a task.
func (c *Client) ToggleTask(id string, completed bool) (*model.Task, error) {
	var result struct {
		Task model.Task `json:"task"`
	}
	err := c.do(http.MethodPatch, "/api/tasks/"+id+"/toggle", map[string]bool{"completed": completed}, &result)
	if err != nil {
		return nil, err
	}
	return &result.Task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// ArchiveCompleted bulk-archives completed tasks and reports how many.
func (c *Client) ArchiveCompleted() (int64, error) {
	var result struct {
		ArchivedCount int64 `json:"archivedCount"`
	}
	if err := c.do(http.MethodPost, "/api/tasks/archive/completed", nil, &result); err != nil {
		return 0, err
	}
	return result.ArchivedCount, nil
}

// ArchivedTasks lists the archive.
func (c *Client) ArchivedTasks() ([]model.Task, error) {
	var result struct {
		Tasks []model.Task `json:"tasks"`
	}
	if err := c.do(http.MethodGet, "/api/tasks/archive/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Tasks, nil
}

// RestoreTask moves an archived task back to pending.
func (c *Client) RestoreTask(id string) (*model.Task, error) {
	var result struct {
		Task model.Task `json:"task"`
	}
	if err := c.do(http.MethodPatch, "/api/tasks/"+id+"/restore", nil, &result); err != nil {
		return nil, err
	}
	return &result.Task, nil
}

// Categories lists categories.
func (c *Client) Categories() ([]model.Category, error) {
	var result struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.do(http.MethodGet, "/api/categories", nil, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(name, color, icon string) (*model.Category, error) {
	var result struct {
		Category model.Category `json:"category"`
	}
	err := c.do(http.MethodPost, "/api/categories", map[string]string{
		"name":  name,
		"color": color,
		"icon":  icon,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result.Category, nil
}

// Stats fetches aggregate statistics.
func (c *Client) Stats() (*model.Stats, error) {
	var result struct {
		Stats model.Stats `json:"stats"`
	}
	if err := c.do(http.MethodGet, "/api/tasks/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result.Stats, nil
}
