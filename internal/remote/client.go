// Package remote talks to the hosted catalog service that mirrors local books
// and shelves. The service is an opaque collaborator: a single form-encoded
// endpoint dispatching on a "tag" field, answering JSON with an error flag.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vrajpatel/book-keeper/internal/entities"
)

const defaultTimeout = 30 * time.Second

// Client interfaces with the remote catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client for the given endpoint URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
	}
}

// Account is the identity the service returns on login or signup.
type Account struct {
	ID       int    `json:"uid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type apiResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Account
}

// Login authenticates against the remote service and returns the account.
func (c *Client) Login(ctx context.Context, username, password string) (*Account, error) {
	form := url.Values{
		"tag":      {"login"},
		"username": {username},
		"password": {password},
	}
	resp, err := c.post(ctx, form)
	if err != nil {
		return nil, err
	}
	if resp.Error {
		return nil, ErrInvalidCredentials
	}
	account := resp.Account
	return &account, nil
}

// SignUp registers a new account and returns it signed in.
func (c *Client) SignUp(ctx context.Context, name, email, username, password string) (*Account, error) {
	form := url.Values{
		"tag":      {"signup"},
		"name":     {name},
		"email":    {email},
		"username": {username},
		"password": {password},
	}
	resp, err := c.post(ctx, form)
	if err != nil {
		return nil, err
	}
	if resp.Error {
		return nil, &RejectedError{Message: resp.Message}
	}
	account := resp.Account
	return &account, nil
}

// PushBook mirrors one local book to the remote catalog for the given user.
func (c *Client) PushBook(ctx context.Context, userID int, book entities.Book) error {
	status := "none"
	if book.ReadStatus {
		status = "on"
	}
	form := url.Values{
		"tag":    {"add-book"},
		"userID": {strconv.Itoa(userID)},
		"title":  {book.Title},
		"author": {book.Author},
		"shelf":  {book.ShelfLocation},
		"status": {status},
	}
	resp, err := c.post(ctx, form)
	if err != nil {
		return err
	}
	if resp.Error {
		return &RejectedError{Message: resp.Message}
	}
	return nil
}

// PushShelf mirrors one shelf name to the remote catalog for the given user.
func (c *Client) PushShelf(ctx context.Context, userID int, name string) error {
	form := url.Values{
		"tag":    {"add-shelf"},
		"userID": {strconv.Itoa(userID)},
		"shelf":  {name},
	}
	resp, err := c.post(ctx, form)
	if err != nil {
		return err
	}
	if resp.Error {
		return &RejectedError{Message: resp.Message}
	}
	return nil
}

func (c *Client) post(ctx context.Context, form url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &ServerError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &parsed, nil
}
