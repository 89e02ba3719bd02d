package users_services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	users_dto "taskplane-backend/internal/features/users/dto"
	users_interfaces "taskplane-backend/internal/features/users/interfaces"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// OAuthService exchanges provider authorization codes for normalized
// profiles and hands them to UserService.OAuthLogin.
type OAuthService struct {
	userService *UserService

	gitHubClientID     string
	gitHubClientSecret string
	googleClientID     string
	googleClientSecret string

	// Overridable in tests to point at a local fake provider.
	gitHubEndpoint   oauth2.Endpoint
	gitHubUserAPIURL string
	googleEndpoint   oauth2.Endpoint
	googleUserAPIURL string
}

func NewOAuthService(
	userService *UserService,
	gitHubClientID, gitHubClientSecret, googleClientID, googleClientSecret string,
) *OAuthService {
	return &OAuthService{
		userService:        userService,
		gitHubClientID:     gitHubClientID,
		gitHubClientSecret: gitHubClientSecret,
		googleClientID:     googleClientID,
		googleClientSecret: googleClientSecret,
		gitHubEndpoint:     github.Endpoint,
		gitHubUserAPIURL:   "https://api.github.com/user",
		googleEndpoint:     google.Endpoint,
		googleUserAPIURL:   "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

func (s *OAuthService) HandleGitHubCallback(
	ctx context.Context,
	code, redirectURI string,
) (*users_dto.AuthTokensResponseDTO, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     s.gitHubClientID,
		ClientSecret: s.gitHubClientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     s.gitHubEndpoint,
		Scopes:       []string{"user:email"},
	}

	client, err := exchangeCode(ctx, oauthConfig, code)
	if err != nil {
		return nil, err
	}

	body, err := fetchJSON(client, s.gitHubUserAPIURL)
	if err != nil {
		return nil, err
	}

	var githubUser struct {
		ID        int64   `json:"id"`
		Email     string  `json:"email"`
		Name      string  `json:"name"`
		Login     string  `json:"login"`
		AvatarURL *string `json:"avatar_url"`
	}

	if err := json.Unmarshal(body, &githubUser); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	if githubUser.Email == "" {
		return nil, errors.New("github account has no accessible email")
	}

	name := githubUser.Name
	if name == "" {
		name = githubUser.Login
	}

	return s.userService.OAuthLogin(&users_dto.OAuthProfile{
		ID:       fmt.Sprintf("%d", githubUser.ID),
		Email:    githubUser.Email,
		Name:     name,
		Avatar:   githubUser.AvatarURL,
		Provider: users_interfaces.OAuthProviderGitHub,
	})
}

func (s *OAuthService) HandleGoogleCallback(
	ctx context.Context,
	code, redirectURI string,
) (*users_dto.AuthTokensResponseDTO, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     s.googleClientID,
		ClientSecret: s.googleClientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     s.googleEndpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}

	client, err := exchangeCode(ctx, oauthConfig, code)
	if err != nil {
		return nil, err
	}

	body, err := fetchJSON(client, s.googleUserAPIURL)
	if err != nil {
		return nil, err
	}

	var googleUser struct {
		ID      string  `json:"id"`
		Email   string  `json:"email"`
		Name    string  `json:"name"`
		Picture *string `json:"picture"`
	}

	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	if googleUser.Email == "" {
		return nil, errors.New("google account has no email")
	}

	name := googleUser.Name
	if name == "" {
		name = "User"
	}

	return s.userService.OAuthLogin(&users_dto.OAuthProfile{
		ID:       googleUser.ID,
		Email:    googleUser.Email,
		Name:     name,
		Avatar:   googleUser.Picture,
		Provider: users_interfaces.OAuthProviderGoogle,
	})
}

func exchangeCode(
	ctx context.Context,
	oauthConfig *oauth2.Config,
	code string,
) (*http.Client, error) {
	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	return oauthConfig.Client(ctx, token), nil
}

func fetchJSON(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
