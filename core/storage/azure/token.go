package azure

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/go-autorest/autorest/adal"
)

const (
	// activeDirectoryEndpoint is the public Azure AD authority.
	activeDirectoryEndpoint = "https://login.microsoftonline.com/"
	// storageResource is the audience for storage data-plane tokens.
	storageResource = "https://storage.azure.com/"
)

// ErrNoCredentials is returned when a token is needed but no service
// principal is configured.
var ErrNoCredentials = errors.New("azure: no service principal configured")

// TokenProvider acquires a bearer token for blob storage access. It is
// consulted at most once per download, after anonymous access was rejected.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// servicePrincipalTokens implements TokenProvider with an Azure AD service
// principal (client credentials grant) via go-autorest/adal.
type servicePrincipalTokens struct {
	cfg Config
}

func (p *servicePrincipalTokens) Token(ctx context.Context) (string, error) {
	if !p.cfg.HasServicePrincipal() {
		return "", ErrNoCredentials
	}

	oauthCfg, err := adal.NewOAuthConfig(activeDirectoryEndpoint, p.cfg.TenantID)
	if err != nil {
		return "", fmt.Errorf("azure oauth config: %w", err)
	}

	spt, err := adal.NewServicePrincipalToken(*oauthCfg, p.cfg.ClientID, p.cfg.ClientSecret, storageResource)
	if err != nil {
		return "", fmt.Errorf("azure service principal token: %w", err)
	}

	if err := spt.EnsureFreshWithContext(ctx); err != nil {
		return "", fmt.Errorf("azure token refresh: %w", err)
	}
	return spt.OAuthToken(), nil
}
