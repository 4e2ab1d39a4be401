package azure

// Config holds the service principal used when anonymous access is rejected.
type Config struct {
	// TenantID is the Azure Active Directory tenant.
	TenantID string `mapstructure:"tenant_id" default:""`
	// ClientID is the service principal's application id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the service principal's secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
}

// HasServicePrincipal reports whether a complete service principal is configured.
func (c Config) HasServicePrincipal() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}
