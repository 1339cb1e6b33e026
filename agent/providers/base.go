package providers

// BaseProvider carries the identity shared by every adapter.
type BaseProvider struct {
	name    string
	baseURL string
}

// NewBaseProvider creates a BaseProvider. An empty baseURL means the SDK default.
func NewBaseProvider(name, baseURL string) *BaseProvider {
	return &BaseProvider{name: name, baseURL: baseURL}
}

// Name returns the provider's identifier.
func (p *BaseProvider) Name() string {
	return p.name
}

// BaseURL returns the provider's endpoint override, if any.
func (p *BaseProvider) BaseURL() string {
	return p.baseURL
}
