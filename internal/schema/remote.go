package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

const (
	// BaseURLEnvironmentKey names the backend base URL in the project environment file.
	BaseURLEnvironmentKey = "VITE_SUPABASE_URL"
	// AnonKeyEnvironmentKey names the anonymous API key in the project environment file.
	AnonKeyEnvironmentKey = "VITE_SUPABASE_ANON_KEY"
	// ServiceRoleKeyEnvironmentKey names the privileged service-role key in the project environment file.
	ServiceRoleKeyEnvironmentKey = "SUPABASE_SERVICE_ROLE_KEY"

	// DefaultRequestTimeout bounds each remote query.
	DefaultRequestTimeout = 10 * time.Second

	remoteProcedurePathPrefixConstant  = "/rest/v1/rpc/"
	tablesProcedureNameConstant        = "get_all_tables"
	viewsProcedureNameConstant         = "get_all_views"
	apiKeyHeaderNameConstant           = "apikey"
	authorizationHeaderNameConstant    = "Authorization"
	acceptHeaderNameConstant           = "Accept"
	acceptHeaderValueConstant          = "application/json"
	bearerPrefixConstant               = "Bearer "
	requestCreationErrorTemplate       = "unable to build %s request: %w"
	requestExecutionErrorTemplate      = "%s request failed: %w"
	responseDecodingErrorTemplate      = "%s response decoding failed: %w"
	responseStatusErrorTemplate        = "%s responded with status %d"
	entryDecodingErrorTemplate         = "%s entry decoding failed: %w"
	remoteNotConfiguredMessageConstant = "remote schema source not configured"
	emptyResponseMessageConstant       = "remote schema source returned no entries"
	baseURLTrailingSeparatorConstant   = "/"
)

var (
	// ErrRemoteNotConfigured indicates the base URL or both credentials are missing.
	ErrRemoteNotConfigured = errors.New(remoteNotConfiguredMessageConstant)
	// ErrEmptyResponse indicates the remote procedure returned no usable names.
	ErrEmptyResponse = errors.New(emptyResponseMessageConstant)
)

// ResponseStatusError reports a non-success HTTP status from a remote procedure.
type ResponseStatusError struct {
	Procedure  string
	StatusCode int
}

// Error describes the failed status.
func (statusError *ResponseStatusError) Error() string {
	return fmt.Sprintf(responseStatusErrorTemplate, statusError.Procedure, statusError.StatusCode)
}

// RemoteConfiguration holds the connection settings for RemoteProvider.
type RemoteConfiguration struct {
	BaseURL        string
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// Available reports whether a base URL and at least one credential are configured.
func (configuration RemoteConfiguration) Available() bool {
	return len(configuration.BaseURL) > 0 && (len(configuration.AnonKey) > 0 || len(configuration.ServiceRoleKey) > 0)
}

// apiKey prefers the anonymous key.
func (configuration RemoteConfiguration) apiKey() string {
	if len(configuration.AnonKey) > 0 {
		return configuration.AnonKey
	}
	return configuration.ServiceRoleKey
}

// bearerToken prefers the service-role key.
func (configuration RemoteConfiguration) bearerToken() string {
	if len(configuration.ServiceRoleKey) > 0 {
		return configuration.ServiceRoleKey
	}
	return configuration.AnonKey
}

type schemaEntry struct {
	TableName string `mapstructure:"table_name"`
	ViewName  string `mapstructure:"view_name"`
}

// RemoteProvider lists tables and views through the backend's RPC endpoints.
type RemoteProvider struct {
	configuration RemoteConfiguration
	httpClient    *http.Client
}

// NewRemoteProvider constructs a RemoteProvider. A nil httpClient uses a client bounded by the configured timeout.
func NewRemoteProvider(configuration RemoteConfiguration, httpClient *http.Client) *RemoteProvider {
	configuration.BaseURL = strings.TrimRight(strings.TrimSpace(configuration.BaseURL), baseURLTrailingSeparatorConstant)
	configuration.AnonKey = strings.TrimSpace(configuration.AnonKey)
	configuration.ServiceRoleKey = strings.TrimSpace(configuration.ServiceRoleKey)
	if configuration.Timeout <= 0 {
		configuration.Timeout = DefaultRequestTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: configuration.Timeout}
	}
	return &RemoteProvider{configuration: configuration, httpClient: httpClient}
}

// Available reports whether the provider has enough configuration to issue requests.
func (provider *RemoteProvider) Available() bool {
	if provider == nil {
		return false
	}
	return provider.configuration.Available()
}

// Tables queries the table listing procedure.
func (provider *RemoteProvider) Tables(executionContext context.Context) ([]string, error) {
	return provider.fetch(executionContext, tablesProcedureNameConstant, ResourceKindTables)
}

// Views queries the view listing procedure.
func (provider *RemoteProvider) Views(executionContext context.Context) ([]string, error) {
	return provider.fetch(executionContext, viewsProcedureNameConstant, ResourceKindViews)
}

func (provider *RemoteProvider) fetch(executionContext context.Context, procedure string, resourceKind ResourceKind) ([]string, error) {
	if !provider.Available() {
		return nil, ErrRemoteNotConfigured
	}
	if executionContext == nil {
		executionContext = context.Background()
	}

	requestContext, cancel := context.WithTimeout(executionContext, provider.configuration.Timeout)
	defer cancel()

	request, requestError := http.NewRequestWithContext(requestContext, http.MethodGet, provider.configuration.BaseURL+remoteProcedurePathPrefixConstant+procedure, nil)
	if requestError != nil {
		return nil, fmt.Errorf(requestCreationErrorTemplate, procedure, requestError)
	}
	request.Header.Set(apiKeyHeaderNameConstant, provider.configuration.apiKey())
	request.Header.Set(authorizationHeaderNameConstant, bearerPrefixConstant+provider.configuration.bearerToken())
	request.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)

	response, responseError := provider.httpClient.Do(request)
	if responseError != nil {
		return nil, fmt.Errorf(requestExecutionErrorTemplate, procedure, responseError)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, &ResponseStatusError{Procedure: procedure, StatusCode: response.StatusCode}
	}

	var entries []any
	if decodeError := json.NewDecoder(response.Body).Decode(&entries); decodeError != nil {
		return nil, fmt.Errorf(responseDecodingErrorTemplate, procedure, decodeError)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyResponse
	}

	names, normalizeError := normalizeEntries(entries, resourceKind)
	if normalizeError != nil {
		return nil, fmt.Errorf(entryDecodingErrorTemplate, procedure, normalizeError)
	}
	if len(names) == 0 {
		return nil, ErrEmptyResponse
	}
	return names, nil
}

// normalizeEntries accepts plain strings or objects carrying a table_name/view_name field.
func normalizeEntries(entries []any, resourceKind ResourceKind) ([]string, error) {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch typedEntry := entry.(type) {
		case nil:
			continue
		case string:
			names = append(names, typedEntry)
		case map[string]any:
			var decoded schemaEntry
			if decodeError := mapstructure.WeakDecode(typedEntry, &decoded); decodeError != nil {
				return nil, decodeError
			}
			name := decoded.TableName
			if resourceKind == ResourceKindViews {
				name = decoded.ViewName
			}
			if len(name) == 0 {
				continue
			}
			names = append(names, name)
		default:
			names = append(names, fmt.Sprint(typedEntry))
		}
	}
	return sortedNameSet(names), nil
}
