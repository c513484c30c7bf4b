package schema

import (
	"context"

	"go.uber.org/zap"
)

// ResourceKind identifies the schema resource being fetched.
type ResourceKind string

// Supported schema resource kinds.
const (
	ResourceKindTables ResourceKind = "tables"
	ResourceKindViews  ResourceKind = "views"
)

const (
	logMessageProviderUnavailableConstant = "remote schema source not configured, using local type declarations"
	logMessageProviderFailedConstant      = "remote schema query failed, using local type declarations"
	logMessageProviderResolvedConstant    = "schema resources resolved"
	logFieldResourceKindConstant          = "resource_kind"
	logFieldResourceCountConstant         = "resource_count"
	logFieldSourceConstant                = "source"
	sourcePrimaryConstant                 = "remote"
	sourceFallbackConstant                = "types_file"
)

// Provider lists table and view names.
type Provider interface {
	Tables(executionContext context.Context) ([]string, error)
	Views(executionContext context.Context) ([]string, error)
}

// AvailabilityReporter is implemented by providers that may be unconfigured.
type AvailabilityReporter interface {
	Available() bool
}

type providerQuery func(provider Provider, executionContext context.Context) ([]string, error)

// FallbackProvider consults a primary provider and falls through to a fallback provider on any failure.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewFallbackProvider composes primary and fallback. A nil primary always uses the fallback.
func NewFallbackProvider(primary Provider, fallback Provider, logger *zap.Logger) *FallbackProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackProvider{primary: primary, fallback: fallback, logger: logger}
}

// Tables lists table names from the primary provider or, failing that, the fallback.
func (provider *FallbackProvider) Tables(executionContext context.Context) ([]string, error) {
	return provider.resolve(executionContext, ResourceKindTables, Provider.Tables)
}

// Views lists view names from the primary provider or, failing that, the fallback.
func (provider *FallbackProvider) Views(executionContext context.Context) ([]string, error) {
	return provider.resolve(executionContext, ResourceKindViews, Provider.Views)
}

func (provider *FallbackProvider) resolve(executionContext context.Context, resourceKind ResourceKind, query providerQuery) ([]string, error) {
	if provider.primaryAvailable() {
		names, queryError := query(provider.primary, executionContext)
		if queryError == nil {
			provider.logResolved(resourceKind, sourcePrimaryConstant, names)
			return names, nil
		}
		provider.logger.Warn(
			logMessageProviderFailedConstant,
			zap.String(logFieldResourceKindConstant, string(resourceKind)),
			zap.Error(queryError),
		)
	} else {
		provider.logger.Debug(logMessageProviderUnavailableConstant, zap.String(logFieldResourceKindConstant, string(resourceKind)))
	}

	if provider.fallback == nil {
		return nil, nil
	}

	names, fallbackError := query(provider.fallback, executionContext)
	if fallbackError != nil {
		return nil, fallbackError
	}
	provider.logResolved(resourceKind, sourceFallbackConstant, names)
	return names, nil
}

func (provider *FallbackProvider) primaryAvailable() bool {
	if provider.primary == nil {
		return false
	}
	if reporter, reportsAvailability := provider.primary.(AvailabilityReporter); reportsAvailability {
		return reporter.Available()
	}
	return true
}

func (provider *FallbackProvider) logResolved(resourceKind ResourceKind, source string, names []string) {
	provider.logger.Info(
		logMessageProviderResolvedConstant,
		zap.String(logFieldResourceKindConstant, string(resourceKind)),
		zap.String(logFieldSourceConstant, source),
		zap.Int(logFieldResourceCountConstant, len(names)),
	)
}
