// Package grpcauth provides gRPC interceptors that authenticate requests
// with an oidcauth Authenticator.
package grpcauth

import (
	"context"
	"errors"

	"google.golang.org/grpc"

	oidcauth "github.com/third-party-auth/go-oidc-auth"
)

// Interceptor provides bearer-token authentication for gRPC servers.
type Interceptor struct {
	auth                *oidcauth.Authenticator
	scopes              []string
	credentialsOptional bool
	excludedMethods     map[string]bool
}

// New creates a new gRPC auth interceptor around the passed in
// Authenticator.
func New(auth *oidcauth.Authenticator, opts ...Option) (*Interceptor, error) {
	if auth == nil {
		return nil, errors.New("authenticator cannot be nil")
	}

	interceptor := &Interceptor{
		auth:            auth,
		excludedMethods: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(interceptor); err != nil {
			return nil, err
		}
	}

	return interceptor, nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that
// authenticates the request and makes the identity available in the
// handler context via oidcauth.GetIdentity.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if i.excludedMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		authedCtx, err := i.authenticate(ctx)
		if err != nil {
			return nil, err
		}

		return handler(authedCtx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that
// authenticates the stream and makes the identity available in the stream
// context via oidcauth.GetIdentity.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if i.excludedMethods[info.FullMethod] {
			return handler(srv, ss)
		}

		authedCtx, err := i.authenticate(ss.Context())
		if err != nil {
			return err
		}

		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: authedCtx})
	}
}

func (i *Interceptor) authenticate(ctx context.Context) (context.Context, error) {
	credential, err := CredentialFromContext(ctx)
	if err != nil {
		return ctx, statusFromError(err)
	}

	var identity any
	if i.credentialsOptional {
		identity, err = i.auth.AuthenticateOptional(ctx, credential, i.scopes...)
	} else {
		identity, err = i.auth.AuthenticateRequired(ctx, credential, i.scopes...)
	}
	if err != nil {
		return ctx, statusFromError(err)
	}

	if identity == nil {
		return ctx, nil
	}

	return oidcauth.SetIdentity(ctx, identity), nil
}

// wrappedServerStream overrides the stream context with the authenticated
// one.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
