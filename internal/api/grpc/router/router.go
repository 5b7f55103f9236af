package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/genoguard-server/internal/api/grpc/handler"
	"github.com/dtroode/genoguard-server/internal/api/grpc/middleware"
	"github.com/dtroode/genoguard-server/internal/api/grpc/wire"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

// Services groups the business services exposed over gRPC.
type Services struct {
	Auth      handler.AuthService
	Sequences handler.SequenceService
	Analysis  handler.AnalysisService
	Migration handler.MigrationService
	Tokens    middleware.TokenService
}

// Router represents a gRPC router for GenoGuard operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	services       Services
	logger         *logger.Logger
	contextManager model.ContextManager
}

// New creates new gRPC Router instance.
func New(services Services, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		logger:         logger,
	}
}

func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+wire.AuthServiceName+"/")
}

// Register registers all gRPC services and middleware.
// It sets up the gRPC server with panic recovery, request logging and
// authentication interceptors, speaking the JSON codec.
//
// Returns the configured gRPC server instance.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recovering := middleware.NewRecovery(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	opts = append(opts,
		wire.ServerOption(),
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(recovering.HandlePanic)),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerAuthRoutes(s)
	r.registerGenoGuardRoutes(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.services.Auth, r.logger)
	wire.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerGenoGuardRoutes(server *grpc.Server) {
	genoGuardHandler := handler.NewGenoGuard(
		r.services.Sequences,
		r.services.Analysis,
		r.services.Migration,
		r.contextManager,
		r.logger,
	)
	wire.RegisterGenoGuardServer(server, genoGuardHandler)
}
