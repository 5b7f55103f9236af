package wire

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AuthServiceName      = "genoguard.Auth"
	GenoGuardServiceName = "genoguard.GenoGuard"
)

// Full method names.
const (
	AuthSignUpMethod    = "/" + AuthServiceName + "/SignUp"
	AuthLoginMethod     = "/" + AuthServiceName + "/Login"
	AuthStartDemoMethod = "/" + AuthServiceName + "/StartDemo"
	AuthRefreshMethod   = "/" + AuthServiceName + "/Refresh"
	AuthLogoutMethod    = "/" + AuthServiceName + "/Logout"

	UploadSequenceMethod = "/" + GenoGuardServiceName + "/UploadSequence"
	ListSequencesMethod  = "/" + GenoGuardServiceName + "/ListSequences"
	DeleteSequenceMethod = "/" + GenoGuardServiceName + "/DeleteSequence"
	RunAnalysisMethod    = "/" + GenoGuardServiceName + "/RunAnalysis"
	ListResultsMethod    = "/" + GenoGuardServiceName + "/ListResults"
	DeleteResultMethod   = "/" + GenoGuardServiceName + "/DeleteResult"
	PushLocalDataMethod  = "/" + GenoGuardServiceName + "/PushLocalData"
)

// AuthServer is the server API of the Auth service.
type AuthServer interface {
	SignUp(context.Context, *SignUpRequest) (*Session, error)
	Login(context.Context, *LoginRequest) (*Session, error)
	StartDemo(context.Context, *Empty) (*Session, error)
	Refresh(context.Context, *RefreshRequest) (*Session, error)
	Logout(context.Context, *RefreshRequest) (*Empty, error)
}

// GenoGuardServer is the server API of the GenoGuard service.
type GenoGuardServer interface {
	UploadSequence(context.Context, *UploadSequenceRequest) (*UploadSequenceResponse, error)
	ListSequences(context.Context, *Empty) (*ListSequencesResponse, error)
	DeleteSequence(context.Context, *DeleteRequest) (*ListSequencesResponse, error)
	RunAnalysis(context.Context, *RunAnalysisRequest) (*RunAnalysisResponse, error)
	ListResults(context.Context, *Empty) (*ListResultsResponse, error)
	DeleteResult(context.Context, *DeleteRequest) (*ListResultsResponse, error)
	PushLocalData(context.Context, *Empty) (*PushLocalDataResponse, error)
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("SignUp", AuthSignUpMethod, AuthServer.SignUp),
		unary("Login", AuthLoginMethod, AuthServer.Login),
		unary("StartDemo", AuthStartDemoMethod, AuthServer.StartDemo),
		unary("Refresh", AuthRefreshMethod, AuthServer.Refresh),
		unary("Logout", AuthLogoutMethod, AuthServer.Logout),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "genoguard/auth",
}

var GenoGuardServiceDesc = grpc.ServiceDesc{
	ServiceName: GenoGuardServiceName,
	HandlerType: (*GenoGuardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("UploadSequence", UploadSequenceMethod, GenoGuardServer.UploadSequence),
		unary("ListSequences", ListSequencesMethod, GenoGuardServer.ListSequences),
		unary("DeleteSequence", DeleteSequenceMethod, GenoGuardServer.DeleteSequence),
		unary("RunAnalysis", RunAnalysisMethod, GenoGuardServer.RunAnalysis),
		unary("ListResults", ListResultsMethod, GenoGuardServer.ListResults),
		unary("DeleteResult", DeleteResultMethod, GenoGuardServer.DeleteResult),
		unary("PushLocalData", PushLocalDataMethod, GenoGuardServer.PushLocalData),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "genoguard/genoguard",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func RegisterGenoGuardServer(s grpc.ServiceRegistrar, srv GenoGuardServer) {
	s.RegisterService(&GenoGuardServiceDesc, srv)
}

func unary[S any, Req any, Resp any](name, fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
