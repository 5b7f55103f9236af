package wire

import (
	"context"

	"google.golang.org/grpc"
)

// AuthClient calls the Auth service.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func (c *AuthClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, AuthSignUpMethod, in, opts)
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, AuthLoginMethod, in, opts)
}

func (c *AuthClient) StartDemo(ctx context.Context, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, AuthStartDemoMethod, &Empty{}, opts)
}

func (c *AuthClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, AuthRefreshMethod, in, opts)
}

func (c *AuthClient) Logout(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, AuthLogoutMethod, in, opts)
	return err
}

// GenoGuardClient calls the GenoGuard service. The access token is passed
// through the context as "authorization" metadata.
type GenoGuardClient struct {
	cc grpc.ClientConnInterface
}

func NewGenoGuardClient(cc grpc.ClientConnInterface) *GenoGuardClient {
	return &GenoGuardClient{cc: cc}
}

func (c *GenoGuardClient) UploadSequence(ctx context.Context, in *UploadSequenceRequest, opts ...grpc.CallOption) (*UploadSequenceResponse, error) {
	return invoke[UploadSequenceResponse](ctx, c.cc, UploadSequenceMethod, in, opts)
}

func (c *GenoGuardClient) ListSequences(ctx context.Context, opts ...grpc.CallOption) (*ListSequencesResponse, error) {
	return invoke[ListSequencesResponse](ctx, c.cc, ListSequencesMethod, &Empty{}, opts)
}

func (c *GenoGuardClient) DeleteSequence(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*ListSequencesResponse, error) {
	return invoke[ListSequencesResponse](ctx, c.cc, DeleteSequenceMethod, in, opts)
}

func (c *GenoGuardClient) RunAnalysis(ctx context.Context, in *RunAnalysisRequest, opts ...grpc.CallOption) (*RunAnalysisResponse, error) {
	return invoke[RunAnalysisResponse](ctx, c.cc, RunAnalysisMethod, in, opts)
}

func (c *GenoGuardClient) ListResults(ctx context.Context, opts ...grpc.CallOption) (*ListResultsResponse, error) {
	return invoke[ListResultsResponse](ctx, c.cc, ListResultsMethod, &Empty{}, opts)
}

func (c *GenoGuardClient) DeleteResult(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*ListResultsResponse, error) {
	return invoke[ListResultsResponse](ctx, c.cc, DeleteResultMethod, in, opts)
}

func (c *GenoGuardClient) PushLocalData(ctx context.Context, opts ...grpc.CallOption) (*PushLocalDataResponse, error) {
	return invoke[PushLocalDataResponse](ctx, c.cc, PushLocalDataMethod, &Empty{}, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
