package grpc

// proto.go defines the gRPC server interface derived from
// moro/financing/v1/financing.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/moroapp/moro/api/gen/go/moro/financing/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Application is the wire representation of a financing application.
type Application struct {
	ID              string   `json:"id"`
	TenantID        string   `json:"tenant_id"`
	ApplicantID     string   `json:"applicant_id"`
	RequestedAmount string   `json:"requested_amount"`
	Currency        string   `json:"currency"`
	Purpose         string   `json:"purpose"`
	Status          string   `json:"status"`
	TotalScore      int      `json:"total_score"`
	RiskLevel       string   `json:"risk_level"`
	Recommendation  string   `json:"recommendation"`
	Reasoning       []string `json:"reasoning"`
	ReviewerID      string   `json:"reviewer_id,omitempty"`
	ReviewNote      string   `json:"review_note,omitempty"`
}

// ScoringFactors is the wire representation of the five sub-scores.
type ScoringFactors struct {
	FinancialStability float64 `json:"financial_stability"`
	BusinessActivity   float64 `json:"business_activity"`
	SavingsBehavior    float64 `json:"savings_behavior"`
	ProjectSuccessRate float64 `json:"project_success_rate"`
	AccountMaturity    float64 `json:"account_maturity"`
}

type SubmitApplicationRequest struct {
	TenantID        string `json:"tenant_id"`
	ApplicantID     string `json:"applicant_id"`
	RequestedAmount string `json:"requested_amount"`
	Currency        string `json:"currency"`
	Purpose         string `json:"purpose"`
	PhoneNumber     string `json:"phone_number"`
}

type SubmitApplicationResponse struct {
	Application *Application `json:"application"`
}

type GetApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
}

type GetApplicationResponse struct {
	Application *Application `json:"application"`
}

type ScoreApplicantRequest struct {
	ApplicantID     string `json:"applicant_id"`
	RequestedAmount string `json:"requested_amount"`
}

type ScoreApplicantResponse struct {
	ApplicantID    string          `json:"applicant_id"`
	TotalScore     int             `json:"total_score"`
	Factors        *ScoringFactors `json:"factors"`
	RiskLevel      string          `json:"risk_level"`
	Recommendation string          `json:"recommendation"`
	Reasoning      []string        `json:"reasoning"`
}

type ReviewApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	ReviewerID    string `json:"reviewer_id"`
	Approve       bool   `json:"approve"`
	Note          string `json:"note"`
}

type ReviewApplicationResponse struct {
	Application *Application `json:"application"`
}

// FinancingServiceServer is the server API for FinancingService.
// It mirrors the proto-generated interface from moro.financing.v1.FinancingService.
type FinancingServiceServer interface {
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error)
	ScoreApplicant(context.Context, *ScoreApplicantRequest) (*ScoreApplicantResponse, error)
	ReviewApplication(context.Context, *ReviewApplicationRequest) (*ReviewApplicationResponse, error)
	mustEmbedUnimplementedFinancingServiceServer()
}

// UnimplementedFinancingServiceServer provides forward-compatible default implementations.
type UnimplementedFinancingServiceServer struct{}

func (UnimplementedFinancingServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedFinancingServiceServer) GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedFinancingServiceServer) ScoreApplicant(context.Context, *ScoreApplicantRequest) (*ScoreApplicantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreApplicant not implemented")
}
func (UnimplementedFinancingServiceServer) ReviewApplication(context.Context, *ReviewApplicationRequest) (*ReviewApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewApplication not implemented")
}
func (UnimplementedFinancingServiceServer) mustEmbedUnimplementedFinancingServiceServer() {}

// RegisterFinancingServiceServer registers the FinancingServiceServer with the gRPC server.
func RegisterFinancingServiceServer(s *grpclib.Server, srv FinancingServiceServer) {
	s.RegisterService(&_FinancingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _FinancingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "moro.financing.v1.FinancingService",
	HandlerType: (*FinancingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SubmitApplication", Handler: _FinancingService_SubmitApplication_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetApplication", Handler: _FinancingService_GetApplication_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "ScoreApplicant", Handler: _FinancingService_ScoreApplicant_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "ReviewApplication", Handler: _FinancingService_ReviewApplication_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_SubmitApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).SubmitApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/moro.financing.v1.FinancingService/SubmitApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).SubmitApplication(ctx, req.(*SubmitApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_GetApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).GetApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/moro.financing.v1.FinancingService/GetApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).GetApplication(ctx, req.(*GetApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_ScoreApplicant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ScoreApplicantRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).ScoreApplicant(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/moro.financing.v1.FinancingService/ScoreApplicant",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).ScoreApplicant(ctx, req.(*ScoreApplicantRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FinancingService_ReviewApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReviewApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FinancingServiceServer).ReviewApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/moro.financing.v1.FinancingService/ReviewApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FinancingServiceServer).ReviewApplication(ctx, req.(*ReviewApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}
