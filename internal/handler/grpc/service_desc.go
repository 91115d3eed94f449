// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
	"google.golang.org/grpc"
)

// RemoteStatesServer is the server API of statesync.v1.RemoteStates.
type RemoteStatesServer interface {
	Ping(context.Context, *models.HealthResponse) (*models.HealthResponse, error)
	Fetch(context.Context, *models.StateRequest) (*models.RemoteState, error)
	Push(context.Context, *models.PushStateRequest) (*models.VersionResponse, error)
	Delete(context.Context, *models.StateRequest) (*models.DeleteResponse, error)
	List(context.Context, *models.ListStatesRequest) (*models.ListStatesResponse, error)
	GetVersion(context.Context, *models.StateRequest) (*models.VersionResponse, error)
}

// unaryHandler adapts a typed method to [grpc.MethodHandler], running the
// server interceptors the same way generated code does.
func unaryHandler[Req, Resp any](method string, call func(RemoteStatesServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		server := srv.(RemoteStatesServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: utils.FullMethodName(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes statesync.v1.RemoteStates for [grpc.Server.RegisterService].
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: utils.RemoteStatesService,
	HandlerType: (*RemoteStatesServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: utils.RemoteStatesPing,
			Handler:    unaryHandler(utils.RemoteStatesPing, RemoteStatesServer.Ping),
		},
		{
			MethodName: utils.RemoteStatesFetch,
			Handler:    unaryHandler(utils.RemoteStatesFetch, RemoteStatesServer.Fetch),
		},
		{
			MethodName: utils.RemoteStatesPush,
			Handler:    unaryHandler(utils.RemoteStatesPush, RemoteStatesServer.Push),
		},
		{
			MethodName: utils.RemoteStatesDelete,
			Handler:    unaryHandler(utils.RemoteStatesDelete, RemoteStatesServer.Delete),
		},
		{
			MethodName: utils.RemoteStatesList,
			Handler:    unaryHandler(utils.RemoteStatesList, RemoteStatesServer.List),
		},
		{
			MethodName: utils.RemoteStatesGetVersion,
			Handler:    unaryHandler(utils.RemoteStatesGetVersion, RemoteStatesServer.GetVersion),
		},
	},
	Streams: []grpc.StreamDesc{},
}
