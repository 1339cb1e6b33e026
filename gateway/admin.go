package gateway

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/yemubit/zeroclaw/session"
)

// Session admin procedures, served over the Connect protocol.
const (
	SessionServiceName = "zeroclaw.v1.SessionService"

	ListSessionsProcedure  = "/" + SessionServiceName + "/ListSessions"
	CreateSessionProcedure = "/" + SessionServiceName + "/CreateSession"
	CountSessionsProcedure = "/" + SessionServiceName + "/CountSessions"
)

var errUnauthenticated = errors.New("invalid or missing token")

// AdminHandlers returns the session admin procedures keyed by path.
// When token is non-empty every call must present it as a bearer token.
func (g *Gateway) AdminHandlers(token string) map[string]http.Handler {
	opts := []connect.HandlerOption{
		connect.WithInterceptors(tokenInterceptor(token)),
	}

	return map[string]http.Handler{
		ListSessionsProcedure:  connect.NewUnaryHandler(ListSessionsProcedure, g.listSessions, opts...),
		CreateSessionProcedure: connect.NewUnaryHandler(CreateSessionProcedure, g.createSession, opts...),
		CountSessionsProcedure: connect.NewUnaryHandler(CountSessionsProcedure, g.countSessions, opts...),
	}
}

func (g *Gateway) listSessions(_ context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[structpb.Struct], error) {
	infos := g.store.List()

	list := make([]any, 0, len(infos))
	for _, info := range infos {
		list = append(list, map[string]any{
			"id":            info.ID,
			"message_count": info.MessageCount,
			"age_secs":      info.Age.Seconds(),
			"idle_secs":     info.Idle.Seconds(),
		})
	}

	msg, err := structpb.NewStruct(map[string]any{"sessions": list})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

func (g *Gateway) createSession(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.StringValue], error) {
	id, err := g.CreateSession(ctx)
	if err != nil {
		if errors.Is(err, session.ErrCapacityExceeded) {
			return nil, connect.NewError(connect.CodeResourceExhausted, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(wrapperspb.String(id)), nil
}

func (g *Gateway) countSessions(_ context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.Int64Value], error) {
	return connect.NewResponse(wrapperspb.Int64(int64(g.store.Count()))), nil
}

func tokenInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" && !headerAuthorized(token, req.Header()) {
				return nil, connect.NewError(connect.CodeUnauthenticated, errUnauthenticated)
			}
			return next(ctx, req)
		}
	}
}
