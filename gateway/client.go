package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/yemubit/zeroclaw/session"
)

// AdminClient calls the session admin procedures of a running gateway.
type AdminClient struct {
	list   *connect.Client[emptypb.Empty, structpb.Struct]
	create *connect.Client[emptypb.Empty, wrapperspb.StringValue]
	count  *connect.Client[emptypb.Empty, wrapperspb.Int64Value]
}

// NewAdminClient creates a client for the gateway at baseURL. A nil
// httpClient uses http.DefaultClient.
func NewAdminClient(httpClient connect.HTTPClient, baseURL, token string) *AdminClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL = strings.TrimRight(baseURL, "/")

	opts := []connect.ClientOption{}
	if token != "" {
		opts = append(opts, connect.WithInterceptors(bearerInterceptor(token)))
	}

	return &AdminClient{
		list:   connect.NewClient[emptypb.Empty, structpb.Struct](httpClient, baseURL+ListSessionsProcedure, opts...),
		create: connect.NewClient[emptypb.Empty, wrapperspb.StringValue](httpClient, baseURL+CreateSessionProcedure, opts...),
		count:  connect.NewClient[emptypb.Empty, wrapperspb.Int64Value](httpClient, baseURL+CountSessionsProcedure, opts...),
	}
}

// ListSessions returns a summary of every live session, oldest first.
func (c *AdminClient) ListSessions(ctx context.Context) ([]session.Info, error) {
	res, err := c.list.CallUnary(ctx, connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		return nil, err
	}

	values := res.Msg.GetFields()["sessions"].GetListValue().GetValues()
	infos := make([]session.Info, 0, len(values))
	for _, v := range values {
		f := v.GetStructValue().GetFields()
		infos = append(infos, session.Info{
			ID:           f["id"].GetStringValue(),
			MessageCount: int(f["message_count"].GetNumberValue()),
			Age:          seconds(f["age_secs"].GetNumberValue()),
			Idle:         seconds(f["idle_secs"].GetNumberValue()),
		})
	}
	return infos, nil
}

// CreateSession creates a session seeded with the gateway's system prompt.
func (c *AdminClient) CreateSession(ctx context.Context) (string, error) {
	res, err := c.create.CallUnary(ctx, connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		return "", err
	}
	return res.Msg.GetValue(), nil
}

// CountSessions returns the number of live sessions.
func (c *AdminClient) CountSessions(ctx context.Context) (int, error) {
	res, err := c.count.CallUnary(ctx, connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		return 0, err
	}
	return int(res.Msg.GetValue()), nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func bearerInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}
