package scorer

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/signals"
)

// ScoreMessageMethod is the full gRPC method name of the scoring RPC.
const ScoreMessageMethod = "/terrain.Scorer/ScoreMessage"

// #region service
// Service is the scoring RPC surface. Requests and responses are
// google.protobuf.Struct messages.
type Service interface {
	ScoreMessage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type serviceClient struct {
	cc grpc.ClientConnInterface
}

// NewService binds the scoring RPC to a connection.
func NewService(cc grpc.ClientConnInterface) Service {
	return &serviceClient{cc: cc}
}

func (c *serviceClient) ScoreMessage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ScoreMessageMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
// #endregion service

// #region client-struct
// Client wraps the gRPC connection to the external message scorer.
type Client struct {
	conn    *grpc.ClientConn
	svc     Service
	timeout time.Duration
}
// #endregion client-struct

// #region constructor
// NewClient connects to the scorer at addr. A positive timeout bounds each call.
func NewClient(addr string, timeout time.Duration) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:    conn,
		svc:     NewService(conn),
		timeout: timeout,
	}, nil
}

// NewClientWithService creates a Client with an injected service implementation.
// Used for testing without a real gRPC connection.
func NewClientWithService(svc Service) *Client {
	return &Client{svc: svc}
}
// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
// #endregion close

// #region score
// Score implements signals.Scorer.
func (c *Client) Score(ctx context.Context, req signals.Request) (signals.Reading, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	in, err := encodeRequest(req)
	if err != nil {
		return signals.Reading{}, err
	}
	resp, err := c.svc.ScoreMessage(ctx, in)
	if err != nil {
		return signals.Reading{}, fmt.Errorf("score message rpc: %w", err)
	}
	return decodeReading(resp)
}
// #endregion score

// #region codec
func encodeRequest(req signals.Request) (*structpb.Struct, error) {
	history := make([]any, len(req.History))
	for i, h := range req.History {
		history[i] = h
	}
	s, err := structpb.NewStruct(map[string]any{
		"conversation_id": req.ConversationID,
		"index":           float64(req.Index),
		"role":            string(req.Role),
		"content":         req.Content,
		"history":         history,
	})
	if err != nil {
		return nil, fmt.Errorf("encode score request: %w", err)
	}
	return s, nil
}

func decodeReading(resp *structpb.Struct) (signals.Reading, error) {
	if resp == nil {
		return signals.Reading{}, fmt.Errorf("decode score response: empty response")
	}
	fields := resp.GetFields()
	expr, ok := number(fields, "expressiveness")
	if !ok {
		return signals.Reading{}, fmt.Errorf("decode score response: missing expressiveness")
	}
	align, ok := number(fields, "alignment")
	if !ok {
		return signals.Reading{}, fmt.Errorf("decode score response: missing alignment")
	}
	r := signals.Reading{Expressiveness: expr, Alignment: align}

	if pv, ok := fields["pad"]; ok {
		if ps := pv.GetStructValue(); ps != nil {
			pf := ps.GetFields()
			p, okP := number(pf, "pleasure")
			a, okA := number(pf, "arousal")
			if okP && okA {
				d, _ := number(pf, "dominance")
				r.PAD = &conversation.PAD{Pleasure: p, Arousal: a, Dominance: d}
				if i, ok := number(pf, "intensity"); ok {
					r.PAD.Intensity = &i
				}
			}
		}
	}
	return r, nil
}

func number(fields map[string]*structpb.Value, key string) (float64, bool) {
	v, ok := fields[key]
	if !ok {
		return 0, false
	}
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
		return 0, false
	}
	return v.GetNumberValue(), true
}
// #endregion codec
