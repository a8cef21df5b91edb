package scorer

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/signals"
)

// #region mock
type mockService struct {
	resp *structpb.Struct
	err  error
	last *structpb.Struct
}

func (m *mockService) ScoreMessage(_ context.Context, in *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	m.last = in
	return m.resp, m.err
}

// fakeConn records the method invoked and fills the reply from canned fields.
type fakeConn struct {
	method string
	reply  map[string]any
	err    error
}

func (f *fakeConn) Invoke(_ context.Context, method string, args, reply any, _ ...grpc.CallOption) error {
	f.method = method
	if f.err != nil {
		return f.err
	}
	s, err := structpb.NewStruct(f.reply)
	if err != nil {
		return err
	}
	out := reply.(*structpb.Struct)
	out.Fields = s.Fields
	return nil
}

func (f *fakeConn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("not supported")
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("new struct: %v", err)
	}
	return s
}

// #endregion mock

// #region constructor-tests
func TestNewClient(t *testing.T) {
	client, err := NewClient("localhost:0", time.Second)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	defer client.Close()
}

func TestNewClientWithService_CloseNoConn(t *testing.T) {
	c := NewClientWithService(&mockService{})
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}

// #endregion constructor-tests

// #region score-tests
func TestScore_Success(t *testing.T) {
	mock := &mockService{resp: mustStruct(t, map[string]any{
		"expressiveness": 0.7,
		"alignment":      0.3,
		"pad":            map[string]any{"pleasure": 0.6, "arousal": 0.8, "dominance": 0.4},
	})}
	c := NewClientWithService(mock)

	r, err := c.Score(context.Background(), signals.Request{
		ConversationID: "c1",
		Index:          2,
		Role:           conversation.RoleAssistant,
		Content:        "hello",
		History:        []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Expressiveness != 0.7 || r.Alignment != 0.3 {
		t.Errorf("unexpected reading: %+v", r)
	}
	if r.PAD == nil || r.PAD.Arousal != 0.8 || r.PAD.Dominance != 0.4 {
		t.Errorf("unexpected PAD: %+v", r.PAD)
	}
	if r.PAD != nil && r.PAD.Intensity != nil {
		t.Errorf("expected no intensity when the response omits it, got %f", *r.PAD.Intensity)
	}

	f := mock.last.GetFields()
	if f["conversation_id"].GetStringValue() != "c1" || f["index"].GetNumberValue() != 2 {
		t.Errorf("unexpected request fields: %v", f)
	}
	if f["role"].GetStringValue() != "assistant" {
		t.Errorf("unexpected role: %v", f["role"])
	}
	if got := f["history"].GetListValue().GetValues(); len(got) != 2 || got[1].GetStringValue() != "b" {
		t.Errorf("unexpected history: %v", got)
	}
}

func TestScore_PADIntensity(t *testing.T) {
	c := NewClientWithService(&mockService{resp: mustStruct(t, map[string]any{
		"expressiveness": 0.4, "alignment": 0.4,
		"pad": map[string]any{"pleasure": 0.5, "arousal": 0, "intensity": 0.95},
	})})
	r, err := c.Score(context.Background(), signals.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PAD == nil || r.PAD.Intensity == nil || *r.PAD.Intensity != 0.95 {
		t.Fatalf("expected supplied intensity, got %+v", r.PAD)
	}
}

func TestScore_NoPAD(t *testing.T) {
	c := NewClientWithService(&mockService{resp: mustStruct(t, map[string]any{
		"expressiveness": 0.1, "alignment": 0.9, "pad": map[string]any{"pleasure": 0.5},
	})})
	r, err := c.Score(context.Background(), signals.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PAD != nil {
		t.Errorf("expected incomplete PAD to be dropped, got %+v", r.PAD)
	}
}

func TestScore_RPCError(t *testing.T) {
	c := NewClientWithService(&mockService{err: errors.New("unavailable")})
	if _, err := c.Score(context.Background(), signals.Request{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestScore_MissingFields(t *testing.T) {
	tests := []map[string]any{
		{"alignment": 0.5},
		{"expressiveness": 0.5},
		{"expressiveness": "high", "alignment": 0.5},
	}
	for _, fields := range tests {
		c := NewClientWithService(&mockService{resp: mustStruct(t, fields)})
		if _, err := c.Score(context.Background(), signals.Request{}); err == nil {
			t.Errorf("expected error for %v", fields)
		}
	}
	c := NewClientWithService(&mockService{})
	if _, err := c.Score(context.Background(), signals.Request{}); err == nil {
		t.Error("expected error for nil response")
	}
}

func TestService_InvokesMethod(t *testing.T) {
	conn := &fakeConn{reply: map[string]any{"expressiveness": 0.4, "alignment": 0.6}}
	c := NewClientWithService(NewService(conn))

	r, err := c.Score(context.Background(), signals.Request{Content: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.method != ScoreMessageMethod {
		t.Errorf("invoked %q, want %q", conn.method, ScoreMessageMethod)
	}
	if r.Expressiveness != 0.4 || r.Alignment != 0.6 {
		t.Errorf("unexpected reading: %+v", r)
	}
}

func TestService_InvokeError(t *testing.T) {
	conn := &fakeConn{err: errors.New("boom")}
	c := NewClientWithService(NewService(conn))
	if _, err := c.Score(context.Background(), signals.Request{}); err == nil {
		t.Fatal("expected error")
	}
}

// #endregion score-tests

// #region producer-tests
func TestClient_FeedsProducer(t *testing.T) {
	c := NewClientWithService(&mockService{resp: mustStruct(t, map[string]any{
		"expressiveness": 0.9, "alignment": 0.1,
	})})
	p := signals.NewProducer(c, signals.DefaultProducerConfig(), nil)
	scores := p.Produce(context.Background(), conversation.Conversation{
		Messages: []conversation.Message{{Role: "user", Content: "hi"}},
	})
	if len(scores) != 1 || scores[0].Expressiveness != 0.9 {
		t.Errorf("unexpected scores: %+v", scores)
	}
}

// #endregion producer-tests
