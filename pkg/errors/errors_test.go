package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestUIErrorString(t *testing.T) {
	err := &UIError{
		Op:   "core.ListenerCtx.FileDialog",
		Kind: KindPlatform,
		Err:  stderrors.New("dialog cancelled"),
	}
	want := "core.ListenerCtx.FileDialog [platform]: dialog cancelled"
	if got := err.Error(); got != want {
		t.Errorf("UIError.Error() = %q, want %q", got, want)
	}
}

func TestUIErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("boom")
	err := &UIError{Op: "test", Kind: KindPlatform, Err: sentinel}
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindDispatch, "dispatch"},
		{KindCommand, "command"},
		{KindTree, "tree"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "termhost.Run"
	if got, want := err.Error(), "panic in termhost.Run: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestTypeMismatchErrorString(t *testing.T) {
	err := &TypeMismatchError{Want: "string", Got: 42}
	if got := err.Error(); !strings.Contains(got, "want string, got int") {
		t.Errorf("TypeMismatchError.Error() = %q", got)
	}
}

func TestTreeErrorString(t *testing.T) {
	err := &TreeError{Op: "graph.RemoveChild", ID: 3, Reason: "not a child of 1"}
	if got, want := err.Error(), "graph.RemoveChild: node 3: not a child of 1"; got != want {
		t.Errorf("TreeError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *UIError
	handler := &testHandler{onError: func(err *UIError) { captured = err }}

	defer SetHandler(SetHandler(handler))

	Report(&UIError{Op: "test.op", Kind: KindCommand, Err: ErrNoCommandListener})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNilIsIgnored(t *testing.T) {
	called := false
	handler := &testHandler{onError: func(*UIError) { called = true }}

	defer SetHandler(SetHandler(handler))

	Report(nil)
	if called {
		t.Error("Report(nil) should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	defer SetHandler(SetHandler(handler))

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	defer SetHandler(SetHandler(&testHandler{}))

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(ErrReentrant)
	}()
	if got != ErrReentrant {
		t.Errorf("callback got %v, want %v", got, ErrReentrant)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	custom := &testHandler{}
	prev := SetHandler(custom)
	defer SetHandler(prev)

	if got := SetHandler(nil); got != custom {
		t.Errorf("SetHandler returned %T, want the replaced handler", got)
	}
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
}

func TestRecoverLetsGoroutineFinish(t *testing.T) {
	var captured *PanicError
	defer SetHandler(SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer Recover("test.worker")
		panic("worker failed")
	}()
	<-done

	if captured == nil || captured.Op != "test.worker" {
		t.Fatalf("captured = %+v", captured)
	}
	if captured.StackTrace == "" || captured.Timestamp.IsZero() {
		t.Error("expected stack and timestamp on the recovered panic")
	}
}

func TestLogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	h.HandleError(&UIError{Op: "core.AddListener", Kind: KindDispatch, Err: &TypeMismatchError{Want: "int", Got: "x"}})
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("dispatch errors should log at WARN, got %q", buf.String())
	}

	buf.Reset()
	h.HandleError(&UIError{Op: "core.FileDialog", Kind: KindPlatform, Err: stderrors.New("denied")})
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "op=core.FileDialog") {
		t.Errorf("platform errors should log at ERROR with op, got %q", buf.String())
	}
}

func TestLogHandlerVerboseIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Verbose: true}

	h.HandlePanic(&PanicError{Op: "x", Value: "v", StackTrace: "frame-one"})
	if !strings.Contains(buf.String(), "frame-one") {
		t.Errorf("verbose panic log should include stack, got %q", buf.String())
	}
}

type testHandler struct {
	onError func(*UIError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *UIError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
