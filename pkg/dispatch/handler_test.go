package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifydispatch/pkg/diagnostic"
	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) ResolveOrganizationID(ctx context.Context, tenantDomain string) (string, error) {
	args := m.Called(ctx, tenantDomain)
	return args.String(0), args.Error(1)
}

type MockAssembler struct {
	mock.Mock
}

func (m *MockAssembler) Assemble(ctx context.Context, ev dispatch.Event, ph dispatch.Placeholders) (*dispatch.Notification, error) {
	args := m.Called(ctx, ev, ph)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Notification), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, env dispatch.Envelope) error {
	args := m.Called(ctx, env)
	return args.Error(0)
}

type recordingEmitter struct {
	mu      sync.Mutex
	enabled bool
	records []diagnostic.Record
}

func (e *recordingEmitter) Enabled() bool { return e.enabled }

func (e *recordingEmitter) Emit(_ context.Context, rec diagnostic.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = append(e.records, rec)
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func userRegistered() dispatch.Event {
	return dispatch.Event{
		Name: "user-registered",
		Properties: map[string]any{
			dispatch.KeyTenantDomain: "acme.com",
			dispatch.KeyUserName:     "alice",
			dispatch.KeyTemplateType: "accountConfirmation",
		},
		Channel: dispatch.ChannelEmail,
	}
}

func welcomeNotification() *dispatch.Notification {
	return &dispatch.Notification{
		Template: dispatch.Template{
			Type:        "accountConfirmation",
			DisplayName: "Account Confirmation",
			Subject:     "Welcome",
			Locale:      "en-US",
			ContentType: "text/plain",
		},
		SendFrom: "noreply@acme.com",
		SendTo:   "alice@acme.com",
		Subject:  "Welcome",
	}
}

func newTestHandler(t *testing.T, dir *MockDirectory, asm *MockAssembler, pub *MockPublisher, opts ...dispatch.Option) *dispatch.Handler {
	t.Helper()
	opts = append([]dispatch.Option{dispatch.WithClock(func() time.Time { return fixedNow })}, opts...)
	h, err := dispatch.NewHandler(dir, asm, pub, opts...)
	require.NoError(t, err)
	return h
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := dispatch.NewHandler(nil, &MockAssembler{}, &MockPublisher{})
	assert.ErrorIs(t, err, dispatch.ErrNilDependency)

	_, err = dispatch.NewHandler(&MockDirectory{}, nil, &MockPublisher{})
	assert.ErrorIs(t, err, dispatch.ErrNilDependency)

	_, err = dispatch.NewHandler(&MockDirectory{}, &MockAssembler{}, nil)
	assert.ErrorIs(t, err, dispatch.ErrNilDependency)

	h, err := dispatch.NewHandler(&MockDirectory{}, &MockAssembler{}, &MockPublisher{})
	require.NoError(t, err)
	assert.Equal(t, "emailSend", h.Name())
}

func TestHandler_Handle_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := &MockDirectory{}
	asm := &MockAssembler{}
	pub := &MockPublisher{}

	dir.On("ResolveOrganizationID", mock.Anything, "acme.com").Return("org-123", nil).Once()
	asm.On("Assemble", mock.Anything, userRegistered(), mock.MatchedBy(func(ph dispatch.Placeholders) bool {
		return ph[dispatch.KeyOrganizationID] == "org-123" &&
			ph[dispatch.KeyTemplateType] == "accountConfirmation"
	})).Return(welcomeNotification(), nil).Once()

	var published dispatch.Envelope
	pub.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).(dispatch.Envelope)
	}).Return(nil).Once()

	h := newTestHandler(t, dir, asm, pub)
	require.NoError(t, h.Handle(context.Background(), userRegistered()))

	assert.Equal(t, dispatch.DefaultStreamID, published.StreamID)
	assert.Equal(t, fixedNow.UnixMilli(), published.Timestamp)
	assert.Equal(t, "org-123", published.Placeholders[dispatch.KeyOrganizationID])
	assert.Equal(t, "alice", published.Placeholders[dispatch.KeyUserName])
	assert.Equal(t, "acme.com", published.Placeholders[dispatch.KeyTenantDomain])
	assert.Equal(t, "Welcome", published.Placeholders[dispatch.KeySubject])
	assert.Equal(t, "accountconfirmation", published.Placeholders[dispatch.KeyEventType])
	assert.NotContains(t, published.Placeholders, "tmp-stream-id")

	dir.AssertExpectations(t)
	asm.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestHandler_Handle_OrganizationFailureAborts(t *testing.T) {
	t.Parallel()

	dir := &MockDirectory{}
	asm := &MockAssembler{}
	pub := &MockPublisher{}

	cause := errors.New("organization service down")
	dir.On("ResolveOrganizationID", mock.Anything, "acme.com").Return("", cause).Once()

	h := newTestHandler(t, dir, asm, pub)
	err := h.Handle(context.Background(), userRegistered())

	require.Error(t, err)
	assert.ErrorIs(t, err, dispatch.ErrOrganizationResolution)
	assert.ErrorIs(t, err, cause)
	asm.AssertNotCalled(t, "Assemble", mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandler_Handle_NoNotification(t *testing.T) {
	t.Parallel()

	dir := &MockDirectory{}
	asm := &MockAssembler{}
	pub := &MockPublisher{}

	ev := dispatch.Event{
		Name:       "session-terminated",
		Properties: map[string]any{dispatch.KeyUserName: "alice"},
	}
	asm.On("Assemble", mock.Anything, ev, mock.Anything).Return(nil, nil).Once()

	h := newTestHandler(t, dir, asm, pub)
	require.NoError(t, h.Handle(context.Background(), ev))

	dir.AssertNotCalled(t, "ResolveOrganizationID", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	asm.AssertExpectations(t)
}

func TestHandler_Handle_AssemblyError(t *testing.T) {
	t.Parallel()

	dir := &MockDirectory{}
	asm := &MockAssembler{}
	pub := &MockPublisher{}

	cause := errors.New("template store unavailable")
	dir.On("ResolveOrganizationID", mock.Anything, "acme.com").Return("org-123", nil)
	asm.On("Assemble", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

	h := newTestHandler(t, dir, asm, pub)
	err := h.Handle(context.Background(), userRegistered())

	assert.ErrorIs(t, err, dispatch.ErrAssembly)
	assert.ErrorIs(t, err, cause)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandler_Handle_PublishErrorReturnedUnchanged(t *testing.T) {
	t.Parallel()

	dir := &MockDirectory{}
	asm := &MockAssembler{}
	pub := &MockPublisher{}

	cause := errors.New("stream unavailable")
	dir.On("ResolveOrganizationID", mock.Anything, "acme.com").Return("org-123", nil)
	asm.On("Assemble", mock.Anything, mock.Anything, mock.Anything).Return(welcomeNotification(), nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(cause).Once()

	h := newTestHandler(t, dir, asm, pub)
	err := h.Handle(context.Background(), userRegistered())

	assert.Same(t, cause, err)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestHandler_Handle_Overrides(t *testing.T) {
	t.Parallel()

	dir := &MockDirectory{}
	asm := &MockAssembler{}
	pub := &MockPublisher{}

	dir.On("ResolveOrganizationID", mock.Anything, "acme.com").Return("org-123", nil)
	asm.On("Assemble", mock.Anything, mock.Anything, mock.MatchedBy(func(ph dispatch.Placeholders) bool {
		return ph[dispatch.KeyTemplateType] == "welcomeEmail"
	})).Return(welcomeNotification(), nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(env dispatch.Envelope) bool {
		return env.StreamID == "id_gov_welcome_stream:2.0.0" &&
			env.Placeholders[dispatch.KeyTemplateType] == "welcomeEmail"
	})).Return(nil).Once()

	cfg := dispatch.Config{
		TemplateOverride: "welcomeEmail",
		StreamOverrides:  map[string]string{"user-registered": "id_gov_welcome_stream:2.0.0"},
	}
	h := newTestHandler(t, dir, asm, pub, cfg.Options()...)
	require.NoError(t, h.Handle(context.Background(), userRegistered()))

	asm.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestHandler_Handle_BlankTenantSkipsDirectory(t *testing.T) {
	t.Parallel()

	dir := &MockDirectory{}
	asm := &MockAssembler{}
	pub := &MockPublisher{}

	ev := userRegistered()
	ev.Properties[dispatch.KeyTenantDomain] = " "

	asm.On("Assemble", mock.Anything, mock.Anything, mock.MatchedBy(func(ph dispatch.Placeholders) bool {
		_, ok := ph[dispatch.KeyOrganizationID]
		return !ok
	})).Return(welcomeNotification(), nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	h := newTestHandler(t, dir, asm, pub)
	require.NoError(t, h.Handle(context.Background(), ev))

	dir.AssertNotCalled(t, "ResolveOrganizationID", mock.Anything, mock.Anything)
	asm.AssertExpectations(t)
}

func TestHandler_Handle_Diagnostics(t *testing.T) {
	t.Parallel()

	t.Run("enabled emits one record", func(t *testing.T) {
		t.Parallel()
		dir := &MockDirectory{}
		asm := &MockAssembler{}
		pub := &MockPublisher{}
		dir.On("ResolveOrganizationID", mock.Anything, "acme.com").Return("", errors.New("boom"))

		em := &recordingEmitter{enabled: true}
		h := newTestHandler(t, dir, asm, pub, dispatch.WithDiagnostics(em))
		require.Error(t, h.Handle(context.Background(), userRegistered()))

		require.Len(t, em.records, 1)
		rec := em.records[0]
		assert.Equal(t, dispatch.DiagnosticComponent, rec.Component)
		assert.Equal(t, dispatch.DiagnosticActionHandle, rec.Action)
		assert.Equal(t, "accountConfirmation", rec.Inputs[dispatch.DiagnosticInputEventName])
		assert.Len(t, rec.Inputs, 2)
		assert.Equal(t, "acme.com", rec.Inputs[dispatch.DiagnosticInputTenant])
		assert.Equal(t, diagnostic.StatusSuccess, rec.ResultStatus)
		assert.Equal(t, diagnostic.DetailInternalSystem, rec.DetailLevel)
	})

	t.Run("disabled emits nothing", func(t *testing.T) {
		t.Parallel()
		dir := &MockDirectory{}
		asm := &MockAssembler{}
		pub := &MockPublisher{}
		asm.On("Assemble", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

		em := &recordingEmitter{enabled: false}
		h := newTestHandler(t, dir, asm, pub, dispatch.WithDiagnostics(em))
		require.NoError(t, h.Handle(context.Background(), dispatch.Event{Name: "noop"}))
		assert.Empty(t, em.records)
	})
}

func TestHandler_Handle_Concurrent(t *testing.T) {
	t.Parallel()

	dir := dispatch.OrganizationDirectoryFunc(func(_ context.Context, td string) (string, error) {
		return "org-" + td, nil
	})
	asm := dispatch.AssemblerFunc(func(_ context.Context, _ dispatch.Event, ph dispatch.Placeholders) (*dispatch.Notification, error) {
		n := welcomeNotification()
		n.SendTo = ph[dispatch.KeyUserName] + "@" + ph[dispatch.KeyTenantDomain]
		return n, nil
	})

	var mu sync.Mutex
	got := map[string]string{}
	pub := dispatch.PublisherFunc(func(_ context.Context, env dispatch.Envelope) error {
		mu.Lock()
		defer mu.Unlock()
		got[env.Placeholders[dispatch.KeySendTo]] = env.Placeholders[dispatch.KeyOrganizationID]
		return nil
	})

	h, err := dispatch.NewHandler(dir, asm, pub)
	require.NoError(t, err)

	tenants := []string{"a.com", "b.com", "c.com", "d.com"}
	var wg sync.WaitGroup
	for _, td := range tenants {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ev := dispatch.Event{Name: "user-registered", Properties: map[string]any{
				dispatch.KeyTenantDomain: td,
				dispatch.KeyUserName:     "user",
			}}
			assert.NoError(t, h.Handle(context.Background(), ev))
		}()
	}
	wg.Wait()

	require.Len(t, got, len(tenants))
	for _, td := range tenants {
		assert.Equal(t, "org-"+td, got["user@"+td])
	}
}
