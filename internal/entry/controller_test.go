package entry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/pravaah/internal/client"
	"github.com/geocoder89/pravaah/internal/collections"
	"github.com/geocoder89/pravaah/internal/config"
	"github.com/geocoder89/pravaah/internal/form"
	apphttp "github.com/geocoder89/pravaah/internal/http"
	"github.com/geocoder89/pravaah/internal/notifications"
	"github.com/geocoder89/pravaah/internal/repo/memory"
	"github.com/geocoder89/pravaah/internal/schema"
	"github.com/geocoder89/pravaah/internal/security"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeAPI lets tests script Create.
type fakeAPI struct {
	createFn func(ctx context.Context, collection string, payload map[string]any) (client.CreateResponse, error)
}

func (f *fakeAPI) Create(ctx context.Context, collection string, payload map[string]any) (client.CreateResponse, error) {
	if f.createFn != nil {
		return f.createFn(ctx, collection, payload)
	}
	return client.CreateResponse{Success: true, ID: "x", Message: "Document added to " + collection + " successfully"}, nil
}

// newServer runs the real API over an in-memory store.
func newServer(t *testing.T) (*client.Client, *memory.DocumentsRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewDocumentsRepo()
	svc := collections.NewService(store, collections.Options{
		Hasher: security.NewHasher(bcrypt.MinCost),
		Logger: discard,
	})
	router := apphttp.NewRouter(discard, config.Config{Env: "test", MaxBodyBytes: 1 << 20}, apphttp.Deps{Service: svc})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return client.New(srv.URL, 5*time.Second), store
}

func fillUser(d form.Draft) form.Draft {
	return d.SetScalar("username", "a").SetScalar("email", "a@x.io").SetScalar("password", "pw1")
}

func TestSubmit_SuccessResetsDraft(t *testing.T) {
	api, store := newServer(t)
	board := notifications.NewBoard(time.Minute, nil)

	c, err := NewController(api, board, discard, schema.KindUsers)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	c.Update(fillUser)

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if c.Draft().Scalar("username") != "" {
		t.Fatalf("draft not reset after success")
	}
	if c.Busy() {
		t.Fatalf("busy flag left set")
	}

	n, ok := board.Current()
	if !ok || n.Level != notifications.LevelSuccess || n.Message != "Document added to users successfully" {
		t.Fatalf("unexpected notice: %+v", n)
	}

	if count, _ := store.Count(context.Background(), "users"); count != 1 {
		t.Fatalf("stored %d users", count)
	}
}

func TestSubmit_ServerReasonShownAndDraftKept(t *testing.T) {
	api, store := newServer(t)
	board := notifications.NewBoard(time.Minute, nil)

	c, _ := NewController(api, board, discard, schema.KindUsers)
	c.Update(func(d form.Draft) form.Draft {
		return fillUser(d).SetScalar("email", "not-an-email")
	})

	err := c.Submit(context.Background())

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 400 {
		t.Fatalf("expected 400 APIError, got %v", err)
	}

	n, _ := board.Current()
	if n.Level != notifications.LevelError || !strings.Contains(n.Message, "email") {
		t.Fatalf("notice should carry the server reason: %+v", n)
	}
	if c.Draft().Scalar("email") != "not-an-email" {
		t.Fatalf("draft should be kept on failure")
	}
	if c.Busy() {
		t.Fatalf("busy flag left set after failure")
	}
	if count, _ := store.Count(context.Background(), "users"); count != 0 {
		t.Fatalf("invalid user stored")
	}
}

func TestSubmit_MissingRequiredNeverSent(t *testing.T) {
	called := false
	api := &fakeAPI{createFn: func(context.Context, string, map[string]any) (client.CreateResponse, error) {
		called = true
		return client.CreateResponse{}, nil
	}}

	c, _ := NewController(api, nil, discard, schema.KindUsers)
	if err := c.Submit(context.Background()); err == nil {
		t.Fatalf("expected error for empty draft")
	}
	if called {
		t.Fatalf("empty draft reached the API")
	}
}

func TestSubmit_BusyDuringRequest(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	api := &fakeAPI{createFn: func(ctx context.Context, collection string, payload map[string]any) (client.CreateResponse, error) {
		close(started)
		<-release
		return client.CreateResponse{Success: true}, nil
	}}

	c, _ := NewController(api, nil, discard, schema.KindUsers)
	c.Update(fillUser)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()

	<-started
	if !c.Busy() {
		t.Fatalf("busy flag not set during request")
	}
	if err := c.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("second submit: got %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Busy() {
		t.Fatalf("busy flag not cleared")
	}
}

func TestSwitchCollection_ResetsDraft(t *testing.T) {
	c, _ := NewController(&fakeAPI{}, nil, discard, schema.KindUsers)
	c.Update(fillUser)

	if err := c.SwitchCollection(schema.KindItineraries); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if c.Draft().Kind() != schema.KindItineraries {
		t.Fatalf("kind = %s", c.Draft().Kind())
	}
	if _, ok := c.Draft().Payload()["username"]; ok {
		t.Fatalf("user fields leaked into itinerary draft")
	}

	if err := c.SwitchCollection("orders"); !errors.Is(err, schema.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestBulkSubmit_CountsFailuresAndContinues(t *testing.T) {
	api, store := newServer(t)
	board := notifications.NewBoard(time.Minute, nil)

	c, _ := NewController(api, board, discard, schema.KindUsers)

	samples := append([]map[string]any{}, c.Samples()...)
	samples[2] = map[string]any{"username": "broken", "password": "x"}
	samples[7] = map[string]any{"username": "broken", "email": "nope", "password": "x"}

	res, err := c.BulkSubmit(context.Background(), samples)
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}

	if res.Succeeded != len(samples)-2 || res.Failed != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if count, _ := store.Count(context.Background(), "users"); count != int64(len(samples)-2) {
		t.Fatalf("stored %d users, want %d", count, len(samples)-2)
	}

	n, _ := board.Current()
	if n.Message != "Added 8 users successfully! (2 failed)" {
		t.Fatalf("unexpected summary: %q", n.Message)
	}
	if c.Busy() {
		t.Fatalf("busy flag left set")
	}
}

func TestBulkSubmit_ItineraryAndHotelSamplesAccepted(t *testing.T) {
	api, store := newServer(t)

	for _, kind := range []schema.Kind{schema.KindItineraries, schema.KindHotels} {
		c, _ := NewController(api, nil, discard, kind)

		res, err := c.BulkSubmit(context.Background(), c.Samples())
		if err != nil || res.Failed != 0 {
			t.Fatalf("%s bulk: %+v %v", kind, res, err)
		}

		if count, _ := store.Count(context.Background(), kind.String()); count != int64(len(c.Samples())) {
			t.Fatalf("%s stored %d", kind, count)
		}
	}
}
