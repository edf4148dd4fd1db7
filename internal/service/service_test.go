package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"yuyingbao/internal/api"
	"yuyingbao/internal/config"
	"yuyingbao/internal/models"
	"yuyingbao/internal/repository"
	"yuyingbao/internal/session"
	"yuyingbao/internal/storage"
)

type testEnv struct {
	client  *api.Client
	session *session.Store
	persist *storage.Store
	cfg     *config.Config
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	persist, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { persist.Close() })

	sealer, err := storage.NewSealer("test-device")
	if err != nil {
		t.Fatalf("failed to create sealer: %v", err)
	}
	sess := session.NewStore(persist, sealer)

	cfg := &config.Config{
		APIBaseURL:       server.URL,
		HTTPTimeout:      5 * time.Second,
		MemberRetryCount: 3,
		MemberRetryDelay: 10 * time.Millisecond,
	}
	return &testEnv{
		client:  api.NewClient(cfg, sess),
		session: sess,
		persist: persist,
		cfg:     cfg,
	}
}

func TestLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/wechat/login-complete", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"Bearer tok-99","tokenType":"Bearer","userInfo":{"id":5,"nickname":"小雨妈妈"}}`))
	})
	env := newTestEnv(t, mux)
	auth := NewAuthService(env.client, env.session, env.persist)

	user, err := auth.Login(context.Background(), "wx-code", "小雨妈妈", "")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if user.ID != 5 {
		t.Errorf("user.ID = %d, want 5", user.ID)
	}

	// The Bearer prefix must be stripped before storage.
	token, ok := env.session.Token()
	if !ok || token != "tok-99" {
		t.Errorf("Token() = %q, %v; want tok-99", token, ok)
	}
	if env.session.User() == nil {
		t.Error("user should be stored in the session")
	}
}

func TestLoginRequiresCode(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	auth := NewAuthService(env.client, env.session, env.persist)

	if _, err := auth.Login(context.Background(), "", "", ""); err == nil {
		t.Error("Login() without code should fail")
	}
}

func TestDeviceIDStable(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())

	first, err := DeviceID(env.persist)
	if err != nil {
		t.Fatalf("DeviceID() error: %v", err)
	}
	second, err := DeviceID(env.persist)
	if err != nil {
		t.Fatalf("DeviceID() second error: %v", err)
	}
	if first == "" || first != second {
		t.Errorf("DeviceID() = %q then %q, want one stable id", first, second)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	auth := NewAuthService(env.client, env.session, env.persist)

	if err := env.session.SetToken("tok-1"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}
	if err := auth.Logout(); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if env.session.SignedIn() {
		t.Error("session should be signed out after Logout")
	}
}

func TestMembersRetriesOnEmpty(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /families/1/members", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"id":1,"userId":5,"nickname":"小雨妈妈","role":"MOTHER"}]`))
	})
	env := newTestEnv(t, mux)
	if err := env.session.SetFamily(&models.Family{ID: 1}); err != nil {
		t.Fatalf("SetFamily() error: %v", err)
	}
	families := NewFamilyService(env.client, env.session, env.cfg)

	members, err := families.Members(context.Background())
	if err != nil {
		t.Fatalf("Members() error: %v", err)
	}
	if len(members) != 1 || members[0].Role != models.RoleMother {
		t.Errorf("members = %+v", members)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestMembersAcceptsEmptyAfterRetries(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /families/1/members", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[]`))
	})
	env := newTestEnv(t, mux)
	if err := env.session.SetFamily(&models.Family{ID: 1}); err != nil {
		t.Fatalf("SetFamily() error: %v", err)
	}
	families := NewFamilyService(env.client, env.session, env.cfg)

	members, err := families.Members(context.Background())
	if err != nil {
		t.Fatalf("Members() error: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("members = %+v, want empty", members)
	}
	// Initial attempt plus the configured retries.
	if calls.Load() != 4 {
		t.Errorf("calls = %d, want 4", calls.Load())
	}
}

func TestRefreshRosterDiscardsStaleResult(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /families/1/babies", func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`[{"id":3,"name":"小雨"}]`))
	})
	env := newTestEnv(t, mux)
	if err := env.session.SetFamily(&models.Family{ID: 1}); err != nil {
		t.Fatalf("SetFamily() error: %v", err)
	}
	families := NewFamilyService(env.client, env.session, env.cfg)

	done := make(chan error, 1)
	go func() {
		_, err := families.RefreshRoster(context.Background())
		done <- err
	}()

	// Logout while the fetch is in flight.
	time.Sleep(20 * time.Millisecond)
	if err := env.session.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	close(release)

	if err := <-done; err != ErrNotSignedIn {
		t.Errorf("RefreshRoster() error = %v, want ErrNotSignedIn", err)
	}
	if env.session.ActiveBaby() != nil {
		t.Error("stale roster must not repopulate a cleared session")
	}
}

func TestRefreshRosterReconcilesSelection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /families/1/babies", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":8,"name":"老二"}]`))
	})
	env := newTestEnv(t, mux)
	if err := env.session.SetFamily(&models.Family{ID: 1}); err != nil {
		t.Fatalf("SetFamily() error: %v", err)
	}
	if err := env.session.SetActiveBaby(&models.Baby{ID: 3, Name: "小雨"}); err != nil {
		t.Fatalf("SetActiveBaby() error: %v", err)
	}
	families := NewFamilyService(env.client, env.session, env.cfg)

	babies, err := families.RefreshRoster(context.Background())
	if err != nil {
		t.Fatalf("RefreshRoster() error: %v", err)
	}
	if len(babies) != 1 {
		t.Fatalf("babies = %+v", babies)
	}
	if baby := env.session.ActiveBaby(); baby == nil || baby.ID != 8 {
		t.Errorf("ActiveBaby() = %+v, want fallback to ID 8", baby)
	}
}

func TestTodayFallsBackToLocalAggregation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /statistics/babies/3/today", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unavailable"}`, http.StatusServiceUnavailable)
	})
	mux.HandleFunc("GET /babies/3/records/filter", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"type":"BOTTLE","happenedAt":"2025-06-15T08:00:00Z","amountMl":200},
			{"id":2,"type":"BREASTFEEDING","happenedAt":"2025-06-15T11:00:00Z","durationMin":10},
			{"id":3,"type":"DIAPER","happenedAt":"2025-06-15T12:00:00Z","diaperTexture":"SOFT"}
		]`))
	})
	env := newTestEnv(t, mux)
	if err := env.session.SetActiveBaby(&models.Baby{ID: 3, Name: "小雨", BirthDate: "2025-02-15"}); err != nil {
		t.Fatalf("SetActiveBaby() error: %v", err)
	}

	records := repository.NewRecordRepository(env.client)
	statsSvc := NewStatisticsService(env.client, records, env.session)

	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	summary, err := statsSvc.Today(context.Background(), now)
	if err != nil {
		t.Fatalf("Today() error: %v", err)
	}
	if summary.FeedingCount != 2 {
		t.Errorf("FeedingCount = %d, want 2", summary.FeedingCount)
	}
	if summary.FeedingTotalMl != 300 {
		t.Errorf("FeedingTotalMl = %v, want 300", summary.FeedingTotalMl)
	}
	if summary.DiaperCount != 1 {
		t.Errorf("DiaperCount = %d, want 1", summary.DiaperCount)
	}
	if summary.Suggestion == "" {
		t.Error("Suggestion should be filled in")
	}
}

func TestTodayPrefersServerSummary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /statistics/babies/3/today", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"feedingCount":7,"feedingTotalMl":820,"diaperCount":4}`))
	})
	env := newTestEnv(t, mux)
	if err := env.session.SetActiveBaby(&models.Baby{ID: 3, BirthDate: "2025-02-15"}); err != nil {
		t.Fatalf("SetActiveBaby() error: %v", err)
	}

	records := repository.NewRecordRepository(env.client)
	statsSvc := NewStatisticsService(env.client, records, env.session)

	summary, err := statsSvc.Today(context.Background(), time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Today() error: %v", err)
	}
	if summary.FeedingCount != 7 || summary.FeedingTotalMl != 820 {
		t.Errorf("summary = %+v, want the server values", summary)
	}
	// 820ml at four months is inside the 600-900 bracket.
	if summary.Suggestion == "" {
		t.Error("Suggestion should be derived when the server omits it")
	}
}

func TestExportWritesFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /babies/3/records", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"type":"BOTTLE","happenedAt":"2025-06-14T08:00:00Z","amountMl":150},
			{"id":2,"type":"GROWTH","happenedAt":"2025-06-15T09:00:00Z","heightCm":64.0,"weightKg":6.8}
		]`))
	})
	env := newTestEnv(t, mux)
	if err := env.session.SetActiveBaby(&models.Baby{ID: 3, Name: "小雨"}); err != nil {
		t.Fatalf("SetActiveBaby() error: %v", err)
	}

	records := repository.NewRecordRepository(env.client)
	export := NewExportService(records, env.session)

	path := filepath.Join(t.TempDir(), "export.json")
	data, err := export.Export(context.Background(), path, time.Now())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if len(data.Records) != 2 {
		t.Errorf("Records = %d, want 2", len(data.Records))
	}
	if data.Baby == nil || data.Baby.Name != "小雨" {
		t.Errorf("Baby = %+v", data.Baby)
	}

	var onDisk ExportData
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(onDisk.Records) != 2 || onDisk.Version != "1.0" {
		t.Errorf("file content = %+v", onDisk)
	}
}
