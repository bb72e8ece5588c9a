package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"beauty-solutions-backend/config"
	v1 "beauty-solutions-backend/internal/delivery/http/v1"
	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/internal/usecase"
	"beauty-solutions-backend/pkg/email"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SubmitContact(ctx context.Context, req *domain.SubmissionRequest) (domain.Outcome, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode:           "test",
		AllowedOrigins:    []string{"https://beautysolutions.com"},
		MaxBodyBytes:      1024,
		ContactRateLimit:  100,
		ContactRateWindow: time.Minute,
	}
}

func newTestRouter(uc domain.ContactUsecase, cfg *config.Config) *gin.Engine {
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		HealthUC:  usecase.NewHealthUsecase("mock", nil),
		Config:    cfg,
	})
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{"name":"Jane","email":"jane@x.com","message":"Hi"}`

func TestContactHandler_SubmitContact(t *testing.T) {
	t.Run("Should return the success body when the message is sent", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.MatchedBy(func(req *domain.SubmissionRequest) bool {
			return req.Name == "Jane" && req.Email == "jane@x.com" && req.Message == "Hi"
		})).Return(domain.OutcomeSent, nil).Once()

		w := postJSON(newTestRouter(uc, testConfig()), validBody)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Email sent successfully"}`, w.Body.String())
		uc.AssertExpectations(t)
	})

	t.Run("Should answer spam exactly like a sent message", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(domain.OutcomeSpam, nil).Once()

		w := postJSON(newTestRouter(uc, testConfig()), `{"name":"Bot","email":"b@b.com","message":"x","website":"http://spam"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Email sent successfully"}`, w.Body.String())
	})

	t.Run("Should return 400 when required fields are missing", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.Anything).
			Return(domain.OutcomeMissingFields, domain.ErrMissingFields).Once()

		w := postJSON(newTestRouter(uc, testConfig()), `{"name":"","email":"a@b.com","message":"hi"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Name, email and message are required"}`, w.Body.String())
	})

	t.Run("Should surface the provider message on rejection", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(domain.OutcomeRejected,
			&domain.RelayError{Outcome: domain.OutcomeRejected, Message: "X"}).Once()

		w := postJSON(newTestRouter(uc, testConfig()), validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"X"}`, w.Body.String())
	})

	t.Run("Should use the default message when the relay gives none", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(domain.OutcomeTransportError,
			&domain.RelayError{Outcome: domain.OutcomeTransportError, Err: context.DeadlineExceeded}).Once()

		w := postJSON(newTestRouter(uc, testConfig()), validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
	})

	t.Run("Should return the generic error for a malformed body", func(t *testing.T) {
		uc := new(MockContactUsecase)

		w := postJSON(newTestRouter(uc, testConfig()), `{"name":`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
		uc.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything)
	})

	t.Run("Should reject bodies over the size limit", func(t *testing.T) {
		uc := new(MockContactUsecase)
		big := `{"name":"Jane","email":"jane@x.com","message":"` + strings.Repeat("a", 2048) + `"}`

		w := postJSON(newTestRouter(uc, testConfig()), big)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		uc.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything)
	})

	t.Run("Should bind form encoded submissions", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.MatchedBy(func(req *domain.SubmissionRequest) bool {
			return req.Name == "Jane" && len(req.Services) == 2 && req.Services[1] == "Branding"
		})).Return(domain.OutcomeSent, nil).Once()

		form := url.Values{
			"name":     {"Jane"},
			"email":    {"jane@x.com"},
			"message":  {"Hi"},
			"services": {"Sourcing", "Branding"},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		newTestRouter(uc, testConfig()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Should decode JSON bodies sent without a JSON content type", func(t *testing.T) {
		for _, contentType := range []string{"", "text/plain;charset=UTF-8"} {
			t.Run("content type "+contentType, func(t *testing.T) {
				uc := new(MockContactUsecase)
				uc.On("SubmitContact", mock.Anything, mock.MatchedBy(func(req *domain.SubmissionRequest) bool {
					return req.Name == "Jane" && req.Email == "jane@x.com" && req.Message == "Hi"
				})).Return(domain.OutcomeSent, nil).Once()

				req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validBody))
				if contentType != "" {
					req.Header.Set("Content-Type", contentType)
				}
				w := httptest.NewRecorder()
				newTestRouter(uc, testConfig()).ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, `{"success":true,"message":"Email sent successfully"}`, w.Body.String())
				uc.AssertExpectations(t)
			})
		}
	})

	t.Run("Should set a request id header", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(domain.OutcomeSent, nil)

		w := postJSON(newTestRouter(uc, testConfig()), validBody)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Should rate limit repeated submissions from one client", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(domain.OutcomeSent, nil)
		cfg := testConfig()
		cfg.ContactRateLimit = 1
		r := newTestRouter(uc, cfg)

		first := postJSON(r, validBody)
		second := postJSON(r, validBody)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.NotEmpty(t, second.Header().Get("Retry-After"))
		uc.AssertNumberOfCalls(t, "SubmitContact", 1)
	})
}

func TestContactEndToEnd(t *testing.T) {
	t.Run("Should relay one submission to the provider with placeholders", func(t *testing.T) {
		var calls int32
		var got map[string]string
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
		}))
		defer provider.Close()

		uc := usecase.NewContactUsecase(
			email.NewWeb3FormsClient(provider.URL, 2*time.Second),
			usecase.ContactConfig{AccessKey: "key-123", Shape: usecase.DefaultPayloadShape("Beauty Solutions Website")},
			nil, nil,
		)

		w := postJSON(newTestRouter(uc, testConfig()), validBody)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, "key-123", got["access_key"])
		assert.Equal(t, "Not provided", got["company"])
		assert.Equal(t, "Not specified", got["interest"])
		assert.Equal(t, "New Contact from Jane - Beauty Solutions Website", got["subject"])
	})

	t.Run("Should not contact the provider for spam", func(t *testing.T) {
		var calls int32
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer provider.Close()

		uc := usecase.NewContactUsecase(
			email.NewWeb3FormsClient(provider.URL, 2*time.Second),
			usecase.ContactConfig{AccessKey: "key-123", Shape: usecase.DefaultPayloadShape("Site")},
			nil, nil,
		)

		w := postJSON(newTestRouter(uc, testConfig()), `{"name":"Bot","email":"b@b.com","message":"x","website":"http://spam"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("Should pass the provider rejection message through", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid access key"}`))
		}))
		defer provider.Close()

		uc := usecase.NewContactUsecase(
			email.NewWeb3FormsClient(provider.URL, 2*time.Second),
			usecase.ContactConfig{AccessKey: "bad", Shape: usecase.DefaultPayloadShape("Site")},
			nil, nil,
		)

		w := postJSON(newTestRouter(uc, testConfig()), validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Invalid access key"}`, w.Body.String())
	})
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	newTestRouter(new(MockContactUsecase), testConfig()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"relay":"mock"`)
}
